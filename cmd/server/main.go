package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "campuspool-backend/internal/api/http"
	"campuspool-backend/internal/config"
	"campuspool-backend/internal/jobs"
	"campuspool-backend/internal/logger"
	"campuspool-backend/internal/metrics"
	"campuspool-backend/internal/repository/postgres"
	"campuspool-backend/internal/scheduler"
	"campuspool-backend/internal/security"
	"campuspool-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrateOnly := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Carpool backend", "address", cfg.GetServerAddress(), "timezone", cfg.App.Timezone)

	if err := postgres.RunMigrations(cfg.GetDatabaseURL()); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if *migrateOnly {
		logger.Info("Migrations applied")
		return
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	store := postgres.NewStore(db, cfg.App.Timezone)

	var emailSvc service.EmailService
	switch cfg.Email.Provider {
	case "sendgrid":
		logger.Info("Using SendGrid mailer")
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGrid.APIKey, cfg.Email.From, cfg.Email.FromName)
	default:
		logger.Info("Using SMTP mailer", "host", cfg.Email.SMTP.Host, "port", cfg.Email.SMTP.Port)
		emailSvc = service.NewSMTPEmailService(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port,
			cfg.Email.SMTP.User, cfg.Email.SMTP.Password, cfg.Email.From)
	}

	collector := metrics.NewCollector()

	userSvc := service.NewUserService(store.UserRepository)
	carpoolSvc := service.NewCarpoolService(store.CarpoolRepository, location)
	joinSvc := service.NewJoinService(store.JoinRequestRepository, store.CarpoolRepository,
		store.UserRepository, emailSvc, collector)
	notificationSvc := service.NewNotificationService(store.JoinRequestRepository)
	tagSvc := service.NewTagService(store.TagRepository)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.SessionExpiryHours)*time.Hour)
	rateLimiter := httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:          httpapi.NewAuthHandler(userSvc, tokenManager, cfg.Auth.DevLoginEnabled, cfg.Auth.DevPasswordHash),
		Carpools:      httpapi.NewCarpoolHandler(carpoolSvc, joinSvc),
		Notifications: httpapi.NewNotificationHandler(notificationSvc),
		Tags:          httpapi.NewTagHandler(tagSvc),
		Tokens:        tokenManager,
		RateLimiter:   rateLimiter,
		Metrics:       collector.Handler(),
		CORSOrigins:   cfg.CORS.AllowedOrigins,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(db, emailSvc, cfg)
		sched = scheduler.NewScheduler(jobRunner)
		sched.Start()
	}

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if sched != nil {
		sched.Stop()
	}
	if err := server.Close(); err != nil {
		logger.Error("Failed to close server", "error", err)
	}
}
