package http

import (
	"net/http"

	"campuspool-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Auth          *AuthHandler
	Carpools      *CarpoolHandler
	Notifications *NotificationHandler
	Tags          *TagHandler
	Tokens        security.TokenManager
	RateLimiter   *RateLimiter
	Metrics       http.Handler
	CORSOrigins   []string
}

// NewRouter builds the full HTTP surface: public health/auth/metrics routes
// plus the authenticated API.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/session", deps.Auth.DevLogin).Methods(http.MethodPost)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(deps.Tokens))

	api.HandleFunc("/auth/me", deps.Auth.Me).Methods(http.MethodGet)

	api.HandleFunc("/carpools", deps.Carpools.List).Methods(http.MethodGet)
	api.HandleFunc("/carpools", deps.Carpools.Create).Methods(http.MethodPost)
	api.HandleFunc("/carpools/mine", deps.Carpools.MyTrips).Methods(http.MethodGet)
	// The decide route is registered before /carpools/{id} so "requests" is
	// never parsed as a carpool ID.
	api.HandleFunc("/carpools/requests/{requestId:[0-9]+}", deps.Carpools.DecideRequest).Methods(http.MethodPut)
	api.HandleFunc("/carpools/{id:[0-9]+}", deps.Carpools.Get).Methods(http.MethodGet)
	api.HandleFunc("/carpools/{id:[0-9]+}", deps.Carpools.Update).Methods(http.MethodPut)
	api.HandleFunc("/carpools/{id:[0-9]+}", deps.Carpools.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/carpools/{id:[0-9]+}/join", deps.Carpools.RequestToJoin).Methods(http.MethodPost)
	api.HandleFunc("/carpools/{id:[0-9]+}/join", deps.Carpools.MyRequestStatus).Methods(http.MethodGet)
	api.HandleFunc("/carpools/{id:[0-9]+}/requests", deps.Carpools.ListRequests).Methods(http.MethodGet)
	api.HandleFunc("/carpools/{id:[0-9]+}/passengers/{userId:[0-9]+}", deps.Carpools.RemovePassenger).Methods(http.MethodDelete)

	api.HandleFunc("/notifications/pending-requests", deps.Notifications.PendingRequests).Methods(http.MethodGet)
	api.HandleFunc("/notifications/my-updates", deps.Notifications.MyUpdates).Methods(http.MethodGet)
	api.HandleFunc("/notifications/mark-updates-viewed", deps.Notifications.MarkUpdatesViewed).Methods(http.MethodPost)

	api.HandleFunc("/tags", deps.Tags.List).Methods(http.MethodGet)
	api.HandleFunc("/tags", deps.Tags.Create).Methods(http.MethodPost)

	var handler http.Handler = r
	if deps.RateLimiter != nil {
		handler = deps.RateLimiter.Middleware(handler)
	}
	handler = LoggingMiddleware(handler)

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(deps.CORSOrigins) > 0 {
		corsOptions.AllowedOrigins = deps.CORSOrigins
	} else {
		corsOptions.AllowedOrigins = []string{"*"}
	}
	return cors.New(corsOptions).Handler(handler)
}
