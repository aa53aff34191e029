package postgres_test

import (
	"context"
	"testing"
	"time"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_UpsertBySSOID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("suid123", "rider@example.edu", "Rider").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(2, now, now))

	user := &domain.User{SSOID: "suid123", Email: "rider@example.edu", DisplayName: "Rider"}
	err = repo.UpsertBySSOID(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sso_id", "email", "display_name", "created_at", "updated_at"}).
				AddRow(2, "suid123", "rider@example.edu", "Rider", now, now))

		user, err := repo.GetByID(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, "Rider", user.DisplayName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sso_id", "email", "display_name", "created_at", "updated_at"}))

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
