package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) UpsertBySSOID(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (sso_id, email, display_name)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (sso_id) DO UPDATE
	          SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, updated_at = NOW()
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, user.SSOID, user.Email, user.DisplayName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, sso_id, email, display_name, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.SSOID, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetBySSOID(ctx context.Context, ssoID string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT id, sso_id, email, display_name, created_at, updated_at FROM users WHERE sso_id = $1`
	err := r.db.QueryRowContext(ctx, query, ssoID).
		Scan(&user.ID, &user.SSOID, &user.Email, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
