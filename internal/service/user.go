package service

import (
	"context"
	"fmt"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpsertFromAssertion(ctx context.Context, ssoID, email, displayName string) (*domain.User, error) {
	if ssoID == "" {
		return nil, domain.NewValidationError("sso_id", "is required")
	}
	user := &domain.User{
		SSOID:       ssoID,
		Email:       email,
		DisplayName: displayName,
	}
	if err := s.userRepo.UpsertBySSOID(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
