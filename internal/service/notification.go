package service

import (
	"context"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

type notificationService struct {
	joinRepo repository.JoinRequestRepository
}

func NewNotificationService(joinRepo repository.JoinRequestRepository) NotificationService {
	return &notificationService{joinRepo: joinRepo}
}

func (s *notificationService) PendingRequestCount(ctx context.Context, userID int32) (int32, error) {
	return s.joinRepo.CountPendingForOwner(ctx, userID)
}

func (s *notificationService) UnseenUpdates(ctx context.Context, userID int32) ([]domain.StatusUpdate, error) {
	return s.joinRepo.ListUnseenByUser(ctx, userID)
}

func (s *notificationService) MarkUpdatesViewed(ctx context.Context, userID int32) error {
	return s.joinRepo.MarkViewedByUser(ctx, userID)
}
