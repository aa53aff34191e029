package service

import (
	"context"
	"errors"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/logger"
	"campuspool-backend/internal/metrics"
	"campuspool-backend/internal/repository"
)

type joinService struct {
	joinRepo    repository.JoinRequestRepository
	carpoolRepo repository.CarpoolRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	recorder    metrics.Recorder
}

func NewJoinService(
	joinRepo repository.JoinRequestRepository,
	carpoolRepo repository.CarpoolRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	recorder metrics.Recorder,
) JoinService {
	return &joinService{
		joinRepo:    joinRepo,
		carpoolRepo: carpoolRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		recorder:    recorder,
	}
}

func (s *joinService) RequestToJoin(ctx context.Context, carpoolID, userID int32, message string) (*domain.JoinRequest, error) {
	carpool, err := s.carpoolRepo.GetByID(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	if carpool.CreatedBy == userID {
		s.recorder.RecordConflict(metrics.ConflictSelfJoin)
		return nil, domain.ErrSelfJoin
	}
	// Best-effort capacity check. The authoritative enforcement point is the
	// approval transaction, which is the only path that mutates the counter.
	if carpool.IsFull() {
		s.recorder.RecordConflict(metrics.ConflictCarpoolFull)
		return nil, domain.NewCarpoolFullError()
	}

	req := &domain.JoinRequest{
		CarpoolID: carpoolID,
		UserID:    userID,
		Message:   message,
	}
	if err := s.joinRepo.CreateOrRecycle(ctx, req); err != nil {
		if domain.IsConflict(err) {
			s.recorder.RecordConflict(metrics.ConflictAlreadyRequested)
		}
		return nil, err
	}
	s.recorder.RecordJoinRequestCreated()

	s.notifyOwner(ctx, carpool, userID)
	return req, nil
}

func (s *joinService) DecideRequest(ctx context.Context, requestID, ownerID int32, decision domain.JoinRequestStatus) (*domain.JoinRequest, error) {
	if decision != domain.JoinRequestStatusApproved && decision != domain.JoinRequestStatusRejected {
		return nil, domain.NewValidationError("decision", "must be 'approved' or 'rejected'")
	}

	req, err := s.joinRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	carpool, err := s.carpoolRepo.GetByID(ctx, req.CarpoolID)
	if err != nil {
		return nil, err
	}
	if carpool.CreatedBy != ownerID {
		return nil, domain.ErrForbidden
	}

	if decision == domain.JoinRequestStatusApproved {
		req, err = s.joinRepo.Approve(ctx, requestID)
	} else {
		req, err = s.joinRepo.Reject(ctx, requestID)
	}
	if err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			if ce.CurrentStatus != "" {
				s.recorder.RecordConflict(metrics.ConflictNotPending)
			} else {
				s.recorder.RecordConflict(metrics.ConflictCarpoolFull)
			}
		}
		return nil, err
	}
	s.recorder.RecordDecision(string(decision))

	s.notifyRequester(ctx, req.UserID, carpool.Title, decision)
	return req, nil
}

func (s *joinService) RemovePassenger(ctx context.Context, carpoolID, ownerID, passengerID int32) error {
	carpool, err := s.carpoolRepo.GetByID(ctx, carpoolID)
	if err != nil {
		return err
	}
	if carpool.CreatedBy != ownerID {
		return domain.ErrForbidden
	}

	if _, err := s.joinRepo.Remove(ctx, carpoolID, passengerID); err != nil {
		if domain.IsConflict(err) {
			s.recorder.RecordConflict(metrics.ConflictNotPending)
		}
		return err
	}
	s.recorder.RecordRemoval()

	s.notifyRemoved(ctx, passengerID, ownerID, carpool.Title)
	return nil
}

func (s *joinService) OwnerRequestQueue(ctx context.Context, carpoolID, ownerID int32) ([]domain.JoinRequestView, error) {
	carpool, err := s.carpoolRepo.GetByID(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	if carpool.CreatedBy != ownerID {
		return nil, domain.ErrForbidden
	}
	return s.joinRepo.ListByCarpool(ctx, carpoolID)
}

func (s *joinService) PassengerStatus(ctx context.Context, carpoolID, userID int32) (domain.JoinRequestStatus, error) {
	req, err := s.joinRepo.GetByCarpoolAndUser(ctx, carpoolID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.JoinRequestStatusNone, nil
	}
	if err != nil {
		return "", err
	}
	return req.Status, nil
}

// Notification helpers run after the domain mutation has committed. Delivery
// failures are logged and swallowed: the state change already succeeded and
// must not be rolled back or reported as an error.

func (s *joinService) notifyOwner(ctx context.Context, carpool *domain.Carpool, requesterID int32) {
	owner, err := s.userRepo.GetByID(ctx, carpool.CreatedBy)
	if err != nil {
		logger.Warn("Skipping join request notification, owner lookup failed", "carpool_id", carpool.ID, "error", err)
		return
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		logger.Warn("Skipping join request notification, requester lookup failed", "user_id", requesterID, "error", err)
		return
	}
	if err := s.emailSvc.SendJoinRequestNotification(ctx, owner.Email, requester.DisplayName, carpool.Title); err != nil {
		logger.Warn("Failed to send join request notification", "carpool_id", carpool.ID, "error", err)
	}
}

func (s *joinService) notifyRequester(ctx context.Context, requesterID int32, carpoolTitle string, decision domain.JoinRequestStatus) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		logger.Warn("Skipping decision notification, requester lookup failed", "user_id", requesterID, "error", err)
		return
	}
	if err := s.emailSvc.SendJoinDecisionNotification(ctx, requester.Email, carpoolTitle, decision); err != nil {
		logger.Warn("Failed to send decision notification", "user_id", requesterID, "error", err)
	}
}

func (s *joinService) notifyRemoved(ctx context.Context, passengerID, ownerID int32, carpoolTitle string) {
	passenger, err := s.userRepo.GetByID(ctx, passengerID)
	if err != nil {
		logger.Warn("Skipping removal notification, passenger lookup failed", "user_id", passengerID, "error", err)
		return
	}
	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil {
		ownerName = owner.DisplayName
	}
	if err := s.emailSvc.SendPassengerRemovedNotification(ctx, passenger.Email, carpoolTitle, ownerName); err != nil {
		logger.Warn("Failed to send removal notification", "user_id", passengerID, "error", err)
	}
}
