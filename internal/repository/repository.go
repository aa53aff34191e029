package repository

import (
	"context"

	"campuspool-backend/internal/domain"
)

type UserRepository interface {
	// UpsertBySSOID creates the user on first login and refreshes email and
	// display name on later logins. Fills in ID and timestamps.
	UpsertBySSOID(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetBySSOID(ctx context.Context, ssoID string) (*domain.User, error)
}

type CarpoolRepository interface {
	Create(ctx context.Context, carpool *domain.Carpool) error
	GetByID(ctx context.Context, id int32) (*domain.Carpool, error)
	GetView(ctx context.Context, id int32) (*domain.CarpoolView, error)
	Update(ctx context.Context, carpool *domain.Carpool) error
	// Delete removes the carpool; its join requests go with it via the
	// foreign key cascade.
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.CarpoolFilter) ([]domain.CarpoolView, error)
	// ListTrips returns carpools the user owns plus carpools the user holds a
	// join request on, each tagged with the user's role, newest departure first.
	ListTrips(ctx context.Context, userID int32) ([]domain.TripView, error)
}

type JoinRequestRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	GetByCarpoolAndUser(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error)
	// CreateOrRecycle inserts a pending request, or flips an existing
	// rejected/removed row for the same (carpool, user) pair back to pending.
	// Returns a ConflictError if the existing row is pending or approved.
	CreateOrRecycle(ctx context.Context, req *domain.JoinRequest) error
	ListByCarpool(ctx context.Context, carpoolID int32) ([]domain.JoinRequestView, error)

	// Approve performs the capacity-safe approval transaction: it takes a
	// locking read of the carpool's seat counters, re-verifies the request is
	// still pending, and commits the status change together with the counter
	// increment. Returns a ConflictError when the carpool is full or the
	// request is no longer pending; the stored state is untouched in both cases.
	Approve(ctx context.Context, requestID int32) (*domain.JoinRequest, error)
	// Reject transitions a pending request to rejected. No counter effect.
	Reject(ctx context.Context, requestID int32) (*domain.JoinRequest, error)
	// Remove transitions the user's approved request on the carpool to
	// removed and decrements the seat counter in the same transaction.
	Remove(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error)

	// CountPendingForOwner counts pending requests on carpools owned by
	// ownerID whose departure has not yet passed in the local civil timezone.
	CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error)
	ListUnseenByUser(ctx context.Context, userID int32) ([]domain.StatusUpdate, error)
	MarkViewedByUser(ctx context.Context, userID int32) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	List(ctx context.Context) ([]domain.Tag, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Tag, error)
}
