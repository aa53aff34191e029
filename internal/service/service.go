package service

import (
	"context"

	"campuspool-backend/internal/domain"
)

// CarpoolInput carries the caller-editable carpool fields for create/update.
type CarpoolInput struct {
	Type           domain.CarpoolType `json:"carpool_type"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	EventName      string             `json:"event_name"`
	PickupDetails  string             `json:"pickup_details"`
	DropoffDetails string             `json:"dropoff_details"`
	DepartureDate  string             `json:"departure_date"` // "2006-01-02"
	DepartureTime  string             `json:"departure_time"` // "HH:MM"
	Capacity       int32              `json:"capacity"`
	TagIDs         []int32            `json:"tags"`
	Contact        string             `json:"contact"`
}

type CarpoolService interface {
	CreateCarpool(ctx context.Context, ownerID int32, input *CarpoolInput) (*domain.Carpool, error)
	GetCarpool(ctx context.Context, id int32) (*domain.CarpoolView, error)
	UpdateCarpool(ctx context.Context, id, callerID int32, input *CarpoolInput) (*domain.Carpool, error)
	DeleteCarpool(ctx context.Context, id, callerID int32) error
	ListCarpools(ctx context.Context, filter domain.CarpoolFilter) ([]domain.CarpoolView, error)
	MyTrips(ctx context.Context, userID int32) ([]domain.TripView, error)
}

type JoinService interface {
	RequestToJoin(ctx context.Context, carpoolID, userID int32, message string) (*domain.JoinRequest, error)
	DecideRequest(ctx context.Context, requestID, ownerID int32, decision domain.JoinRequestStatus) (*domain.JoinRequest, error)
	RemovePassenger(ctx context.Context, carpoolID, ownerID, passengerID int32) error
	OwnerRequestQueue(ctx context.Context, carpoolID, ownerID int32) ([]domain.JoinRequestView, error)
	PassengerStatus(ctx context.Context, carpoolID, userID int32) (domain.JoinRequestStatus, error)
}

type NotificationService interface {
	PendingRequestCount(ctx context.Context, userID int32) (int32, error)
	UnseenUpdates(ctx context.Context, userID int32) ([]domain.StatusUpdate, error)
	MarkUpdatesViewed(ctx context.Context, userID int32) error
}

type UserService interface {
	// UpsertFromAssertion records the identity the external provider verified.
	UpsertFromAssertion(ctx context.Context, ssoID, email, displayName string) (*domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
}

type TagService interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, name, color string) (*domain.Tag, error)
}

// PendingDigestItem is one line of the owner reminder digest.
type PendingDigestItem struct {
	CarpoolTitle  string
	RequesterName string
	DepartureDate string
}

type EmailService interface {
	SendJoinRequestNotification(ctx context.Context, ownerEmail, requesterName, carpoolTitle string) error
	SendJoinDecisionNotification(ctx context.Context, requesterEmail, carpoolTitle string, decision domain.JoinRequestStatus) error
	SendPassengerRemovedNotification(ctx context.Context, removedEmail, carpoolTitle, ownerName string) error
	SendPendingDigest(ctx context.Context, ownerEmail string, items []PendingDigestItem) error
}
