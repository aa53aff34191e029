package service

import (
	"context"
	"fmt"
	"time"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"
)

type carpoolService struct {
	carpoolRepo repository.CarpoolRepository
	location    *time.Location
}

// NewCarpoolService creates the carpool service. location is the civil
// timezone departures are interpreted in when deciding whether a trip has
// completed.
func NewCarpoolService(carpoolRepo repository.CarpoolRepository, location *time.Location) CarpoolService {
	return &carpoolService{
		carpoolRepo: carpoolRepo,
		location:    location,
	}
}

func (s *carpoolService) CreateCarpool(ctx context.Context, ownerID int32, input *CarpoolInput) (*domain.Carpool, error) {
	carpool, err := carpoolFromInput(input)
	if err != nil {
		return nil, err
	}
	carpool.CreatedBy = ownerID

	if err := s.carpoolRepo.Create(ctx, carpool); err != nil {
		return nil, fmt.Errorf("failed to create carpool: %w", err)
	}
	return carpool, nil
}

func (s *carpoolService) GetCarpool(ctx context.Context, id int32) (*domain.CarpoolView, error) {
	return s.carpoolRepo.GetView(ctx, id)
}

func (s *carpoolService) UpdateCarpool(ctx context.Context, id, callerID int32, input *CarpoolInput) (*domain.Carpool, error) {
	existing, err := s.carpoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != callerID {
		return nil, domain.ErrForbidden
	}

	carpool, err := carpoolFromInput(input)
	if err != nil {
		return nil, err
	}
	if carpool.Capacity < existing.CurrentPassengers {
		return nil, domain.NewValidationError("capacity",
			fmt.Sprintf("cannot shrink below the %d already approved passengers", existing.CurrentPassengers))
	}
	carpool.ID = existing.ID
	carpool.CreatedBy = existing.CreatedBy
	carpool.CurrentPassengers = existing.CurrentPassengers
	carpool.CreatedAt = existing.CreatedAt

	if err := s.carpoolRepo.Update(ctx, carpool); err != nil {
		return nil, fmt.Errorf("failed to update carpool: %w", err)
	}
	return carpool, nil
}

func (s *carpoolService) DeleteCarpool(ctx context.Context, id, callerID int32) error {
	existing, err := s.carpoolRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	return s.carpoolRepo.Delete(ctx, id)
}

func (s *carpoolService) ListCarpools(ctx context.Context, filter domain.CarpoolFilter) ([]domain.CarpoolView, error) {
	return s.carpoolRepo.List(ctx, filter)
}

func (s *carpoolService) MyTrips(ctx context.Context, userID int32) ([]domain.TripView, error) {
	trips, err := s.carpoolRepo.ListTrips(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(s.location)
	for i := range trips {
		trips[i].Completed = s.departedBefore(&trips[i].Carpool, now)
	}
	return trips, nil
}

// departedBefore reports whether the carpool's departure, read as a civil
// time in the service's timezone, is earlier than now.
func (s *carpoolService) departedBefore(c *domain.Carpool, now time.Time) bool {
	hh, mm := 0, 0
	fmt.Sscanf(c.DepartureTime, "%d:%d", &hh, &mm)
	departure := time.Date(
		c.DepartureDate.Year(), c.DepartureDate.Month(), c.DepartureDate.Day(),
		hh, mm, 0, 0, s.location,
	)
	return departure.Before(now)
}

func carpoolFromInput(input *CarpoolInput) (*domain.Carpool, error) {
	if input.Title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	if input.Contact == "" {
		return nil, domain.NewValidationError("contact", "is required")
	}
	if input.Capacity < 1 {
		return nil, domain.NewValidationError("capacity", "must be at least 1")
	}
	if input.DepartureDate == "" || input.DepartureTime == "" {
		return nil, domain.NewValidationError("departure", "date and time are required")
	}
	departureDate, err := time.Parse("2006-01-02", input.DepartureDate)
	if err != nil {
		return nil, domain.NewValidationError("departure_date", "must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", input.DepartureTime); err != nil {
		return nil, domain.NewValidationError("departure_time", "must be formatted as HH:MM")
	}

	carpoolType := input.Type
	if carpoolType == "" {
		carpoolType = domain.CarpoolTypeOther
	}
	if !domain.ValidCarpoolType(carpoolType) {
		return nil, domain.NewValidationError("carpool_type", fmt.Sprintf("unknown type %q", carpoolType))
	}

	return &domain.Carpool{
		Type:           carpoolType,
		Title:          input.Title,
		Description:    input.Description,
		EventName:      input.EventName,
		PickupDetails:  input.PickupDetails,
		DropoffDetails: input.DropoffDetails,
		DepartureDate:  departureDate,
		DepartureTime:  input.DepartureTime,
		Capacity:       input.Capacity,
		TagIDs:         input.TagIDs,
		Contact:        input.Contact,
	}, nil
}
