package service_test

import (
	"context"
	"testing"
	"time"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCarpoolService_CreateCarpool(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCarpoolRepo)
	svc := service.NewCarpoolService(repo, time.UTC)

	t.Run("Success", func(t *testing.T) {
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Carpool")).Return(nil).Once()

		carpool, err := svc.CreateCarpool(ctx, 1, &service.CarpoolInput{
			Type:          domain.CarpoolTypeAirport,
			Title:         "SFO Friday",
			Contact:       "owner@example.edu",
			DepartureDate: "2026-09-04",
			DepartureTime: "15:30",
			Capacity:      4,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(1), carpool.CreatedBy)
		assert.Equal(t, "15:30", carpool.DepartureTime)
		assert.Equal(t, int32(0), carpool.CurrentPassengers)
	})

	t.Run("DefaultsTypeToOther", func(t *testing.T) {
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Carpool")).Return(nil).Once()

		carpool, err := svc.CreateCarpool(ctx, 1, &service.CarpoolInput{
			Title:         "Grocery run",
			Contact:       "owner@example.edu",
			DepartureDate: "2026-09-04",
			DepartureTime: "09:00",
			Capacity:      2,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.CarpoolTypeOther, carpool.Type)
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		cases := []struct {
			name  string
			input service.CarpoolInput
		}{
			{"MissingTitle", service.CarpoolInput{Contact: "x", DepartureDate: "2026-09-04", DepartureTime: "09:00", Capacity: 2}},
			{"MissingContact", service.CarpoolInput{Title: "x", DepartureDate: "2026-09-04", DepartureTime: "09:00", Capacity: 2}},
			{"ZeroCapacity", service.CarpoolInput{Title: "x", Contact: "x", DepartureDate: "2026-09-04", DepartureTime: "09:00"}},
			{"BadDate", service.CarpoolInput{Title: "x", Contact: "x", DepartureDate: "Sep 4", DepartureTime: "09:00", Capacity: 2}},
			{"BadTime", service.CarpoolInput{Title: "x", Contact: "x", DepartureDate: "2026-09-04", DepartureTime: "9am", Capacity: 2}},
			{"UnknownType", service.CarpoolInput{Type: "hovercraft", Title: "x", Contact: "x", DepartureDate: "2026-09-04", DepartureTime: "09:00", Capacity: 2}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateCarpool(ctx, 1, &tc.input)
				var ve *domain.ValidationError
				assert.ErrorAs(t, err, &ve)
			})
		}
	})
}

func TestCarpoolService_UpdateCarpool(t *testing.T) {
	ctx := context.Background()

	existing := &domain.Carpool{
		ID: 10, CreatedBy: 1, Title: "SFO Friday", Contact: "owner@example.edu",
		DepartureDate:     time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		DepartureTime:     "15:30",
		Capacity:          4,
		CurrentPassengers: 3,
	}

	validInput := &service.CarpoolInput{
		Type: domain.CarpoolTypeAirport, Title: "SFO Friday", Contact: "owner@example.edu",
		DepartureDate: "2026-09-04", DepartureTime: "16:00", Capacity: 4,
	}

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockCarpoolRepo)
		svc := service.NewCarpoolService(repo, time.UTC)
		repo.On("GetByID", ctx, int32(10)).Return(existing, nil)

		_, err := svc.UpdateCarpool(ctx, 10, 99, validInput)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("CannotShrinkBelowApproved", func(t *testing.T) {
		repo := new(MockCarpoolRepo)
		svc := service.NewCarpoolService(repo, time.UTC)
		repo.On("GetByID", ctx, int32(10)).Return(existing, nil)

		shrunk := *validInput
		shrunk.Capacity = 2
		_, err := svc.UpdateCarpool(ctx, 10, 1, &shrunk)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "capacity", ve.Field)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("PreservesPassengerCounter", func(t *testing.T) {
		repo := new(MockCarpoolRepo)
		svc := service.NewCarpoolService(repo, time.UTC)
		repo.On("GetByID", ctx, int32(10)).Return(existing, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Carpool")).Return(nil)

		updated, err := svc.UpdateCarpool(ctx, 10, 1, validInput)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), updated.CurrentPassengers)
		assert.Equal(t, int32(1), updated.CreatedBy)
	})
}

func TestCarpoolService_MyTrips(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCarpoolRepo)
	svc := service.NewCarpoolService(repo, time.UTC)

	now := time.Now().UTC()
	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	trips := []domain.TripView{
		{CarpoolView: domain.CarpoolView{Carpool: domain.Carpool{
			ID: 1, DepartureDate: time.Date(past.Year(), past.Month(), past.Day(), 0, 0, 0, 0, time.UTC), DepartureTime: "08:00",
		}}, Role: domain.TripRoleOwner},
		{CarpoolView: domain.CarpoolView{Carpool: domain.Carpool{
			ID: 2, DepartureDate: time.Date(future.Year(), future.Month(), future.Day(), 0, 0, 0, 0, time.UTC), DepartureTime: "08:00",
		}}, Role: string(domain.JoinRequestStatusApproved)},
	}
	repo.On("ListTrips", ctx, int32(7)).Return(trips, nil)

	got, err := svc.MyTrips(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, got[0].Completed, "past departure should be completed")
	assert.False(t, got[1].Completed, "future departure should not be completed")
}
