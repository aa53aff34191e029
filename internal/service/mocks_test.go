package service_test

import (
	"context"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) UpsertBySSOID(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetBySSOID(ctx context.Context, ssoID string) (*domain.User, error) {
	args := m.Called(ctx, ssoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCarpoolRepo
type MockCarpoolRepo struct {
	mock.Mock
}

func (m *MockCarpoolRepo) Create(ctx context.Context, carpool *domain.Carpool) error {
	args := m.Called(ctx, carpool)
	return args.Error(0)
}
func (m *MockCarpoolRepo) GetByID(ctx context.Context, id int32) (*domain.Carpool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Carpool), args.Error(1)
}
func (m *MockCarpoolRepo) GetView(ctx context.Context, id int32) (*domain.CarpoolView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarpoolView), args.Error(1)
}
func (m *MockCarpoolRepo) Update(ctx context.Context, carpool *domain.Carpool) error {
	args := m.Called(ctx, carpool)
	return args.Error(0)
}
func (m *MockCarpoolRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarpoolRepo) List(ctx context.Context, filter domain.CarpoolFilter) ([]domain.CarpoolView, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.CarpoolView), args.Error(1)
}
func (m *MockCarpoolRepo) ListTrips(ctx context.Context, userID int32) ([]domain.TripView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TripView), args.Error(1)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetByCarpoolAndUser(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, carpoolID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) CreateOrRecycle(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListByCarpool(ctx context.Context, carpoolID int32) ([]domain.JoinRequestView, error) {
	args := m.Called(ctx, carpoolID)
	return args.Get(0).([]domain.JoinRequestView), args.Error(1)
}
func (m *MockJoinRequestRepo) Approve(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Reject(ctx context.Context, requestID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Remove(ctx context.Context, carpoolID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, carpoolID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockJoinRequestRepo) ListUnseenByUser(ctx context.Context, userID int32) ([]domain.StatusUpdate, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.StatusUpdate), args.Error(1)
}
func (m *MockJoinRequestRepo) MarkViewedByUser(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, requesterName, carpoolTitle string) error {
	args := m.Called(ctx, ownerEmail, requesterName, carpoolTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendJoinDecisionNotification(ctx context.Context, requesterEmail, carpoolTitle string, decision domain.JoinRequestStatus) error {
	args := m.Called(ctx, requesterEmail, carpoolTitle, decision)
	return args.Error(0)
}
func (m *MockEmailService) SendPassengerRemovedNotification(ctx context.Context, removedEmail, carpoolTitle, ownerName string) error {
	args := m.Called(ctx, removedEmail, carpoolTitle, ownerName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingDigest(ctx context.Context, ownerEmail string, items []service.PendingDigestItem) error {
	args := m.Called(ctx, ownerEmail, items)
	return args.Error(0)
}
