package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/scooter-console/internal/dashboard"
	"github.com/ukydev/scooter-console/internal/filter"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/session"
	"github.com/ukydev/scooter-console/internal/stats"
)

// MockGate is a mock implementation of SessionGate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Login(ctx context.Context, req models.LoginRequest) (*models.Admin, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockGate) Logout() {
	m.Called()
}

func (m *MockGate) Status() session.Status {
	return m.Called().Get(0).(session.Status)
}

// MockViews is a mock implementation of Views
type MockViews struct {
	mock.Mock
}

func (m *MockViews) Dashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}

func (m *MockViews) History(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DashboardSnapshot), args.Error(1)
}

func (m *MockViews) Bookings(ctx context.Context, f filter.RideFilter) (*dashboard.Bookings, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Bookings), args.Error(1)
}

func (m *MockViews) Scooters(ctx context.Context, f filter.ScooterFilter) (*dashboard.Scooters, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Scooters), args.Error(1)
}

func (m *MockViews) Payments(ctx context.Context, f filter.PaymentFilter) (*dashboard.PaymentReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.PaymentReport), args.Error(1)
}

func (m *MockViews) Revenue(ctx context.Context, f filter.RideFilter) (*dashboard.RevenueReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.RevenueReport), args.Error(1)
}

func (m *MockViews) Promotions(ctx context.Context, f filter.PromotionFilter) (*stats.PromotionSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.PromotionSummary), args.Error(1)
}

// MockFleet is a mock implementation of Fleet
type MockFleet struct {
	mock.Mock
}

func (m *MockFleet) GetScooter(ctx context.Context, id models.ID) (*models.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scooter), args.Error(1)
}

func (m *MockFleet) CreateScooter(ctx context.Context, in models.ScooterInput) (*models.Scooter, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scooter), args.Error(1)
}

func (m *MockFleet) UpdateScooter(ctx context.Context, id models.ID, in models.ScooterInput) (*models.Scooter, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scooter), args.Error(1)
}

func (m *MockFleet) UpdateScooterStatus(ctx context.Context, id models.ID, status models.ScooterStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockFleet) DeleteScooter(ctx context.Context, id models.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFleet) ScheduleMaintenance(ctx context.Context, id models.ID, req models.MaintenanceRequest) (*models.Maintenance, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Maintenance), args.Error(1)
}

func (m *MockFleet) LatestTelemetry(ctx context.Context, id models.ID) (*models.Telemetry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Telemetry), args.Error(1)
}

func (m *MockFleet) TelemetryHistory(ctx context.Context, id models.ID, start, end time.Time) ([]models.Telemetry, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Telemetry), args.Error(1)
}

func (m *MockFleet) GetRide(ctx context.Context, id models.ID) (*models.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ride), args.Error(1)
}

func (m *MockFleet) EndRide(ctx context.Context, id models.ID) (*models.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ride), args.Error(1)
}

func (m *MockFleet) MaintenanceRequired(ctx context.Context) ([]models.Scooter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Scooter), args.Error(1)
}

func (m *MockFleet) LowBattery(ctx context.Context) ([]models.Scooter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Scooter), args.Error(1)
}

func (m *MockFleet) SystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemHealth), args.Error(1)
}

func (m *MockFleet) CreatePromotion(ctx context.Context, p models.Promotion) (*models.Promotion, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockFleet) UpdatePromotion(ctx context.Context, id models.ID, p models.Promotion) (*models.Promotion, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockFleet) DeletePromotion(ctx context.Context, id models.ID) error {
	return m.Called(ctx, id).Error(0)
}

// MockRiders is a mock implementation of Riders
type MockRiders struct {
	mock.Mock
}

func (m *MockRiders) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRiders) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRiders) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.Admin, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockRiders) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRiders) UpdateUser(ctx context.Context, id models.ID, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRiders) DeleteUser(ctx context.Context, id models.ID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeFeed is an in-memory LiveFeed.
type fakeFeed struct {
	latest        map[models.ID]models.Telemetry
	low           []models.Telemetry
	notifications []models.Notification
}

func (f *fakeFeed) Latest(id models.ID) (models.Telemetry, bool) {
	t, ok := f.latest[id]
	return t, ok
}

func (f *fakeFeed) LowBattery() []models.Telemetry {
	return f.low
}

func (f *fakeFeed) Notifications() []models.Notification {
	return f.notifications
}

func (f *fakeFeed) MarkRead(id models.ID) bool {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Status = models.NotificationRead
			return true
		}
	}
	return false
}
