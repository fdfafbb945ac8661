package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ukydev/scooter-console/internal/dashboard"
	"github.com/ukydev/scooter-console/internal/filter"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/stats"
)

// Views builds the aggregated screens.
type Views interface {
	Dashboard(ctx context.Context) (*dashboard.Dashboard, error)
	History(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error)
	Bookings(ctx context.Context, f filter.RideFilter) (*dashboard.Bookings, error)
	Scooters(ctx context.Context, f filter.ScooterFilter) (*dashboard.Scooters, error)
	Payments(ctx context.Context, f filter.PaymentFilter) (*dashboard.PaymentReport, error)
	Revenue(ctx context.Context, f filter.RideFilter) (*dashboard.RevenueReport, error)
	Promotions(ctx context.Context, f filter.PromotionFilter) (*stats.PromotionSummary, error)
}

// Fleet is the scooter service's single-record and write surface.
type Fleet interface {
	GetScooter(ctx context.Context, id models.ID) (*models.Scooter, error)
	CreateScooter(ctx context.Context, in models.ScooterInput) (*models.Scooter, error)
	UpdateScooter(ctx context.Context, id models.ID, in models.ScooterInput) (*models.Scooter, error)
	UpdateScooterStatus(ctx context.Context, id models.ID, status models.ScooterStatus) error
	DeleteScooter(ctx context.Context, id models.ID) error
	ScheduleMaintenance(ctx context.Context, id models.ID, req models.MaintenanceRequest) (*models.Maintenance, error)
	LatestTelemetry(ctx context.Context, id models.ID) (*models.Telemetry, error)
	TelemetryHistory(ctx context.Context, id models.ID, start, end time.Time) ([]models.Telemetry, error)
	MaintenanceRequired(ctx context.Context) ([]models.Scooter, error)
	LowBattery(ctx context.Context) ([]models.Scooter, error)
	GetRide(ctx context.Context, id models.ID) (*models.Ride, error)
	EndRide(ctx context.Context, id models.ID) (*models.Ride, error)
	SystemHealth(ctx context.Context) (*models.SystemHealth, error)
	CreatePromotion(ctx context.Context, p models.Promotion) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, id models.ID, p models.Promotion) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id models.ID) error
}

// Riders is the auth service's user and operator surface.
type Riders interface {
	CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.Admin, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id models.ID) (*models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id models.ID, in models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id models.ID) error
}

// LiveFeed is the telemetry watcher.
type LiveFeed interface {
	Latest(id models.ID) (models.Telemetry, bool)
	LowBattery() []models.Telemetry
	Notifications() []models.Notification
	MarkRead(id models.ID) bool
}

// ConsoleHandler serves the guarded console endpoints.
type ConsoleHandler struct {
	views  Views
	fleet  Fleet
	riders Riders
	feed   LiveFeed
	now    func() time.Time
}

// NewConsoleHandler creates a console handler. feed may be nil when no
// telemetry broker is configured.
func NewConsoleHandler(views Views, fleet Fleet, riders Riders, feed LiveFeed) *ConsoleHandler {
	return &ConsoleHandler{
		views:  views,
		fleet:  fleet,
		riders: riders,
		feed:   feed,
		now:    time.Now,
	}
}

func pathID(r *http.Request) models.ID {
	return models.ID(strings.TrimSpace(chi.URLParam(r, "id")))
}

// Dashboard returns the overview screen
func (h *ConsoleHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.views.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// History returns archived dashboard snapshots, newest first
func (h *ConsoleHandler) History(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	limit := p.integer("limit", 30)
	if err := p.err(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	snaps, err := h.views.History(r.Context(), int64(limit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

// Health reports the IoT service health
func (h *ConsoleHandler) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.fleet.SystemHealth(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}
