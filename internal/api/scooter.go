package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
)

// ScooterService is the scooter, ride, IoT and billing service.
type ScooterService struct {
	client *Client
}

// NewScooterService wraps a client rooted at the scooter service's /api.
func NewScooterService(client *Client) *ScooterService {
	return &ScooterService{client: client}
}

func idPath(prefix string, id models.ID, suffix string) string {
	return prefix + url.PathEscape(id.String()) + suffix
}

// ListScooters returns scooters, filtered server side by status and minBattery.
func (s *ScooterService) ListScooters(ctx context.Context, query url.Values) ([]models.Scooter, error) {
	return getList[models.Scooter](ctx, s.client, "/scooters/", query)
}

// GetScooter returns one scooter.
func (s *ScooterService) GetScooter(ctx context.Context, id models.ID) (*models.Scooter, error) {
	var scooter models.Scooter
	if err := s.client.do(ctx, http.MethodGet, idPath("/scooters/", id, ""), nil, nil, &scooter); err != nil {
		return nil, err
	}
	return &scooter, nil
}

// CreateScooter adds a scooter to the fleet.
func (s *ScooterService) CreateScooter(ctx context.Context, in models.ScooterInput) (*models.Scooter, error) {
	in.Status = models.NormalizeScooterStatus(in.Status)
	var scooter models.Scooter
	if err := s.client.do(ctx, http.MethodPost, "/scooters/admin/", nil, in, &scooter); err != nil {
		return nil, err
	}
	return &scooter, nil
}

// UpdateScooter edits a scooter.
func (s *ScooterService) UpdateScooter(ctx context.Context, id models.ID, in models.ScooterInput) (*models.Scooter, error) {
	in.Status = models.NormalizeScooterStatus(in.Status)
	var scooter models.Scooter
	if err := s.client.do(ctx, http.MethodPut, idPath("/scooters/admin/", id, ""), nil, in, &scooter); err != nil {
		return nil, err
	}
	return &scooter, nil
}

// UpdateScooterStatus changes only the status.
func (s *ScooterService) UpdateScooterStatus(ctx context.Context, id models.ID, status models.ScooterStatus) error {
	body := map[string]models.ScooterStatus{"status": models.NormalizeScooterStatus(status)}
	return s.client.do(ctx, http.MethodPut, idPath("/scooters/admin/", id, "/status"), nil, body, nil)
}

// DeleteScooter removes a scooter from the fleet.
func (s *ScooterService) DeleteScooter(ctx context.Context, id models.ID) error {
	return s.client.do(ctx, http.MethodDelete, idPath("/scooters/admin/", id, ""), nil, nil, nil)
}

// ScheduleMaintenance books a maintenance slot for a scooter.
func (s *ScooterService) ScheduleMaintenance(ctx context.Context, id models.ID, req models.MaintenanceRequest) (*models.Maintenance, error) {
	var m models.Maintenance
	if err := s.client.do(ctx, http.MethodPost, idPath("/scooters/admin/", id, "/maintenance"), nil, req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListRides returns rides, filtered server side by status and date range.
func (s *ScooterService) ListRides(ctx context.Context, query url.Values) ([]models.Ride, error) {
	return getList[models.Ride](ctx, s.client, "/rides/all", query)
}

// GetRide returns one ride.
func (s *ScooterService) GetRide(ctx context.Context, id models.ID) (*models.Ride, error) {
	var ride models.Ride
	if err := s.client.do(ctx, http.MethodGet, idPath("/rides/", id, ""), nil, nil, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// EndRide force-ends an active ride.
func (s *ScooterService) EndRide(ctx context.Context, id models.ID) (*models.Ride, error) {
	var ride models.Ride
	if err := s.client.do(ctx, http.MethodPut, idPath("/rides/", id, "/end"), nil, nil, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// LatestTelemetry returns the newest reading for a scooter.
func (s *ScooterService) LatestTelemetry(ctx context.Context, id models.ID) (*models.Telemetry, error) {
	var t models.Telemetry
	if err := s.client.do(ctx, http.MethodGet, idPath("/iot/telemetry/", id, ""), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TelemetryHistory returns readings for a scooter. Either bound may be zero.
func (s *ScooterService) TelemetryHistory(ctx context.Context, id models.ID, start, end time.Time) ([]models.Telemetry, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("start", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("end", end.Format(time.RFC3339))
	}
	return getList[models.Telemetry](ctx, s.client, idPath("/iot/telemetry/", id, "/history"), q)
}

// MaintenanceRequired lists scooters the IoT service flags for service.
func (s *ScooterService) MaintenanceRequired(ctx context.Context) ([]models.Scooter, error) {
	return getList[models.Scooter](ctx, s.client, "/iot/maintenance/required", nil)
}

// LowBattery lists scooters the IoT service reports as low on battery.
func (s *ScooterService) LowBattery(ctx context.Context) ([]models.Scooter, error) {
	return getList[models.Scooter](ctx, s.client, "/iot/battery/low", nil)
}

// SystemHealth returns the IoT service health report.
func (s *ScooterService) SystemHealth(ctx context.Context) (*models.SystemHealth, error) {
	var h models.SystemHealth
	if err := s.client.do(ctx, http.MethodGet, "/iot/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListPayments returns payment records.
func (s *ScooterService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return getList[models.Payment](ctx, s.client, "/payments", nil)
}

// ListPromotions returns every promotion.
func (s *ScooterService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return getList[models.Promotion](ctx, s.client, "/promotions", nil)
}

// CreatePromotion adds a promotion.
func (s *ScooterService) CreatePromotion(ctx context.Context, p models.Promotion) (*models.Promotion, error) {
	var out models.Promotion
	if err := s.client.do(ctx, http.MethodPost, "/promotions", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePromotion edits a promotion.
func (s *ScooterService) UpdatePromotion(ctx context.Context, id models.ID, p models.Promotion) (*models.Promotion, error) {
	var out models.Promotion
	if err := s.client.do(ctx, http.MethodPut, idPath("/promotions/", id, ""), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePromotion removes a promotion.
func (s *ScooterService) DeletePromotion(ctx context.Context, id models.ID) error {
	return s.client.do(ctx, http.MethodDelete, idPath("/promotions/", id, ""), nil, nil, nil)
}
