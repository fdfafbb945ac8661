// Package dashboard assembles the console's view models: it fetches from the
// services, narrows with the operator's filters and aggregates the result.
package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/db"
	"github.com/ukydev/scooter-console/internal/filter"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/stats"
)

// recentBookings is how many rides the dashboard lists.
const recentBookings = 5

// RideSource lists rides from the ride service.
type RideSource interface {
	ListRides(ctx context.Context, query url.Values) ([]models.Ride, error)
}

// ScooterSource lists scooters from the scooter service.
type ScooterSource interface {
	ListScooters(ctx context.Context, query url.Values) ([]models.Scooter, error)
}

// BillingSource lists payments and promotions.
type BillingSource interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
}

// Sources bundles the service clients the dashboard reads from.
type Sources interface {
	RideSource
	ScooterSource
	BillingSource
}

// Dashboard is the landing screen.
type Dashboard struct {
	Summary     stats.Summary       `json:"summary"`
	Fleet       stats.FleetSummary  `json:"fleet"`
	Days        []stats.DayBucket   `json:"days"`
	Hours       []stats.HourBand    `json:"hours"`
	Months      []stats.MonthBucket `json:"months"`
	RecentRides []models.Ride       `json:"recentRides"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Bookings is the bookings screen: the filtered list and its statistics.
type Bookings struct {
	Rides   []models.Ride     `json:"rides"`
	Summary stats.Summary     `json:"summary"`
	Days    []stats.DayBucket `json:"days"`
	Hours   []stats.HourBand  `json:"hours"`
}

// Scooters is the scooters screen. BatteryBands maps each listed scooter to
// its gauge colour.
type Scooters struct {
	Scooters     []models.Scooter     `json:"scooters"`
	Fleet        stats.FleetSummary   `json:"fleet"`
	BatteryBands map[models.ID]string `json:"batteryBands"`
}

// PaymentReport is the payments tab of the reports screen.
type PaymentReport struct {
	Payments []models.Payment     `json:"payments"`
	Summary  stats.PaymentSummary `json:"summary"`
}

// RevenueReport is the revenue tab of the reports screen.
type RevenueReport struct {
	Months  []stats.MonthBucket `json:"months"`
	Days    []stats.DayBucket   `json:"days"`
	Summary stats.Summary       `json:"summary"`
}

// Service builds view models.
type Service struct {
	src        Sources
	archive    db.SnapshotCollection
	lowBattery int
	loc        *time.Location
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithArchive records every dashboard in coll.
func WithArchive(coll db.SnapshotCollection) Option {
	return func(s *Service) { s.archive = coll }
}

// WithLocation sets the zone used to bucket rides by day and hour.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithLowBattery sets the battery level below which a scooter counts as low.
func WithLowBattery(threshold int) Option {
	return func(s *Service) { s.lowBattery = threshold }
}

// NewService creates a Service reading from src.
func NewService(src Sources, opts ...Option) *Service {
	s := &Service{
		src:        src,
		lowBattery: stats.DefaultLowBattery,
		loc:        time.Local,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard fetches all rides and scooters and aggregates them.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	rides, err := s.src.ListRides(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rides: %w", err)
	}
	scooters, err := s.src.ListScooters(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scooters: %w", err)
	}

	d := &Dashboard{
		Summary:     stats.ComputeSummary(rides),
		Fleet:       stats.SummarizeFleet(scooters, s.lowBattery),
		Days:        stats.GroupByDayOfWeekIn(rides, s.loc),
		Hours:       stats.GroupByHourBandIn(rides, s.loc),
		Months:      stats.GroupByMonth(rides, s.loc),
		RecentRides: latest(rides, recentBookings),
		GeneratedAt: s.now(),
	}

	if s.archive != nil {
		if err := s.archive.InsertSnapshot(ctx, snapshotOf(d)); err != nil {
			log.WithError(err).Warn("Failed to archive dashboard snapshot")
		}
	}
	return d, nil
}

// History returns archived dashboards, newest first.
func (s *Service) History(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	if s.archive == nil {
		return []models.DashboardSnapshot{}, nil
	}
	return db.LoadSnapshots(ctx, s.archive, limit)
}

// Bookings fetches rides narrowed server side where possible, then applies
// every filter dimension locally.
func (s *Service) Bookings(ctx context.Context, f filter.RideFilter) (*Bookings, error) {
	rides, err := s.src.ListRides(ctx, f.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rides: %w", err)
	}
	rides = f.Apply(rides)
	return &Bookings{
		Rides:   rides,
		Summary: stats.ComputeSummary(rides),
		Days:    stats.GroupByDayOfWeekIn(rides, s.loc),
		Hours:   stats.GroupByHourBandIn(rides, s.loc),
	}, nil
}

// Scooters fetches and filters the fleet.
func (s *Service) Scooters(ctx context.Context, f filter.ScooterFilter) (*Scooters, error) {
	scooters, err := s.src.ListScooters(ctx, f.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scooters: %w", err)
	}
	scooters = f.Apply(scooters)
	bands := make(map[models.ID]string, len(scooters))
	for _, sc := range scooters {
		bands[sc.ID] = stats.BatteryBand(sc.BatteryLevel)
	}
	return &Scooters{
		Scooters:     scooters,
		Fleet:        stats.SummarizeFleet(scooters, s.lowBattery),
		BatteryBands: bands,
	}, nil
}

// Payments fetches and filters payment records.
func (s *Service) Payments(ctx context.Context, f filter.PaymentFilter) (*PaymentReport, error) {
	payments, err := s.src.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	payments = f.Apply(payments)
	return &PaymentReport{Payments: payments, Summary: stats.SummarizePayments(payments)}, nil
}

// Revenue builds the monthly revenue report for the rides in f.
func (s *Service) Revenue(ctx context.Context, f filter.RideFilter) (*RevenueReport, error) {
	rides, err := s.src.ListRides(ctx, f.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rides: %w", err)
	}
	rides = f.Apply(rides)
	return &RevenueReport{
		Months:  stats.GroupByMonth(rides, s.loc),
		Days:    stats.GroupByDayOfWeekIn(rides, s.loc),
		Summary: stats.ComputeSummary(rides),
	}, nil
}

// Promotions fetches, filters and summarizes promotions.
func (s *Service) Promotions(ctx context.Context, f filter.PromotionFilter) (*stats.PromotionSummary, error) {
	promos, err := s.src.ListPromotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promotions: %w", err)
	}
	summary := stats.SummarizePromotions(f.Apply(promos), s.now())
	return &summary, nil
}

// latest returns up to n rides with the newest start time first.
func latest(rides []models.Ride, n int) []models.Ride {
	sorted := make([]models.Ride, len(rides))
	copy(sorted, rides)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func snapshotOf(d *Dashboard) models.DashboardSnapshot {
	byState := make(map[string]int, len(d.Fleet.ByStatus))
	for st, n := range d.Fleet.ByStatus {
		byState[string(st)] = n
	}
	byDay := make(map[string]int, len(d.Days))
	for _, b := range d.Days {
		byDay[b.Day] = b.BookingCount
	}
	return models.DashboardSnapshot{
		TakenAt:         d.GeneratedAt,
		TotalRides:      d.Summary.TotalCount,
		ActiveRides:     d.Summary.ActiveCount,
		UniqueUsers:     d.Summary.UniqueUserCount,
		TotalRevenue:    d.Summary.TotalRevenue,
		TotalScooters:   d.Fleet.Total,
		LowBattery:      d.Fleet.LowBattery,
		ScootersByState: byState,
		RidesByDay:      byDay,
	}
}
