package filter

import (
	"net/url"
	"strconv"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
)

// RideFilter is the bookings screen selection.
type RideFilter struct {
	Search      string
	Statuses    []string
	MinAmount   *float64
	MaxAmount   *float64
	MinDuration *float64
	MaxDuration *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
}

// Predicates returns one predicate per active dimension.
func (f RideFilter) Predicates() []Predicate[models.Ride] {
	return compact(
		Search(f.Search,
			func(r models.Ride) string { return r.ID.String() },
			func(r models.Ride) string { return r.UserID.String() },
			func(r models.Ride) string { return r.UserName },
			func(r models.Ride) string { return r.ScooterID.String() },
			func(r models.Ride) string { return r.Location },
		),
		StatusIn(f.Statuses, func(r models.Ride) string { return string(r.Status) }),
		Range(f.MinAmount, f.MaxAmount, func(r models.Ride) float64 { return r.Amount }),
		Range(f.MinDuration, f.MaxDuration, func(r models.Ride) float64 { return r.DurationMinutes() }),
		DateRange(f.StartDate, f.EndDate, func(r models.Ride) time.Time { return r.StartTime.Time }),
		Search(f.Location, func(r models.Ride) string { return r.Location }),
	)
}

// Apply filters rides by every active dimension.
func (f RideFilter) Apply(rides []models.Ride) []models.Ride {
	return Apply(rides, f.Predicates()...)
}

// Query returns the parameters the ride service filters by itself. The
// service takes a single status, so it is only sent when exactly one is selected.
func (f RideFilter) Query() url.Values {
	q := url.Values{}
	if len(f.Statuses) == 1 && f.Statuses[0] != "all" {
		q.Set("status", f.Statuses[0])
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.Format(time.RFC3339))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.Format(time.RFC3339))
	}
	return q
}

// ScooterFilter is the scooters screen selection.
type ScooterFilter struct {
	Search     string
	Status     string
	MinBattery *float64
	MaxBattery *float64
}

// Predicates returns one predicate per active dimension. Status is compared
// after normalising both sides, so "in-use" selects "in_use" scooters.
func (f ScooterFilter) Predicates() []Predicate[models.Scooter] {
	status := f.Status
	if status != "" && status != "all" {
		status = string(models.NormalizeScooterStatus(models.ScooterStatus(status)))
	}
	return compact(
		Search(f.Search,
			func(s models.Scooter) string { return s.ID.String() },
			func(s models.Scooter) string { return s.Name },
			func(s models.Scooter) string { return s.LastStation },
			func(s models.Scooter) string { return s.Location },
		),
		Status(status, func(s models.Scooter) string {
			return string(models.NormalizeScooterStatus(s.Status))
		}),
		Range(f.MinBattery, f.MaxBattery, func(s models.Scooter) float64 { return float64(s.BatteryLevel) }),
	)
}

// Apply filters scooters by every active dimension.
func (f ScooterFilter) Apply(scooters []models.Scooter) []models.Scooter {
	return Apply(scooters, f.Predicates()...)
}

// Query returns the parameters the scooter service filters by itself.
func (f ScooterFilter) Query() url.Values {
	q := url.Values{}
	if f.Status != "" && f.Status != "all" {
		q.Set("status", string(models.NormalizeScooterStatus(models.ScooterStatus(f.Status))))
	}
	if f.MinBattery != nil && *f.MinBattery > 0 {
		q.Set("minBattery", strconv.FormatFloat(*f.MinBattery, 'f', -1, 64))
	}
	return q
}

// UserFilter is the users screen selection.
type UserFilter struct {
	Search string
	Status string
}

// Predicates returns one predicate per active dimension.
func (f UserFilter) Predicates() []Predicate[models.User] {
	return compact(
		Search(f.Search,
			func(u models.User) string { return u.ID.String() },
			func(u models.User) string { return u.FullName() },
			func(u models.User) string { return u.Email },
			func(u models.User) string { return u.Phone },
		),
		Status(f.Status, func(u models.User) string { return string(u.Status) }),
	)
}

// Apply filters users by every active dimension.
func (f UserFilter) Apply(users []models.User) []models.User {
	return Apply(users, f.Predicates()...)
}

// PromotionFilter is the promotions screen selection.
type PromotionFilter struct {
	Search string
	Status string
}

// Predicates returns one predicate per active dimension.
func (f PromotionFilter) Predicates() []Predicate[models.Promotion] {
	return compact(
		Search(f.Search,
			func(p models.Promotion) string { return p.Title },
			func(p models.Promotion) string { return p.Code },
		),
		Status(f.Status, func(p models.Promotion) string { return string(p.Status) }),
	)
}

// Apply filters promotions by every active dimension.
func (f PromotionFilter) Apply(promos []models.Promotion) []models.Promotion {
	return Apply(promos, f.Predicates()...)
}

// PaymentFilter is the payment report selection.
type PaymentFilter struct {
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Predicates returns one predicate per active dimension.
func (f PaymentFilter) Predicates() []Predicate[models.Payment] {
	return compact(
		Search(f.Search,
			func(p models.Payment) string { return p.ID.String() },
			func(p models.Payment) string { return p.UserName },
			func(p models.Payment) string { return p.UserID.String() },
		),
		Status(f.Status, func(p models.Payment) string { return string(p.Status) }),
		DateRange(f.StartDate, f.EndDate, func(p models.Payment) time.Time { return p.Date.Time }),
	)
}

// Apply filters payments by every active dimension.
func (f PaymentFilter) Apply(payments []models.Payment) []models.Payment {
	return Apply(payments, f.Predicates()...)
}

// NotificationFilter is the notifications screen selection.
type NotificationFilter struct {
	Type     string
	Priority string
	Status   string
}

// Predicates returns one predicate per active dimension.
func (f NotificationFilter) Predicates() []Predicate[models.Notification] {
	return compact(
		Status(f.Type, func(n models.Notification) string { return n.Type }),
		Status(f.Priority, func(n models.Notification) string { return string(n.Priority) }),
		Status(f.Status, func(n models.Notification) string { return string(n.Status) }),
	)
}

// Apply filters notifications by every active dimension.
func (f NotificationFilter) Apply(items []models.Notification) []models.Notification {
	return Apply(items, f.Predicates()...)
}

// compact drops the nil predicates of inactive dimensions.
func compact[T any](preds ...Predicate[T]) []Predicate[T] {
	out := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
