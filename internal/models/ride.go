package models

import "encoding/json"

// RideStatus is the lifecycle state of a booking.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusActive    RideStatus = "active"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// IsValidRideStatus checks if a ride status is one the ride service knows.
func IsValidRideStatus(s RideStatus) bool {
	switch s {
	case RideStatusPending, RideStatusActive, RideStatusCompleted, RideStatusCancelled:
		return true
	default:
		return false
	}
}

// Ride represents a single rental of a scooter by a user.
// EndTime is zero while the ride is in progress.
type Ride struct {
	ID        ID         `json:"id"`
	UserID    ID         `json:"userId"`
	UserName  string     `json:"userName,omitempty"`
	ScooterID ID         `json:"scooterId"`
	StartTime Timestamp  `json:"startTime"`
	EndTime   Timestamp  `json:"endTime"`
	Duration  float64    `json:"duration"` // in minutes
	Distance  float64    `json:"distance"` // in kilometers
	Amount    float64    `json:"amount"`
	Status    RideStatus `json:"status"`
	Location  string     `json:"location,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id".
func (r *Ride) UnmarshalJSON(data []byte) error {
	type plain Ride
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = mongoID(data)
	}
	return nil
}

// DurationMinutes returns the reported duration, falling back to the span
// between start and end when the service left it out.
func (r Ride) DurationMinutes() float64 {
	if r.Duration > 0 {
		return r.Duration
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() || r.EndTime.Before(r.StartTime.Time) {
		return 0
	}
	return r.EndTime.Sub(r.StartTime.Time).Minutes()
}

// InProgress reports whether the ride has not ended yet.
func (r Ride) InProgress() bool {
	return r.Status == RideStatusActive
}
