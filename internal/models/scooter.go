package models

import (
	"encoding/json"
	"strings"
)

// ScooterStatus is the availability state of a scooter.
type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "available"
	ScooterStatusInUse       ScooterStatus = "in_use"
	ScooterStatusMaintenance ScooterStatus = "maintenance"
	ScooterStatusOffline     ScooterStatus = "offline"
)

// ScooterStatuses lists the canonical statuses in display order.
var ScooterStatuses = []ScooterStatus{
	ScooterStatusAvailable,
	ScooterStatusInUse,
	ScooterStatusMaintenance,
	ScooterStatusOffline,
}

// NormalizeScooterStatus folds the spellings seen from the scooter service
// ("in-use", "In Use", "in_use") onto the canonical form.
func NormalizeScooterStatus(s ScooterStatus) ScooterStatus {
	v := strings.ToLower(strings.TrimSpace(string(s)))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	return ScooterStatus(v)
}

// IsValidScooterStatus checks the normalised status against the known set.
func IsValidScooterStatus(s ScooterStatus) bool {
	switch NormalizeScooterStatus(s) {
	case ScooterStatusAvailable, ScooterStatusInUse, ScooterStatusMaintenance, ScooterStatusOffline:
		return true
	default:
		return false
	}
}

// Scooter represents a fleet scooter as reported by the scooter service.
type Scooter struct {
	ID                 ID            `json:"id"`
	Name               string        `json:"name"`
	Model              string        `json:"model,omitempty"`
	Status             ScooterStatus `json:"status"`
	BatteryLevel       int           `json:"batteryLevel"`
	LastStation        string        `json:"lastStation"`
	Location           string        `json:"location,omitempty"` // free text or "lat,lng"
	MaintenanceHistory []Maintenance `json:"maintenanceHistory,omitempty"`
	Telemetry          *Telemetry    `json:"telemetry,omitempty"`
}

// UnmarshalJSON accepts either "id" or "_id" and normalises the status.
func (s *Scooter) UnmarshalJSON(data []byte) error {
	type plain Scooter
	if err := json.Unmarshal(data, (*plain)(s)); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = mongoID(data)
	}
	s.Status = NormalizeScooterStatus(s.Status)
	return nil
}

// Coordinates parses Location when it holds a "lat,lng" pair.
func (s Scooter) Coordinates() (Location, bool) {
	return ParseCoordinates(s.Location)
}

// ScooterInput is the body sent when creating or editing a scooter.
type ScooterInput struct {
	Name         string        `json:"name"`
	Model        string        `json:"model,omitempty"`
	Status       ScooterStatus `json:"status"`
	BatteryLevel int           `json:"batteryLevel"`
	LastStation  string        `json:"lastStation"`
	Location     string        `json:"location,omitempty"`
}
