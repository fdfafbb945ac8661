package models

import "encoding/json"

// Priority ranks maintenance requests and notifications.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValidPriority checks if a priority is known.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Maintenance represents a scooter maintenance record.
type Maintenance struct {
	ID            ID        `json:"id,omitempty"`
	Reason        string    `json:"reason"`
	Priority      Priority  `json:"priority"`
	ScheduledDate Timestamp `json:"scheduledDate"`
	Note          string    `json:"maintenanceNote,omitempty"`
	Status        string    `json:"status,omitempty"` // "scheduled", "in_progress", "completed"
}

// UnmarshalJSON accepts either "id" or "_id".
func (m *Maintenance) UnmarshalJSON(data []byte) error {
	type plain Maintenance
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = mongoID(data)
	}
	return nil
}

// MaintenanceRequest is the body sent when scheduling maintenance.
type MaintenanceRequest struct {
	Reason        string    `json:"reason"`
	Priority      Priority  `json:"priority"`
	ScheduledDate Timestamp `json:"scheduledDate"`
	Note          string    `json:"maintenanceNote,omitempty"`
}
