package handlers

import (
	"net/http"
	"time"

	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/validation"
)

// telemetryWindow is the default history span when no range is given.
const telemetryWindow = 24 * time.Hour

// Scooters returns the filtered fleet with its summary
func (h *ConsoleHandler) Scooters(w http.ResponseWriter, r *http.Request) {
	f, err := parseScooterFilter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s, err := h.views.Scooters(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetScooter returns a single scooter
func (h *ConsoleHandler) GetScooter(w http.ResponseWriter, r *http.Request) {
	scooter, err := h.fleet.GetScooter(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

// CreateScooter adds a scooter to the fleet
func (h *ConsoleHandler) CreateScooter(w http.ResponseWriter, r *http.Request) {
	var in models.ScooterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Scooter(in, true); err != nil {
		writeServiceError(w, r, err)
		return
	}
	scooter, err := h.fleet.CreateScooter(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, scooter)
}

// UpdateScooter edits a scooter
func (h *ConsoleHandler) UpdateScooter(w http.ResponseWriter, r *http.Request) {
	var in models.ScooterInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Scooter(in, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	scooter, err := h.fleet.UpdateScooter(r.Context(), pathID(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scooter)
}

// UpdateScooterStatus changes only the availability state
func (h *ConsoleHandler) UpdateScooterStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status models.ScooterStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.ScooterStatus(body.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := h.fleet.UpdateScooterStatus(r.Context(), pathID(r), body.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteScooter removes a scooter
func (h *ConsoleHandler) DeleteScooter(w http.ResponseWriter, r *http.Request) {
	if err := h.fleet.DeleteScooter(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ScheduleMaintenance books a maintenance slot for a scooter
func (h *ConsoleHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req models.MaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Maintenance(req, h.now()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	m, err := h.fleet.ScheduleMaintenance(r.Context(), pathID(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// LatestTelemetry returns the newest reading, preferring the live feed
func (h *ConsoleHandler) LatestTelemetry(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if h.feed != nil {
		if t, ok := h.feed.Latest(id); ok {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	t, err := h.fleet.LatestTelemetry(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type scooterAlerts struct {
	MaintenanceRequired []models.Scooter   `json:"maintenanceRequired"`
	LowBattery          []models.Scooter   `json:"lowBattery"`
	LiveLowBattery      []models.Telemetry `json:"liveLowBattery"`
}

// Alerts lists scooters the IoT service flags for maintenance or charging,
// plus those the live feed currently reads as low
func (h *ConsoleHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	maintenance, err := h.fleet.MaintenanceRequired(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	low, err := h.fleet.LowBattery(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	resp := scooterAlerts{
		MaintenanceRequired: maintenance,
		LowBattery:          low,
		LiveLowBattery:      []models.Telemetry{},
	}
	if resp.MaintenanceRequired == nil {
		resp.MaintenanceRequired = []models.Scooter{}
	}
	if resp.LowBattery == nil {
		resp.LowBattery = []models.Scooter{}
	}
	if h.feed != nil {
		resp.LiveLowBattery = append(resp.LiveLowBattery, h.feed.LowBattery()...)
	}
	writeJSON(w, http.StatusOK, resp)
}

// TelemetryHistory returns the readings in a range, the last day by default
func (h *ConsoleHandler) TelemetryHistory(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	start, end := p.dateRange()
	if err := p.err(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	to := h.now()
	if end != nil {
		to = *end
	}
	from := to.Add(-telemetryWindow)
	if start != nil {
		from = *start
	}
	readings, err := h.fleet.TelemetryHistory(r.Context(), pathID(r), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}
