package handlers

import (
	"net/http"
)

// Bookings returns the filtered ride list with its summary
func (h *ConsoleHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	f, err := parseRideFilter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	b, err := h.views.Bookings(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GetRide returns a single ride
func (h *ConsoleHandler) GetRide(w http.ResponseWriter, r *http.Request) {
	ride, err := h.fleet.GetRide(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ride)
}

// EndRide force-ends an in-progress ride
func (h *ConsoleHandler) EndRide(w http.ResponseWriter, r *http.Request) {
	ride, err := h.fleet.EndRide(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ride)
}

// Revenue returns the ride revenue report
func (h *ConsoleHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	f, err := parseRideFilter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	report, err := h.views.Revenue(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Payments returns the payment report
func (h *ConsoleHandler) Payments(w http.ResponseWriter, r *http.Request) {
	f, err := parsePaymentFilter(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	report, err := h.views.Payments(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
