package handlers

import (
	"net/http"

	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/validation"
)

// Promotions returns the filtered promotions with usage and effective status
func (h *ConsoleHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	summary, err := h.views.Promotions(r.Context(), parsePromotionFilter(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// CreatePromotion adds a discount code
func (h *ConsoleHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var p models.Promotion
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Promotion(p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	created, err := h.fleet.CreatePromotion(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePromotion edits a discount code
func (h *ConsoleHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	var p models.Promotion
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Promotion(p); err != nil {
		writeServiceError(w, r, err)
		return
	}
	updated, err := h.fleet.UpdatePromotion(r.Context(), pathID(r), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePromotion removes a discount code
func (h *ConsoleHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	if err := h.fleet.DeletePromotion(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
