package handlers

import (
	"net/http"

	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/validation"
)

// Users returns the filtered rider list
func (h *ConsoleHandler) Users(w http.ResponseWriter, r *http.Request) {
	f := parseUserFilter(r)
	users, err := h.riders.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f.Apply(users))
}

// GetUser returns a single rider
func (h *ConsoleHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.riders.GetUser(r.Context(), pathID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUser signs up a rider on their behalf
func (h *ConsoleHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.User(in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	user, err := h.riders.CreateUser(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser edits a rider
func (h *ConsoleHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.User(in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	user, err := h.riders.UpdateUser(r.Context(), pathID(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a rider
func (h *ConsoleHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.riders.DeleteUser(r.Context(), pathID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateAdmin registers another console operator
func (h *ConsoleHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.Admin(req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	admin, err := h.riders.CreateAdmin(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}
