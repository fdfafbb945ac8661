package handlers

import (
	"context"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/api"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/session"
	"github.com/ukydev/scooter-console/internal/validation"
)

// SessionGate is the part of the session gate the handlers drive.
type SessionGate interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Admin, error)
	Logout()
	Status() session.Status
}

// AuthHandler handles the console's sign-in endpoints
type AuthHandler struct {
	gate SessionGate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(gate SessionGate) *AuthHandler {
	return &AuthHandler{
		gate: gate,
	}
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := decodeJSON(r, &loginReq); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validation.Credentials(loginReq); err != nil {
		writeServiceError(w, r, err)
		return
	}

	admin, err := h.gate.Login(r.Context(), loginReq)
	if err != nil {
		var apiErr *api.APIError
		switch {
		case errors.Is(err, session.ErrMissingToken):
			writeError(w, http.StatusBadGateway, err.Error())
		case errors.As(err, &apiErr) && apiErr.StatusCode < 500:
			msg := apiErr.Message
			if msg == "" {
				msg = "Login failed"
			}
			writeError(w, http.StatusUnauthorized, msg)
		default:
			log.WithError(err).Error("Login failed")
			writeError(w, http.StatusBadGateway, failedMessage)
		}
		return
	}

	writeJSON(w, http.StatusOK, session.Status{State: session.StateAuthenticated, Admin: admin})
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// GetSession returns the session state and the signed-in admin
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gate.Status())
}
