package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/api"
	"github.com/ukydev/scooter-console/internal/validation"
)

// failedMessage is shown whenever a service call fails for a reason the
// operator cannot fix.
const failedMessage = "failed, please try again"

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps an error from validation or a service call onto the
// console's answer. Validation fails with 400 and the field messages, a
// rejected session with 401, a missing record with 404. Anything else is 502.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fe})
		return
	}

	entry := log.WithError(err).WithFields(log.Fields{"method": r.Method, "path": r.URL.Path})
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		entry.Warn("Service rejected the session")
		writeError(w, http.StatusUnauthorized, "session expired")
	case errors.Is(err, api.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		entry.Error("Service call failed")
		writeError(w, http.StatusBadGateway, failedMessage)
	}
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
