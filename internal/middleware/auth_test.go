package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/scooter-console/internal/models"
	"github.com/ukydev/scooter-console/internal/session"
)

type fakeGate session.Status

func (g fakeGate) Status() session.Status { return session.Status(g) }

func TestAuthMiddleware_Authenticate(t *testing.T) {
	admin := &models.Admin{ID: "adm-1", Email: "ops@example.com", Role: models.RoleOperator}

	t.Run("authenticated", func(t *testing.T) {
		m := NewAuthMiddleware(fakeGate{State: session.StateAuthenticated, Admin: admin})
		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			got, ok := GetAdminFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, admin, got)
		})

		m.Authenticate(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	for _, state := range []session.State{session.StateUnauthenticated, session.StateChecking} {
		t.Run(string(state), func(t *testing.T) {
			m := NewAuthMiddleware(fakeGate{State: state})
			req := httptest.NewRequest("GET", "/api/dashboard", nil)
			w := httptest.NewRecorder()

			handlerCalled := false
			m.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerCalled = true })).ServeHTTP(w, req)

			assert.False(t, handlerCalled)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"not authenticated"}`, w.Body.String())
		})
	}
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	m := NewAuthMiddleware(fakeGate{})
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name       string
		admin      *models.Admin
		action     string
		wantStatus int
	}{
		{"admin can delete users", &models.Admin{Role: models.RoleAdmin}, "delete_user", http.StatusOK},
		{"empty role is admin", &models.Admin{}, "manage_admins", http.StatusOK},
		{"manager cannot delete users", &models.Admin{Role: models.RoleManager}, "delete_user", http.StatusForbidden},
		{"operator can end rides", &models.Admin{Role: models.RoleOperator}, "end_ride", http.StatusOK},
		{"viewer cannot manage scooters", &models.Admin{Role: models.RoleViewer}, "manage_scooters", http.StatusForbidden},
		{"no admin in context", nil, "view_reports", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/users", nil)
			if tt.admin != nil {
				req = req.WithContext(context.WithValue(req.Context(), AdminContextKey, tt.admin))
			}
			w := httptest.NewRecorder()

			m.RequirePermission(tt.action)(ok).ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware()
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	handler := rl.RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	call := func(ip string) int {
		req := httptest.NewRequest("POST", "/api/session/login", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"), "limits are per client")

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1"), "window slides")
}

func TestRateLimitMiddleware_IgnoresForwardedFor(t *testing.T) {
	rl := NewRateLimitMiddleware()
	handler := rl.RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 4)
	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3", "198.51.100.4"} {
		req := httptest.NewRequest("POST", "/api/session/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_PrunesIdleClients(t *testing.T) {
	rl := NewRateLimitMiddleware()
	now := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		assert.True(t, rl.allow("10.0.1."+strconv.Itoa(i), 5, time.Minute))
	}
	require.Len(t, rl.requests, 50)

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.allow("10.0.0.9", 5, time.Minute))

	assert.Len(t, rl.requests, 1)
	assert.Contains(t, rl.requests, "10.0.0.9")
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "[::1]:4000"
	assert.Equal(t, "::1", getClientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.7")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "::1", getClientIP(req), "forwarding headers are not trusted")

	req.RemoteAddr = "192.0.2.9"
	assert.Equal(t, "192.0.2.9", getClientIP(req))
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
