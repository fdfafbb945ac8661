package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/scooter-console/internal/models"
)

type recorded struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeService answers every request with reply and records what it saw.
func fakeService(t *testing.T, reply string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		rec.Body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestAuthService_Login(t *testing.T) {
	srv, rec := fakeService(t, `{"token":"abc","admin":{"_id":"adm-1","email":"ops@example.com"}}`)
	svc := NewAuthService(NewClient("auth", srv.URL+"/api", nil, time.Second))

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ops@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, models.ID("adm-1"), resp.Admin.ID)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/api/admin/login", rec.Path)
	assert.Equal(t, "ops@example.com", rec.Body["email"])
}

func TestAuthService_Me(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		wantID models.ID
		isNil  bool
	}{
		{"bare profile", `{"id":"adm-1","email":"a@b.co"}`, "adm-1", false},
		{"nested profile", `{"admin":{"_id":"adm-2","email":"a@b.co"}}`, "adm-2", false},
		{"data envelope", `{"data":{"id":"adm-3"}}`, "adm-3", false},
		{"empty object", `{}`, "", true},
		{"empty body", ``, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := fakeService(t, tt.reply)
			svc := NewAuthService(NewClient("auth", srv.URL, staticToken("tok"), time.Second))

			admin, err := svc.Me(context.Background())

			require.NoError(t, err)
			assert.Equal(t, "/admin/me", rec.Path)
			if tt.isNil {
				assert.Nil(t, admin)
				return
			}
			require.NotNil(t, admin)
			assert.Equal(t, tt.wantID, admin.ID)
		})
	}
}

func TestAuthService_Endpoints(t *testing.T) {
	srv, rec := fakeService(t, `{}`)
	svc := NewAuthService(NewClient("auth", srv.URL, staticToken("tok"), time.Second))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"create admin", func() error { _, err := svc.CreateAdmin(ctx, models.CreateAdminRequest{Email: "x@y.z"}); return err }, http.MethodPost, "/admin/create"},
		{"get user", func() error { _, err := svc.GetUser(ctx, "USR 1"); return err }, http.MethodGet, "/users/USR 1"},
		{"create user", func() error { _, err := svc.CreateUser(ctx, models.UserInput{FirstName: "A"}); return err }, http.MethodPost, "/auth/signup"},
		{"update user", func() error { _, err := svc.UpdateUser(ctx, "u1", models.UserInput{}); return err }, http.MethodPut, "/users/u1"},
		{"delete user", func() error { return svc.DeleteUser(ctx, "u1") }, http.MethodDelete, "/users/u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.path, rec.Path)
		})
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	srv, _ := fakeService(t, `{"data":[{"_id":"u1","firstName":"Jane","lastName":"Smith"}]}`)
	svc := NewAuthService(NewClient("auth", srv.URL, staticToken("tok"), time.Second))

	users, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Jane Smith", users[0].FullName())
}

func TestScooterService_ListScooters(t *testing.T) {
	srv, rec := fakeService(t, `[{"_id":"SCT-1","status":"in-use","batteryLevel":85}]`)
	svc := NewScooterService(NewClient("scooter", srv.URL+"/api", staticToken("tok"), time.Second))

	scooters, err := svc.ListScooters(context.Background(), url.Values{"status": {"in_use"}, "minBattery": {"70"}})

	require.NoError(t, err)
	assert.Equal(t, "/api/scooters/", rec.Path)
	assert.Equal(t, "in_use", rec.Query.Get("status"))
	assert.Equal(t, "70", rec.Query.Get("minBattery"))
	require.Len(t, scooters, 1)
	assert.Equal(t, models.ScooterStatusInUse, scooters[0].Status)
}

func TestScooterService_WritesNormalisedStatus(t *testing.T) {
	srv, rec := fakeService(t, `{}`)
	svc := NewScooterService(NewClient("scooter", srv.URL, staticToken("tok"), time.Second))

	require.NoError(t, svc.UpdateScooterStatus(context.Background(), "SCT-1", "In-Use"))
	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/scooters/admin/SCT-1/status", rec.Path)
	assert.Equal(t, "in_use", rec.Body["status"])

	_, err := svc.CreateScooter(context.Background(), models.ScooterInput{Name: "SCT-9", Status: "in-use"})
	require.NoError(t, err)
	assert.Equal(t, "/scooters/admin/", rec.Path)
	assert.Equal(t, "in_use", rec.Body["status"])
}

func TestScooterService_Endpoints(t *testing.T) {
	srv, rec := fakeService(t, `{}`)
	svc := NewScooterService(NewClient("scooter", srv.URL, staticToken("tok"), time.Second))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"get scooter", func() error { _, err := svc.GetScooter(ctx, "SCT-1"); return err }, http.MethodGet, "/scooters/SCT-1"},
		{"update scooter", func() error { _, err := svc.UpdateScooter(ctx, "SCT-1", models.ScooterInput{}); return err }, http.MethodPut, "/scooters/admin/SCT-1"},
		{"delete scooter", func() error { return svc.DeleteScooter(ctx, "SCT-1") }, http.MethodDelete, "/scooters/admin/SCT-1"},
		{"maintenance", func() error {
			_, err := svc.ScheduleMaintenance(ctx, "SCT-1", models.MaintenanceRequest{Reason: "brakes"})
			return err
		}, http.MethodPost, "/scooters/admin/SCT-1/maintenance"},
		{"get ride", func() error { _, err := svc.GetRide(ctx, "BK-1"); return err }, http.MethodGet, "/rides/BK-1"},
		{"end ride", func() error { _, err := svc.EndRide(ctx, "BK-1"); return err }, http.MethodPut, "/rides/BK-1/end"},
		{"latest telemetry", func() error { _, err := svc.LatestTelemetry(ctx, "SCT-1"); return err }, http.MethodGet, "/iot/telemetry/SCT-1"},
		{"health", func() error { _, err := svc.SystemHealth(ctx); return err }, http.MethodGet, "/iot/health"},
		{"create promotion", func() error { _, err := svc.CreatePromotion(ctx, models.Promotion{Code: "X"}); return err }, http.MethodPost, "/promotions"},
		{"update promotion", func() error { _, err := svc.UpdatePromotion(ctx, "p1", models.Promotion{}); return err }, http.MethodPut, "/promotions/p1"},
		{"delete promotion", func() error { return svc.DeletePromotion(ctx, "p1") }, http.MethodDelete, "/promotions/p1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.path, rec.Path)
		})
	}
}

func TestScooterService_Lists(t *testing.T) {
	srv, rec := fakeService(t, `[]`)
	svc := NewScooterService(NewClient("scooter", srv.URL, staticToken("tok"), time.Second))
	ctx := context.Background()

	_, err := svc.ListRides(ctx, url.Values{"status": {"active"}})
	require.NoError(t, err)
	assert.Equal(t, "/rides/all", rec.Path)
	assert.Equal(t, "active", rec.Query.Get("status"))

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.TelemetryHistory(ctx, "SCT-1", start, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "/iot/telemetry/SCT-1/history", rec.Path)
	assert.Equal(t, "2024-02-01T00:00:00Z", rec.Query.Get("start"))
	assert.False(t, rec.Query.Has("end"))

	for path, call := range map[string]func() error{
		"/iot/maintenance/required": func() error { _, err := svc.MaintenanceRequired(ctx); return err },
		"/iot/battery/low":          func() error { _, err := svc.LowBattery(ctx); return err },
		"/payments":                 func() error { _, err := svc.ListPayments(ctx); return err },
		"/promotions":               func() error { _, err := svc.ListPromotions(ctx); return err },
	} {
		require.NoError(t, call())
		assert.Equal(t, path, rec.Path)
	}
}
