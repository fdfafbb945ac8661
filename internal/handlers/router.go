package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ukydev/scooter-console/internal/middleware"
)

// maxBodyBytes caps every request body the console accepts.
const maxBodyBytes = 1 << 20

// RouterConfig holds everything the console router needs.
type RouterConfig struct {
	Auth           *AuthHandler
	Console        *ConsoleHandler
	Gate           middleware.Gate
	AllowedOrigins []string
	LoginLimit     int
	LoginWindow    time.Duration
	// TrustProxy takes the client address from X-Forwarded-For and X-Real-IP.
	// Leave it off unless a proxy in front of the console sets them.
	TrustProxy bool
}

// NewRouter builds the console's HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.LoginWindow <= 0 {
		cfg.LoginWindow = time.Minute
	}
	if cfg.LoginLimit <= 0 {
		cfg.LoginLimit = 10
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.Gate)
	rateLimiter := middleware.NewRateLimitMiddleware()
	h := cfg.Console

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.With(rateLimiter.RateLimit(cfg.LoginLimit, cfg.LoginWindow)).Post("/login", cfg.Auth.Login)
			r.Post("/logout", cfg.Auth.Logout)
			r.Get("/", cfg.Auth.GetSession)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			perm := authMiddleware.RequirePermission

			r.Get("/health", h.Health)
			r.Get("/dashboard", h.Dashboard)
			r.Get("/dashboard/history", h.History)

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", h.Bookings)
				r.Get("/{id}", h.GetRide)
				r.With(perm("end_ride")).Post("/{id}/end", h.EndRide)
			})

			r.Route("/scooters", func(r chi.Router) {
				r.Get("/", h.Scooters)
				r.Get("/alerts", h.Alerts)
				r.With(perm("manage_scooters")).Post("/", h.CreateScooter)
				r.Get("/{id}", h.GetScooter)
				r.With(perm("manage_scooters")).Put("/{id}", h.UpdateScooter)
				r.With(perm("manage_scooters")).Put("/{id}/status", h.UpdateScooterStatus)
				r.With(perm("manage_scooters")).Delete("/{id}", h.DeleteScooter)
				r.With(perm("schedule_maintenance")).Post("/{id}/maintenance", h.ScheduleMaintenance)
				r.Get("/{id}/telemetry", h.LatestTelemetry)
				r.Get("/{id}/telemetry/history", h.TelemetryHistory)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Users)
				r.With(perm("manage_users")).Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.With(perm("manage_users")).Put("/{id}", h.UpdateUser)
				r.With(perm("delete_user")).Delete("/{id}", h.DeleteUser)
			})

			r.With(perm("manage_admins")).Post("/admins", h.CreateAdmin)

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", h.Promotions)
				r.With(perm("manage_promotions")).Post("/", h.CreatePromotion)
				r.With(perm("manage_promotions")).Put("/{id}", h.UpdatePromotion)
				r.With(perm("manage_promotions")).Delete("/{id}", h.DeletePromotion)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(perm("view_reports"))
				r.Get("/payments", h.Payments)
				r.Get("/revenue", h.Revenue)
			})

			r.Get("/notifications", h.Notifications)
			r.Post("/notifications/{id}/read", h.MarkNotificationRead)
		})
	})

	return r
}
