package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/scooter-console/internal/api"
	"github.com/ukydev/scooter-console/internal/config"
	"github.com/ukydev/scooter-console/internal/dashboard"
	"github.com/ukydev/scooter-console/internal/db"
	"github.com/ukydev/scooter-console/internal/handlers"
	"github.com/ukydev/scooter-console/internal/session"
	"github.com/ukydev/scooter-console/internal/telemetry"
)

// app is the wired console.
type app struct {
	gate    *session.Gate
	watcher *telemetry.Watcher
	mongo   *mongo.Client
	handler http.Handler
}

// newTokenStore keeps the token in memory unless a session file is configured.
func newTokenStore(cfg config.Config) (session.TokenStore, error) {
	if cfg.SessionFile == "" {
		return session.NewMemoryStore(), nil
	}
	store, err := session.NewFileStore(cfg.SessionFile, cfg.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	return store, nil
}

// newApp wires the session gate, the service clients and the router. The
// telemetry feed and the snapshot archive are optional: when their
// infrastructure is unreachable the console starts without them.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	store, err := newTokenStore(cfg)
	if err != nil {
		return nil, err
	}
	creds := session.NewCredentials(store)

	a := &app{}

	// The clients need the gate to invalidate the session and the gate needs
	// the auth client, so the hook resolves the gate late.
	invalidate := func() {
		if a.gate != nil {
			a.gate.Invalidate()
		}
	}

	authClient := api.NewClient("auth", cfg.AuthBaseURL, creds, cfg.HTTPTimeout,
		api.WithUnauthorizedHook(invalidate),
		api.WithHeader("X-Request-Type", "admin"))
	scooterClient := api.NewClient("scooter", cfg.ScooterBaseURL, creds, cfg.HTTPTimeout,
		api.WithUnauthorizedHook(invalidate))

	authService := api.NewAuthService(authClient)
	scooterService := api.NewScooterService(scooterClient)

	a.gate = session.NewGate(creds, authService)
	if state, err := a.gate.Check(ctx); err != nil {
		log.WithError(err).Warn("Stored session could not be restored")
	} else {
		log.WithField("state", state).Info("Session checked")
	}

	var feed handlers.LiveFeed
	if cfg.MQTTBroker != "" {
		w := telemetry.NewWatcher(cfg.LowBatteryThreshold)
		if err := w.Connect(ctx, cfg.MQTTBroker, cfg.MQTTTopic, ""); err != nil {
			log.WithError(err).Warn("Live telemetry disabled")
		} else {
			a.watcher = w
			feed = w
		}
	}

	opts := []dashboard.Option{dashboard.WithLowBattery(int(cfg.LowBatteryThreshold))}
	if cfg.MongoURI != "" {
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.WithError(err).Warn("Snapshot archive disabled")
		} else {
			coll := db.NewSnapshotCollection(client, cfg.MongoDB)
			if err := coll.EnsureIndexes(ctx); err != nil {
				log.WithError(err).Warn("Failed to create snapshot indexes")
			}
			a.mongo = client
			opts = append(opts, dashboard.WithArchive(coll))
			log.WithField("db", cfg.MongoDB).Info("Connected to MongoDB")
		}
	}

	views := dashboard.NewService(scooterService, opts...)

	a.handler = handlers.NewRouter(handlers.RouterConfig{
		Auth:           handlers.NewAuthHandler(a.gate),
		Console:        handlers.NewConsoleHandler(views, scooterService, authService, feed),
		Gate:           a.gate,
		AllowedOrigins: cfg.CORSOrigins,
		LoginLimit:     cfg.LoginRateLimit,
		LoginWindow:    time.Minute,
		TrustProxy:     cfg.TrustProxy,
	})
	return a, nil
}

// close releases the broker and database connections.
func (a *app) close(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}
}
