// Command console serves the scooter admin console API. It holds the
// operator's session and fronts the auth and scooter services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/scooter-console/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Configuration error")
	}
	cfg.ConfigureLogging()

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	app, err := newApp(startCtx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to start console")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", srv.Addr).Info("Console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server error")
		}
	}()

	<-stop
	log.Info("Shutting down console")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Shutdown error")
	}
	app.close(ctx)
	log.Info("Console stopped")
}
