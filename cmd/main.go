package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/auth"
	"github.com/ukydev/tripsheet/internal/config"
	"github.com/ukydev/tripsheet/internal/db"
	"github.com/ukydev/tripsheet/internal/events"
	"github.com/ukydev/tripsheet/internal/handlers"
	"github.com/ukydev/tripsheet/internal/jobs"
	"github.com/ukydev/tripsheet/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	client, err := db.ConnectMongo(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("mongo disconnect failed")
		}
	}()
	log.WithField("database", cfg.MongoDB).Info("connected to MongoDB")

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	authService, err := newAuth(cfg)
	if err != nil {
		return err
	}

	svc := service.New(service.StoresFrom(db.NewStore(database)), publisher)

	checker := jobs.NewExpiryChecker(svc, publisher, cfg.ExpirySchedule, cfg.ExpiryWindow())
	if err := checker.Start(); err != nil {
		return err
	}
	defer checker.Stop()

	router := handlers.NewRouter(svc, handlers.Config{
		Auth:                   authService,
		CORSOrigins:            cfg.CORSOrigins,
		RateLimitRequests:      cfg.RateLimitRequests,
		RateLimitWindowSeconds: cfg.RateLimitWindowSeconds,
		RequestTimeout:         cfg.RequestTimeout,
		ExpiryWarningDays:      cfg.ExpiryWarningDays,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	})
	return serve(ctx, newServer(cfg, router))
}

// newPublisher connects to the MQTT broker when one is configured.
// A broker that cannot be reached leaves the API running without events.
func newPublisher(cfg config.Config) events.Publisher {
	if cfg.MQTTBroker == "" {
		log.Info("MQTT_BROKER not set, events disabled")
		return events.NopPublisher{}
	}
	pub, err := events.NewMQTTPublisher(events.Config{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Prefix:   cfg.MQTTTopicPrefix,
	})
	if err != nil {
		log.WithError(err).WithField("broker", cfg.MQTTBroker).Warn("mqtt unavailable, events disabled")
		return events.NopPublisher{}
	}
	return pub
}

func newAuth(cfg config.Config) (*auth.Service, error) {
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, API is unauthenticated")
		return nil, nil
	}
	svc, err := auth.NewService(cfg.JWTSecret, 0)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return svc, nil
}

func newServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs srv until ctx is cancelled and then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
