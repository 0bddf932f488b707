package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/api/middleware"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/metrics"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	backend *storeBackend

	tokens   auth.TokenService
	cookies  auth.CookiePolicy
	registry *prometheus.Registry
	metrics  *metrics.Collector
	limiter  *middleware.RateLimiter
}

// newApplication wires the token service, metrics and rate limiter around an
// already opened store.
func newApplication(cfg *config.Config, logger *slog.Logger, backend *storeBackend) (*application, error) {
	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("session token service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Bool("gate_booking_writes", cfg.Auth.GateBookingWrites))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	return &application{
		config:   cfg,
		logger:   logger,
		backend:  backend,
		tokens:   tokens,
		cookies:  auth.NewCookiePolicy(cfg.Auth.CookieName, cfg.Server.IsProduction()),
		registry: registry,
		metrics:  collector,
		limiter:  middleware.NewRateLimiter(cfg.Server.RateLimitPerMinute, collector),
	}, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	app.limiter.Stop()
	if app.backend != nil {
		app.backend.close()
	}
	app.logger.Info("application shutdown completed")
}
