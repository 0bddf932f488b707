// Package main implements the entry point for the ServiceHub API server,
// which lets providers list services, users book them, and both sides
// manage their bookings behind a cookie-carried session.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("servicehub: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, builds the application and serves until ctx is
// canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("environment", cfg.Server.Environment),
		slog.String("store_driver", cfg.Database.Driver))

	backend, err := openStore(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l, backend)
	if err != nil {
		backend.close()
		return err
	}
	return app.Run(ctx)
}
