package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/memory"
	"github.com/phrazzld/servicehub-api/internal/platform/postgres"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// storeBackend is an opened document store and how to release it.
type storeBackend struct {
	stores store.Stores
	close  func()
}

// openStore connects to the configured driver. For postgres the schema is
// migrated before the stores are returned.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storeBackend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return &storeBackend{stores: memory.New().Stores(), close: func() {}}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Info("database connection established",
			slog.Int("max_open_conns", cfg.MaxOpenConns))

		if err := postgres.Migrate(ctx, db.DB, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		return &storeBackend{
			stores: postgres.NewStores(db, logger),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Error("error closing database connection", "error", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
