package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// pingTimeout bounds the connectivity check made when the pool is opened.
const pingTimeout = 5 * time.Second

// Open creates a connection pool for cfg.URL, applies the pool limits and
// verifies the database is reachable. A database that cannot be reached
// yields an error wrapping store.ErrUnavailable.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", store.ErrUnavailable, err)
	}

	return db, nil
}

// NewStores returns the store bundle backed by db.
func NewStores(db *sqlx.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Services:     NewServiceStore(db, logger),
		Bookings:     NewBookingStore(db, logger),
		Testimonials: NewTestimonialStore(db, logger),
		Health:       &HealthChecker{db: db},
	}
}

// HealthChecker implements store.Pinger over a connection pool.
type HealthChecker struct {
	db *sqlx.DB
}

// Ping implements store.Pinger.
func (h *HealthChecker) Ping(ctx context.Context) error {
	return MapError(h.db.PingContext(ctx))
}
