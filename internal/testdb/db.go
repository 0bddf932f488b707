package testdb

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/postgres"
	"github.com/phrazzld/servicehub-api/internal/redact"
)

const setupTimeout = 30 * time.Second

// Tables lists the document tables Reset empties.
var Tables = []string{"services", "bookings", "testimonials"}

// migrateMu serialises schema migration, which mutates package-level
// migration settings.
var migrateMu sync.Mutex

// Open connects to the test database and migrates it to the latest schema.
// The pool is closed when the test finishes.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("%s must be set in CI", EnvTestDatabaseURL)
		}
		t.Skipf("%s not set; skipping database test", EnvTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{
		Driver:                 config.DriverPostgres,
		URL:                    url,
		MaxOpenConns:           4,
		MaxIdleConns:           2,
		ConnMaxLifetimeMinutes: 5,
	})
	if err != nil {
		t.Fatalf("failed to open test database %s: %s", redact.String(url), redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	migrateMu.Lock()
	defer migrateMu.Unlock()
	if err := postgres.Migrate(ctx, db.DB, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("failed to migrate test database: %s", redact.Error(err))
	}
	return db
}

// Reset empties every document table.
func Reset(t testing.TB, db *sqlx.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	for _, table := range Tables {
		if _, err := db.ExecContext(ctx, "TRUNCATE "+table); err != nil {
			t.Fatalf("failed to truncate %s: %s", table, redact.Error(err))
		}
	}
}
