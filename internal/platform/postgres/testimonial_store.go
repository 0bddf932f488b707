package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// PostgresTestimonialStore implements store.TestimonialStore.
type PostgresTestimonialStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewTestimonialStore creates a testimonial store. It panics when db is nil.
func NewTestimonialStore(db *sqlx.DB, logger *slog.Logger) *PostgresTestimonialStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTestimonialStore{
		db:     db,
		logger: logger.With(slog.String("component", "testimonial_store")),
	}
}

var _ store.TestimonialStore = (*PostgresTestimonialStore)(nil)

// Insert implements store.TestimonialStore.Insert.
func (s *PostgresTestimonialStore) Insert(
	ctx context.Context,
	testimonial *domain.Testimonial,
) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	testimonial.ID = newID(testimonial.ID)
	if testimonial.CreatedAt.IsZero() {
		testimonial.CreatedAt = time.Now().UTC()
	}

	data, err := encodeDocument(testimonial)
	if err != nil {
		return store.InsertResult{}, store.NewStoreError("testimonial", "insert", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO testimonials (id, data, created_at) VALUES ($1, $2, $3)`,
		testimonial.ID, data, testimonial.CreatedAt); err != nil {
		log.Error("failed to insert testimonial", slog.String("error", redact.Error(err)))
		return store.InsertResult{}, store.NewStoreError("testimonial", "insert", MapError(err))
	}

	return store.InsertResult{Acknowledged: true, InsertedID: testimonial.ID}, nil
}

// List implements store.TestimonialStore.List.
func (s *PostgresTestimonialStore) List(ctx context.Context) ([]domain.Testimonial, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, data FROM testimonials ORDER BY created_at, id`); err != nil {
		log.Error("failed to list testimonials", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("testimonial", "list", MapError(err))
	}

	out := make([]domain.Testimonial, 0, len(rows))
	for _, row := range rows {
		var t domain.Testimonial
		if err := decodeDocument(row, &t); err != nil {
			log.Error("skipping undecodable testimonial", slog.String("error", err.Error()))
			continue
		}
		t.ID = row.ID
		out = append(out, t)
	}
	return out, nil
}
