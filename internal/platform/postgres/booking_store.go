package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// PostgresBookingStore implements store.BookingStore over the bookings table.
type PostgresBookingStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewBookingStore creates a booking store. It panics when db is nil.
func NewBookingStore(db *sqlx.DB, logger *slog.Logger) *PostgresBookingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBookingStore{
		db:     db,
		logger: logger.With(slog.String("component", "booking_store")),
	}
}

var _ store.BookingStore = (*PostgresBookingStore)(nil)

// Insert implements store.BookingStore.Insert.
func (s *PostgresBookingStore) Insert(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	booking.ID = newID(booking.ID)
	data, err := encodeDocument(booking)
	if err != nil {
		return store.InsertResult{}, store.NewStoreError("booking", "insert", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO bookings (id, data) VALUES ($1, $2)`,
		booking.ID, data); err != nil {
		log.Error("failed to insert booking",
			slog.String("error", redact.Error(err)),
			slog.String("booking_id", booking.ID.String()))
		return store.InsertResult{}, store.NewStoreError("booking", "insert", MapError(err))
	}

	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID}, nil
}

// List implements store.BookingStore.List.
func (s *PostgresBookingStore) List(ctx context.Context, filter store.BookingFilter) ([]domain.Booking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, data FROM bookings WHERE data->>'providerEmail' = $1 ORDER BY created_at, id`
	arg := filter.ProviderEmail
	if filter.UserEmail != "" {
		query = `SELECT id, data FROM bookings WHERE data->>'userEmail' = $1 ORDER BY created_at, id`
		arg = filter.UserEmail
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, arg); err != nil {
		log.Error("failed to list bookings", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("booking", "list", MapError(err))
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		var b domain.Booking
		if err := decodeDocument(row, &b); err != nil {
			log.Error("skipping undecodable booking", slog.String("error", err.Error()))
			continue
		}
		b.ID = row.ID
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// updateStatusQuery sets serviceStatus on an existing booking only. It
// reports how many bookings matched and how many actually changed.
const updateStatusQuery = `
	WITH target AS (
		SELECT id, (data->>'serviceStatus') IS DISTINCT FROM $2::text AS changed
		FROM bookings WHERE id = $1
	), updated AS (
		UPDATE bookings b
		SET data = jsonb_set(b.data, '{serviceStatus}', to_jsonb($2::text)), updated_at = now()
		FROM target
		WHERE b.id = target.id AND target.changed
		RETURNING b.id
	)
	SELECT (SELECT count(*) FROM target) AS matched, (SELECT count(*) FROM updated) AS modified
`

// UpdateStatus implements store.BookingStore.UpdateStatus.
func (s *PostgresBookingStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var counts struct {
		Matched  int64 `db:"matched"`
		Modified int64 `db:"modified"`
	}
	if err := s.db.GetContext(ctx, &counts, updateStatusQuery, id, status); err != nil {
		log.Error("failed to update booking status",
			slog.String("error", redact.Error(err)),
			slog.String("booking_id", id.String()))
		return store.UpdateResult{}, store.NewStoreError("booking", "update_status", MapError(err))
	}

	log.Debug("booking status update finished",
		slog.String("booking_id", id.String()),
		slog.Int64("matched", counts.Matched),
		slog.Int64("modified", counts.Modified))
	return store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  counts.Matched,
		ModifiedCount: counts.Modified,
	}, nil
}
