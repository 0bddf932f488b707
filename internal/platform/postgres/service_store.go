package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/phrazzld/servicehub-api/internal/redact"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// PostgresServiceStore implements store.ServiceStore over the services table.
type PostgresServiceStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewServiceStore creates a service store. It panics when db is nil.
// If logger is nil, slog.Default() is used.
func NewServiceStore(db *sqlx.DB, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// List implements store.ServiceStore.List.
func (s *PostgresServiceStore) List(ctx context.Context, filter store.ServiceFilter) ([]domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, filter.Search)
		where = append(where, fmt.Sprintf("data->>'serviceName' ~* $%d", len(args)))
	}
	if filter.ProviderEmail != "" {
		args = append(args, filter.ProviderEmail)
		where = append(where, fmt.Sprintf("data->>'provider_email' = $%d", len(args)))
	}

	var query strings.Builder
	query.WriteString("SELECT id, data FROM services")
	if len(where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY created_at, id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		log.Error("failed to list services",
			slog.String("error", redact.Error(err)),
			slog.Bool("has_search", filter.Search != ""),
			slog.Int("limit", filter.Limit))
		return nil, store.NewStoreError("service", "list", MapError(err))
	}

	services := make([]domain.Service, 0, len(rows))
	for _, row := range rows {
		var svc domain.Service
		if err := decodeDocument(row, &svc); err != nil {
			log.Error("skipping undecodable service", slog.String("error", err.Error()))
			continue
		}
		svc.ID = row.ID
		services = append(services, svc)
	}

	log.Debug("listed services", slog.Int("count", len(services)))
	return services, nil
}

// Get implements store.ServiceStore.Get. A missing service is (nil, nil).
func (s *PostgresServiceStore) Get(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row documentRow
	err := s.db.GetContext(ctx, &row, `SELECT id, data FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("service not found", slog.String("service_id", id.String()))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", id.String()))
		return nil, store.NewStoreError("service", "get", MapError(err))
	}

	var svc domain.Service
	if err := decodeDocument(row, &svc); err != nil {
		return nil, store.NewStoreError("service", "get", err)
	}
	svc.ID = row.ID
	return &svc, nil
}

// Insert implements store.ServiceStore.Insert.
func (s *PostgresServiceStore) Insert(ctx context.Context, service *domain.Service) (store.InsertResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	service.ID = newID(service.ID)
	data, err := encodeDocument(service)
	if err != nil {
		return store.InsertResult{}, store.NewStoreError("service", "insert", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO services (id, data) VALUES ($1, $2)`,
		service.ID, data)
	if err != nil {
		log.Error("failed to insert service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", service.ID.String()))
		return store.InsertResult{}, store.NewStoreError("service", "insert", MapError(err))
	}

	log.Debug("service inserted", slog.String("service_id", service.ID.String()))
	return store.InsertResult{Acknowledged: true, InsertedID: service.ID}, nil
}

// upsertServiceQuery merges the patch into the stored document, or creates
// it. The WHERE clause skips writes that change nothing, in which case no
// row is returned.
const upsertServiceQuery = `
	INSERT INTO services AS t (id, data) VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE
		SET data = t.data || EXCLUDED.data, updated_at = now()
		WHERE t.data IS DISTINCT FROM t.data || EXCLUDED.data
	RETURNING (xmax = 0) AS inserted
`

// Upsert implements store.ServiceStore.Upsert.
func (s *PostgresServiceStore) Upsert(
	ctx context.Context,
	id uuid.UUID,
	fields domain.Fields,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := encodeDocument(fields)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError("service", "upsert", err)
	}

	var inserted bool
	err = s.db.QueryRowxContext(ctx, upsertServiceQuery, id, data).Scan(&inserted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Debug("service upsert changed nothing", slog.String("service_id", id.String()))
		return store.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	case err != nil:
		log.Error("failed to upsert service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", id.String()))
		return store.UpdateResult{}, store.NewStoreError("service", "upsert", MapError(err))
	case inserted:
		log.Debug("service created by upsert", slog.String("service_id", id.String()))
		return store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
	default:
		return store.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
}

// Delete implements store.ServiceStore.Delete.
func (s *PostgresServiceStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", id.String()))
		return store.DeleteResult{}, store.NewStoreError("service", "delete", MapError(err))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return store.DeleteResult{}, store.NewStoreError("service", "delete", err)
	}

	log.Debug("service delete finished",
		slog.String("service_id", id.String()),
		slog.Int64("deleted", deleted))
	return store.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
