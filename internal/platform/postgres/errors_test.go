package postgres_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/servicehub-api/internal/platform/postgres"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		SchemaName:     "public",
		TableName:      "services",
		ColumnName:     "data",
		ConstraintName: "services_pkey",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("something else")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "invalid regex", err: newPgError("2201B"), want: store.ErrInvalidQuery},
		{name: "wrapped invalid regex", err: fmt.Errorf("query: %w", newPgError("2201B")), want: store.ErrInvalidQuery},
		{name: "unique violation", err: newPgError("23505"), want: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError("23514"), want: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), want: store.ErrInvalidEntity},
		{name: "invalid text representation", err: newPgError("22P02"), want: store.ErrInvalidEntity},
		{name: "connection failure", err: newPgError("08006"), want: store.ErrUnavailable},
		{name: "cannot connect now", err: newPgError("57P03"), want: store.ErrUnavailable},
		{name: "bad connection", err: driver.ErrBadConn, want: store.ErrUnavailable},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: store.ErrUnavailable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := postgres.MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
			assert.Contains(t, got.Error(), tc.err.Error())
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, plain, postgres.MapError(plain))

		syntax := newPgError("42601")
		assert.Equal(t, error(syntax), postgres.MapError(syntax))
	})
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("2201B")))
	assert.True(t, postgres.IsInvalidRegex(fmt.Errorf("wrapped: %w", newPgError("2201B"))))
	assert.False(t, postgres.IsInvalidRegex(errors.New("plain")))

	assert.True(t, postgres.IsConnectionError(driver.ErrBadConn))
	assert.False(t, postgres.IsConnectionError(newPgError("23505")))
}
