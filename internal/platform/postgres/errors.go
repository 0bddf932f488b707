package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidRegexCode is raised when a ~* pattern does not compile
	invalidRegexCode = "2201B"

	// invalidTextRepresentationCode is raised for malformed input values such as bad JSON
	invalidTextRepresentationCode = "22P02"

	// connectionExceptionClass prefixes every connection failure code (08xxx)
	connectionExceptionClass = "08"

	// cannotConnectNowCode is raised while the server is starting up or shutting down
	cannotConnectNowCode = "57P03"
)

// MapError maps a database error to the store's sentinel errors. The
// original error stays wrapped for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case IsInvalidRegex(pgErr):
			return fmt.Errorf("%w: %v", store.ErrInvalidQuery, err)
		case IsUniqueViolation(pgErr):
			return fmt.Errorf("%w: duplicate id (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case pgErr.Code == checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case pgErr.Code == notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
		case pgErr.Code == invalidTextRepresentationCode:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		case pgErr.Code == cannotConnectNowCode,
			len(pgErr.Code) == 5 && pgErr.Code[:2] == connectionExceptionClass:
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return err
	}

	if IsConnectionError(err) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return err
}

// IsConnectionError reports whether err means the database could not be
// reached, as opposed to a query being rejected.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	return false
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsInvalidRegex checks if the given error is PostgreSQL rejecting a regular expression.
func IsInvalidRegex(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidRegexCode
}
