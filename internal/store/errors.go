package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
//
// A lookup that matches nothing is not an error: finds return an empty
// result and updates/deletes report zero counts.
var (
	// ErrInvalidEntity is returned when the store rejects a document, for
	// example on a constraint violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidQuery is returned when a filter cannot be evaluated, such as
	// a search pattern that is not a valid regular expression.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// StoreError records which dataset and operation a failure came from. The
// wrapped error is usually one of the sentinels above.
type StoreError struct {
	Entity    string
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with its dataset and operation.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
