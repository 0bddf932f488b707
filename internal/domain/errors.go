package domain

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a record or request fails validation.
	// This is usually wrapped in a ValidationError naming the field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a record ID is malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuery is returned when a search expression cannot be compiled.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrForbidden is returned when the session identity does not own the
	// requested scope.
	ErrForbidden = errors.New("forbidden access")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel so errors.Is works.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// fromOzzo converts the result of validation.ValidateStruct into a
// ValidationError for the first failing field, in name order.
func fromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error(), ErrValidation)
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	first := fields[0]
	return NewValidationError(first, fieldErrs[first].Error(), ErrValidation)
}
