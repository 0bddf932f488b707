package domain

import "github.com/google/uuid"

// ParseID parses a record identifier taken from a request path.
func ParseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, NewValidationError("id", "is required", ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError("id", "has invalid format", ErrInvalidID)
	}
	return id, nil
}
