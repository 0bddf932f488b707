package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/servicehub-api/internal/domain"
)

// MaxBodyBytes bounds request bodies read by DecodeJSON and ReadBody.
const MaxBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into v. Malformed or oversized
// bodies are reported as domain.ErrValidation.
func DecodeJSON(r *http.Request, v interface{}) error {
	body, err := ReadBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return domain.NewValidationError("body", "must be valid JSON", domain.ErrValidation)
	}
	return nil
}

// ReadBody reads the whole request body and restores it so a later reader
// sees the same bytes.
func ReadBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, domain.NewValidationError("body", "is required", domain.ErrValidation)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, domain.NewValidationError("body", "is too large", domain.ErrValidation)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewValidationError("body", "is required", domain.ErrValidation)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// ValidateRequest validates v with its own Validate method when it has one,
// otherwise with its validate struct tags. Tag failures are converted to a
// domain.ValidationError naming the first offending field.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), describeTag(fe), domain.ErrValidation)
	}
	return domain.NewValidationError("", "invalid request", domain.ErrValidation)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
