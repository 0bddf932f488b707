package domain

import (
	"bytes"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Service is a listing offered by a provider. ProviderEmail is the owner
// identity; ServiceName is the field free-text search matches against.
type Service struct {
	ID            uuid.UUID `json:"_id"`
	ServiceName   string    `json:"serviceName"`
	ServiceImage  string    `json:"serviceImage,omitempty"`
	ServiceArea   string    `json:"serviceArea,omitempty"`
	Price         float64   `json:"price"`
	Description   string    `json:"description,omitempty"`
	ProviderEmail string    `json:"provider_email"`
	ProviderName  string    `json:"providerName,omitempty"`
	ProviderImage string    `json:"providerImage,omitempty"`
}

// Validate checks the fields a listing needs before it is inserted.
func (s *Service) Validate() error {
	return fromOzzo(validation.ValidateStruct(s,
		validation.Field(&s.ServiceName, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.ProviderEmail, validation.Required, is.EmailFormat),
		validation.Field(&s.Price, validation.Min(0.0)),
	))
}

// Fields is a partial document: top-level keys to set, with their raw JSON
// values. Applying it overwrites only the named keys.
type Fields map[string]json.RawMessage

// DecodeService builds a new listing from a request body. It applies the
// same schema as NewServicePatch: the body must be a JSON object of service
// fields, and a client-supplied "_id" is dropped because the store assigns
// one. The result still needs Validate.
func DecodeService(body []byte) (*Service, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	return typedService(fields)
}

// NewServicePatch builds a Fields update from a request body. The body must
// be a JSON object whose keys are service fields; "_id" is ignored because
// the target comes from the path. Values are type-checked against Service.
func NewServicePatch(body []byte) (Fields, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, NewValidationError("body", "must set at least one field", ErrValidation)
	}

	typed, err := typedService(fields)
	if err != nil {
		return nil, err
	}

	var rules []*validation.FieldRules
	if _, ok := fields["provider_email"]; ok {
		rules = append(rules, validation.Field(&typed.ProviderEmail, validation.Required, is.EmailFormat))
	}
	if _, ok := fields["serviceName"]; ok {
		rules = append(rules, validation.Field(&typed.ServiceName, validation.Required, validation.Length(1, 200)))
	}
	if _, ok := fields["price"]; ok {
		rules = append(rules, validation.Field(&typed.Price, validation.Min(0.0)))
	}
	if err := fromOzzo(validation.ValidateStruct(typed, rules...)); err != nil {
		return nil, err
	}

	return fields, nil
}

// ApplyTo returns a copy of s with the patch's keys overwritten, matching
// the document store's top-level $set semantics.
func (f Fields) ApplyTo(s Service) (Service, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return Service{}, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Service{}, err
	}
	for k, v := range f {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return Service{}, err
	}

	var out Service
	if err := json.Unmarshal(merged, &out); err != nil {
		return Service{}, err
	}
	out.ID = s.ID
	return out, nil
}

func decodeFields(body []byte) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, NewValidationError("body", "must be a JSON object", ErrValidation)
	}
	delete(fields, "_id")
	return fields, nil
}

// typedService decodes fields into a Service, rejecting keys Service does
// not declare and values of the wrong type.
func typedService(fields Fields) (*Service, error) {
	cleaned, err := json.Marshal(fields)
	if err != nil {
		return nil, NewValidationError("body", "must be a JSON object", ErrValidation)
	}

	var service Service
	dec := json.NewDecoder(bytes.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&service); err != nil {
		return nil, NewValidationError("body", "contains an unknown or mistyped field", ErrValidation)
	}
	return &service, nil
}
