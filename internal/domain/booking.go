package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// BookingStatusPending is assigned to bookings created without a status.
// Later statuses are free-form; no transition order is enforced.
const BookingStatusPending = "pending"

// Booking records a user reserving a provider's service.
type Booking struct {
	ID                 uuid.UUID `json:"_id"`
	ServiceID          string    `json:"serviceId"`
	ServiceName        string    `json:"serviceName,omitempty"`
	ServiceImage       string    `json:"serviceImage,omitempty"`
	ProviderEmail      string    `json:"providerEmail"`
	ProviderName       string    `json:"providerName,omitempty"`
	UserEmail          string    `json:"userEmail"`
	UserName           string    `json:"userName,omitempty"`
	ServiceTakingDate  string    `json:"serviceTakingDate,omitempty"`
	SpecialInstruction string    `json:"specialInstruction,omitempty"`
	Price              float64   `json:"price"`
	ServiceStatus      string    `json:"serviceStatus"`
}

// Normalize fills defaults before insert.
func (b *Booking) Normalize() {
	if b.ServiceStatus == "" {
		b.ServiceStatus = BookingStatusPending
	}
}

// Validate checks the identities a booking must name.
func (b *Booking) Validate() error {
	return fromOzzo(validation.ValidateStruct(b,
		validation.Field(&b.ServiceID, validation.Required),
		validation.Field(&b.UserEmail, validation.Required, is.EmailFormat),
		validation.Field(&b.ProviderEmail, validation.Required, is.EmailFormat),
		validation.Field(&b.Price, validation.Min(0.0)),
	))
}
