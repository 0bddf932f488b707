package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
)

// ServiceFilter selects services for List. Zero values mean "no filter".
type ServiceFilter struct {
	// Search is matched case-insensitively as a regular expression
	// against the service name.
	Search string

	// ProviderEmail restricts results to one provider's listings.
	ProviderEmail string

	// Limit caps the number of results; zero or less returns all.
	Limit int
}

// BookingFilter selects bookings for List. UserEmail takes precedence: when
// it is set ProviderEmail is ignored.
type BookingFilter struct {
	UserEmail     string
	ProviderEmail string
}

// ServiceStore defines persistence for service listings.
type ServiceStore interface {
	// List returns services matching the filter, never nil.
	List(ctx context.Context, filter ServiceFilter) ([]domain.Service, error)

	// Get returns the service with the given ID, or nil with no error when
	// it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// Insert stores a new service. A zero ID is replaced by a generated one.
	Insert(ctx context.Context, service *domain.Service) (InsertResult, error)

	// Upsert sets the given top-level fields on the service, creating the
	// document when it does not exist. Last write wins.
	Upsert(ctx context.Context, id uuid.UUID, fields domain.Fields) (UpdateResult, error)

	// Delete removes the service. Deleting a missing ID reports zero.
	Delete(ctx context.Context, id uuid.UUID) (DeleteResult, error)
}

// BookingStore defines persistence for bookings.
type BookingStore interface {
	// Insert stores a new booking. A zero ID is replaced by a generated one.
	Insert(ctx context.Context, booking *domain.Booking) (InsertResult, error)

	// List returns bookings for a user or, failing that, a provider.
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)

	// UpdateStatus sets serviceStatus verbatim. It does not upsert; a missing
	// booking reports zero counts.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (UpdateResult, error)
}

// TestimonialStore defines persistence for testimonials.
type TestimonialStore interface {
	Insert(ctx context.Context, testimonial *domain.Testimonial) (InsertResult, error)
	List(ctx context.Context) ([]domain.Testimonial, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles the datasets handed to the API layer.
type Stores struct {
	Services     ServiceStore
	Bookings     BookingStore
	Testimonials TestimonialStore
	Health       Pinger
}
