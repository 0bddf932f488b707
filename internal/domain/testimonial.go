package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Testimonial is customer feedback shown on the landing page. Testimonials
// are append-only.
type Testimonial struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo,omitempty"`
	Rating    float64   `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks a testimonial before insert.
func (t *Testimonial) Validate() error {
	return fromOzzo(validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&t.Review, validation.Required, validation.Length(1, 2000)),
		validation.Field(&t.Rating, validation.Min(0.0), validation.Max(5.0)),
	))
}
