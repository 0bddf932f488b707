package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// TestimonialHandler serves testimonial routes.
type TestimonialHandler struct {
	testimonials store.TestimonialStore
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(testimonials store.TestimonialStore) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// Create handles POST /add-testimonial.
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var testimonial domain.Testimonial
	if err := shared.DecodeJSON(r, &testimonial); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	testimonial.ID = uuid.Nil
	testimonial.CreatedAt = time.Time{}
	if err := testimonial.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.testimonials.Insert(r.Context(), &testimonial)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add testimonial")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// List handles GET /testimonials.
func (h *TestimonialHandler) List(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list testimonials")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, testimonials)
}
