package memory

import (
	"context"

	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// TestimonialStore implements store.TestimonialStore in memory.
type TestimonialStore struct {
	db *DB
}

var _ store.TestimonialStore = (*TestimonialStore)(nil)

// Insert implements store.TestimonialStore.Insert.
func (s *TestimonialStore) Insert(
	ctx context.Context,
	testimonial *domain.Testimonial,
) (store.InsertResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "testimonial", "insert"); err != nil {
		return store.InsertResult{}, err
	}

	testimonial.ID = assignID(testimonial.ID)
	if testimonial.CreatedAt.IsZero() {
		testimonial.CreatedAt = s.db.now().UTC()
	}
	s.db.testimonials.put(testimonial.ID, *testimonial)
	return store.InsertResult{Acknowledged: true, InsertedID: testimonial.ID}, nil
}

// List implements store.TestimonialStore.List.
func (s *TestimonialStore) List(ctx context.Context) ([]domain.Testimonial, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "testimonial", "list"); err != nil {
		return nil, err
	}

	out := []domain.Testimonial{}
	s.db.testimonials.each(func(t domain.Testimonial) bool {
		out = append(out, t)
		return true
	})
	return out, nil
}
