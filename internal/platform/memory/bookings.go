package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// BookingStore implements store.BookingStore in memory.
type BookingStore struct {
	db *DB
}

var _ store.BookingStore = (*BookingStore)(nil)

// Insert implements store.BookingStore.Insert.
func (s *BookingStore) Insert(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "booking", "insert"); err != nil {
		return store.InsertResult{}, err
	}

	booking.ID = assignID(booking.ID)
	if _, exists := s.db.bookings.docs[booking.ID]; exists {
		return store.InsertResult{}, store.NewStoreError("booking", "insert", store.ErrInvalidEntity)
	}
	s.db.bookings.put(booking.ID, *booking)
	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID}, nil
}

// List implements store.BookingStore.List.
func (s *BookingStore) List(ctx context.Context, filter store.BookingFilter) ([]domain.Booking, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "booking", "list"); err != nil {
		return nil, err
	}

	out := []domain.Booking{}
	s.db.bookings.each(func(b domain.Booking) bool {
		if filter.UserEmail != "" {
			if b.UserEmail == filter.UserEmail {
				out = append(out, b)
			}
			return true
		}
		if b.ProviderEmail == filter.ProviderEmail {
			out = append(out, b)
		}
		return true
	})
	return out, nil
}

// UpdateStatus implements store.BookingStore.UpdateStatus.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (store.UpdateResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "booking", "update_status"); err != nil {
		return store.UpdateResult{}, err
	}

	result := store.UpdateResult{Acknowledged: true}
	booking, exists := s.db.bookings.docs[id]
	if !exists {
		return result, nil
	}

	result.MatchedCount = 1
	if booking.ServiceStatus != status {
		booking.ServiceStatus = status
		s.db.bookings.put(id, booking)
		result.ModifiedCount = 1
	}
	return result, nil
}
