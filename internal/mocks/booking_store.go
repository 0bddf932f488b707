package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// MockBookingStore implements store.BookingStore for testing.
type MockBookingStore struct {
	InsertFn       func(ctx context.Context, booking *domain.Booking) (store.InsertResult, error)
	ListFn         func(ctx context.Context, filter store.BookingFilter) ([]domain.Booking, error)
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status string) (store.UpdateResult, error)

	// Err is returned by every method without an Fn.
	Err error

	mu      sync.Mutex
	count   int
	filters []store.BookingFilter
}

var _ store.BookingStore = (*MockBookingStore)(nil)

// TotalCalls returns the number of invocations across all methods.
func (m *MockBookingStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Filters returns the filters List was called with, in order.
func (m *MockBookingStore) Filters() []store.BookingFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.BookingFilter(nil), m.filters...)
}

func (m *MockBookingStore) record() {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
}

// Insert implements store.BookingStore.
func (m *MockBookingStore) Insert(ctx context.Context, booking *domain.Booking) (store.InsertResult, error) {
	m.record()
	if m.InsertFn != nil {
		return m.InsertFn(ctx, booking)
	}
	if m.Err != nil {
		return store.InsertResult{}, m.Err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: booking.ID}, nil
}

// List implements store.BookingStore.
func (m *MockBookingStore) List(ctx context.Context, filter store.BookingFilter) ([]domain.Booking, error) {
	m.record()
	m.mu.Lock()
	m.filters = append(m.filters, filter)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []domain.Booking{}, nil
}

// UpdateStatus implements store.BookingStore.
func (m *MockBookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (store.UpdateResult, error) {
	m.record()
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return store.UpdateResult{Acknowledged: m.Err == nil}, m.Err
}
