package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// MockServiceStore implements store.ServiceStore for testing.
type MockServiceStore struct {
	ListFn   func(ctx context.Context, filter store.ServiceFilter) ([]domain.Service, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	InsertFn func(ctx context.Context, service *domain.Service) (store.InsertResult, error)
	UpsertFn func(ctx context.Context, id uuid.UUID, fields domain.Fields) (store.UpdateResult, error)
	DeleteFn func(ctx context.Context, id uuid.UUID) (store.DeleteResult, error)

	// Err is returned by every method without an Fn.
	Err error

	mu      sync.Mutex
	calls   map[string]int
	filters []store.ServiceFilter
}

var _ store.ServiceStore = (*MockServiceStore)(nil)

func (m *MockServiceStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockServiceStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of invocations across all methods.
func (m *MockServiceStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Filters returns the filters List was called with, in order.
func (m *MockServiceStore) Filters() []store.ServiceFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.ServiceFilter(nil), m.filters...)
}

// List implements store.ServiceStore.
func (m *MockServiceStore) List(ctx context.Context, filter store.ServiceFilter) ([]domain.Service, error) {
	m.record("List")
	m.mu.Lock()
	m.filters = append(m.filters, filter)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []domain.Service{}, nil
}

// Get implements store.ServiceStore.
func (m *MockServiceStore) Get(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.Err
}

// Insert implements store.ServiceStore.
func (m *MockServiceStore) Insert(ctx context.Context, service *domain.Service) (store.InsertResult, error) {
	m.record("Insert")
	if m.InsertFn != nil {
		return m.InsertFn(ctx, service)
	}
	if m.Err != nil {
		return store.InsertResult{}, m.Err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: service.ID}, nil
}

// Upsert implements store.ServiceStore.
func (m *MockServiceStore) Upsert(ctx context.Context, id uuid.UUID, fields domain.Fields) (store.UpdateResult, error) {
	m.record("Upsert")
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, id, fields)
	}
	return store.UpdateResult{Acknowledged: m.Err == nil}, m.Err
}

// Delete implements store.ServiceStore.
func (m *MockServiceStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.DeleteResult{Acknowledged: m.Err == nil}, m.Err
}
