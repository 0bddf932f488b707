package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// ServiceStore implements store.ServiceStore in memory.
type ServiceStore struct {
	db *DB
}

var _ store.ServiceStore = (*ServiceStore)(nil)

// List implements store.ServiceStore.List.
func (s *ServiceStore) List(ctx context.Context, filter store.ServiceFilter) ([]domain.Service, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "service", "list"); err != nil {
		return nil, err
	}

	re, err := compileSearch(filter.Search)
	if err != nil {
		return nil, store.NewStoreError("service", "list", err)
	}

	out := []domain.Service{}
	s.db.services.each(func(svc domain.Service) bool {
		if filter.ProviderEmail != "" && svc.ProviderEmail != filter.ProviderEmail {
			return true
		}
		if re != nil && !re.MatchString(svc.ServiceName) {
			return true
		}
		out = append(out, svc)
		return filter.Limit <= 0 || len(out) < filter.Limit
	})
	return out, nil
}

// Get implements store.ServiceStore.Get.
func (s *ServiceStore) Get(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "service", "get"); err != nil {
		return nil, err
	}

	svc, ok := s.db.services.docs[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

// Insert implements store.ServiceStore.Insert.
func (s *ServiceStore) Insert(ctx context.Context, service *domain.Service) (store.InsertResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "service", "insert"); err != nil {
		return store.InsertResult{}, err
	}

	service.ID = assignID(service.ID)
	if _, exists := s.db.services.docs[service.ID]; exists {
		return store.InsertResult{}, store.NewStoreError("service", "insert", store.ErrInvalidEntity)
	}
	s.db.services.put(service.ID, *service)
	return store.InsertResult{Acknowledged: true, InsertedID: service.ID}, nil
}

// Upsert implements store.ServiceStore.Upsert.
func (s *ServiceStore) Upsert(ctx context.Context, id uuid.UUID, fields domain.Fields) (store.UpdateResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "service", "upsert"); err != nil {
		return store.UpdateResult{}, err
	}

	current, exists := s.db.services.docs[id]
	if !exists {
		current = domain.Service{ID: id}
	}

	updated, err := fields.ApplyTo(current)
	if err != nil {
		return store.UpdateResult{}, store.NewStoreError("service", "upsert", store.ErrInvalidEntity)
	}
	s.db.services.put(id, updated)

	if !exists {
		upserted := id
		return store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &upserted}, nil
	}

	result := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if updated != current {
		result.ModifiedCount = 1
	}
	return result, nil
}

// Delete implements store.ServiceStore.Delete.
func (s *ServiceStore) Delete(ctx context.Context, id uuid.UUID) (store.DeleteResult, error) {
	defer s.db.mu.Unlock()
	if err := s.db.begin(ctx, "service", "delete"); err != nil {
		return store.DeleteResult{}, err
	}

	result := store.DeleteResult{Acknowledged: true}
	if s.db.services.remove(id) {
		result.DeletedCount = 1
	}
	return result, nil
}
