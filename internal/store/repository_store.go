// Package store provides in-memory, mutex-guarded implementations of the
// collaborator contracts the generation core consumes: RepositoryStore,
// OverrideStore, and PathStore. There is no remote backend in this
// repository; a durable implementation would satisfy the same interfaces.
package store

import (
	"context"
	"sync"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

// RepositoryStore persists the flat set of repositories the core draws
// learning paths from.
type RepositoryStore struct {
	mu    sync.RWMutex
	byID  map[domain.ID]*domain.Repository
	order []domain.ID
}

// NewRepositoryStore returns an empty repository store.
func NewRepositoryStore() *RepositoryStore {
	return &RepositoryStore{byID: make(map[domain.ID]*domain.Repository)}
}

// GetAll returns every stored repository, in insertion order.
func (s *RepositoryStore) GetAll(ctx context.Context) ([]domain.Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Repository, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out, nil
}

// GetByIDs returns the stored repositories matching ids, in the order
// given; ids with no matching repository are silently omitted.
func (s *RepositoryStore) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Repository, 0, len(ids))
	for _, id := range ids {
		if repo, ok := s.byID[id]; ok {
			out = append(out, *repo)
		}
	}
	return out, nil
}

// Save upserts repo, preserving its original position on update.
func (s *RepositoryStore) Save(ctx context.Context, repo *domain.Repository) error {
	if repo == nil {
		return domain.NewValidationError("repository", "must not be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[repo.ID]; !exists {
		s.order = append(s.order, repo.ID)
	}
	s.byID[repo.ID] = repo
	return nil
}
