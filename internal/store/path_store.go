package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/pipeline"
)

// PathStore persists generation results per learner, assigning a
// monotonically increasing version number on every save.
type PathStore struct {
	mu          sync.RWMutex
	byID        map[domain.ID]pipeline.GenerateResult
	nextVersion map[string]int
}

// NewPathStore returns an empty path store.
func NewPathStore() *PathStore {
	return &PathStore{
		byID:        make(map[domain.ID]pipeline.GenerateResult),
		nextVersion: make(map[string]int),
	}
}

// Save persists result, assigning it the next version number for its
// learner, and returns the persisted value.
func (s *PathStore) Save(ctx context.Context, result pipeline.GenerateResult) (pipeline.GenerateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextVersion[result.LearnerID]++
	result.Version = s.nextVersion[result.LearnerID]
	s.byID[result.PathID] = result
	return result, nil
}

// GetByLearner returns summaries of every path saved for learnerID,
// ordered newest first by UpdatedAt.
func (s *PathStore) GetByLearner(ctx context.Context, learnerID string) ([]pipeline.PathSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []pipeline.PathSummary
	for _, r := range s.byID {
		if r.LearnerID != learnerID {
			continue
		}
		matched = append(matched, pipeline.PathSummary{
			PathID:    r.PathID,
			LearnerID: r.LearnerID,
			Name:      r.Name,
			Status:    r.Status,
			Version:   r.Version,
			UpdatedAt: r.GeneratedAt,
		})
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return matched, nil
}
