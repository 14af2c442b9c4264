package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/override"
)

// timestampedInstruction pairs an override instruction with its creation
// time, so GetByLearner can return them oldest-first.
type timestampedInstruction struct {
	instruction override.Instruction
	learnerID   string
	createdAt   time.Time
}

// OverrideStore persists learner-submitted override instructions.
type OverrideStore struct {
	mu           sync.RWMutex
	instructions []timestampedInstruction
}

// NewOverrideStore returns an empty override store.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{}
}

// Record appends a new override instruction for learnerID, stamped now.
func (s *OverrideStore) Record(learnerID string, instr override.Instruction, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instructions = append(s.instructions, timestampedInstruction{instruction: instr, learnerID: learnerID, createdAt: now})
}

// GetByLearner returns learnerID's override instructions ordered oldest
// first by creation time.
func (s *OverrideStore) GetByLearner(ctx context.Context, learnerID string) ([]override.Instruction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []timestampedInstruction
	for _, ti := range s.instructions {
		if ti.learnerID == learnerID {
			matched = append(matched, ti)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].createdAt.Before(matched[j].createdAt)
	})

	out := make([]override.Instruction, len(matched))
	for i, ti := range matched {
		out[i] = ti.instruction
	}
	return out, nil
}
