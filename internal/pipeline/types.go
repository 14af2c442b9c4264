// Package pipeline orchestrates a single learning-path generation: graph
// build, sort, milestone grouping, and override application, in that
// order, from one GenerateRequest to one GenerateResult.
package pipeline

import (
	"context"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/milestone"
	"github.com/kiet-ta/learning-path-repo/internal/override"
)

// GenerateRequest is the only input the core consumes from the outside.
type GenerateRequest struct {
	LearnerID             string
	Name                  string
	Description           string
	TargetSkillTypes      []domain.SkillType
	TargetSkillLevel      *domain.SkillLevel
	MaxRepositories       *int
	AllowParallelLearning bool
	MaxParallelNodes      int
	ExcludeRepositoryIDs  []domain.ID
}

// MilestoneResult is one phase in a GenerateResult: its name, ordered
// nodes, and aggregate metrics.
type MilestoneResult struct {
	Phase      milestone.Phase
	Nodes      []*domain.LearningNode
	TotalHours int
	NodeCount  int
}

// GenerateResult is the core's sole output value.
type GenerateResult struct {
	PathID               domain.ID
	LearnerID            string
	Name                 string
	Description          string
	Status               domain.PathStatus
	Milestones           []MilestoneResult
	TotalRepositories    int
	TotalEstimatedHours  int
	CompletionPercentage float64
	GeneratedAt          time.Time
	LastOptimizedAt      *time.Time
	Version              int
	Warnings             []string
	GenerationStats      map[string]any
}

// PathSummary is a lightweight view of a persisted path, used for listing.
type PathSummary struct {
	PathID    domain.ID
	LearnerID string
	Name      string
	Status    domain.PathStatus
	Version   int
	UpdatedAt time.Time
}

// RepositoryStore is the read/write collaborator for stored repositories.
type RepositoryStore interface {
	GetAll(ctx context.Context) ([]domain.Repository, error)
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Repository, error)
	Save(ctx context.Context, repo *domain.Repository) error
}

// OverrideStore is the read collaborator for a learner's persisted
// override instructions.
type OverrideStore interface {
	GetByLearner(ctx context.Context, learnerID string) ([]override.Instruction, error)
}

// PathStore persists generation results and lists path summaries.
type PathStore interface {
	Save(ctx context.Context, result GenerateResult) (GenerateResult, error)
	GetByLearner(ctx context.Context, learnerID string) ([]PathSummary, error)
}
