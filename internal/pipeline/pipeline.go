package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/diagnostics"
	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/graph"
	"github.com/kiet-ta/learning-path-repo/internal/milestone"
	"github.com/kiet-ta/learning-path-repo/internal/override"
	"github.com/kiet-ta/learning-path-repo/internal/sort"
)

// Generator drives C2 (graph build) through C5 (override apply) for one
// GenerateRequest. A Generator holds no mutable state between calls and
// is safe to invoke concurrently from multiple goroutines, provided its
// RepositoryStore and OverrideStore are themselves safe for concurrent
// reads.
type Generator struct {
	Repositories RepositoryStore
	Overrides    OverrideStore
	Logger       *slog.Logger
	Now          func() time.Time
}

// NewGenerator constructs a Generator with the given collaborators. Now
// defaults to time.Now if nil; tests may override it for determinism.
func NewGenerator(repos RepositoryStore, overrides OverrideStore, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Repositories: repos, Overrides: overrides, Logger: logger, Now: time.Now}
}

// Generate runs one full generation: it never mutates Repositories
// entities, never sleeps, and never retries. Per-edge inference failures
// and unknown-phase overrides are recovered locally and surface as
// warnings; everything else propagates as an error.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	startedAt := now()
	diag := diagnostics.New()

	if req.LearnerID == "" {
		return GenerateResult{}, domain.NewValidationError("learner_id", "must not be empty")
	}
	if req.Name == "" || len(req.Name) > 255 {
		return GenerateResult{}, domain.NewValidationError("name", "must be between 1 and 255 characters")
	}
	maxParallel := req.MaxParallelNodes
	if maxParallel < 1 {
		maxParallel = 3
	}

	all, err := g.Repositories.GetAll(ctx)
	if err != nil {
		return GenerateResult{}, err
	}
	if len(all) == 0 {
		return GenerateResult{}, domain.NewNotFoundError("repository", "*")
	}

	considered := len(all)
	filtered := filterRepositories(all, req)
	if req.MaxRepositories != nil && *req.MaxRepositories >= 0 && len(filtered) > *req.MaxRepositories {
		filtered = filtered[:*req.MaxRepositories]
	}

	excludeSet := make(map[domain.ID]bool, len(req.ExcludeRepositoryIDs))
	for _, id := range req.ExcludeRepositoryIDs {
		excludeSet[id] = true
	}

	repoPtrs := make([]*domain.Repository, len(filtered))
	for i := range filtered {
		r := filtered[i]
		repoPtrs[i] = &r
	}

	buildResult, err := graph.Build(graph.BuildRequest{
		LearnerID:     req.LearnerID,
		Name:          req.Name,
		Description:   req.Description,
		Repositories:  repoPtrs,
		AllowParallel: req.AllowParallelLearning,
		MaxParallel:   maxParallel,
		ExcludeIDs:    excludeSet,
	}, g.Logger, startedAt)
	if err != nil {
		return GenerateResult{}, err
	}
	diag.AddAll("graph_builder", buildResult.Warnings)

	path := buildResult.Path
	if len(path.Nodes) > 0 {
		if err := sort.Sort(path, g.Logger, now()); err != nil {
			return GenerateResult{}, err
		}
	}

	milestones := milestone.Group(path.Nodes)

	instructions, err := g.Overrides.GetByLearner(ctx, req.LearnerID)
	if err != nil {
		return GenerateResult{}, err
	}
	appliedPhases, overrideWarnings := override.Apply(milestones, instructions)
	diag.AddAll("override_applier", overrideWarnings)

	path.Nodes = milestone.Flatten(appliedPhases)
	path.RecalculateTotals()
	path.Touch(now())

	finishedAt := now()
	result := GenerateResult{
		PathID:               path.PathID,
		LearnerID:            path.LearnerID,
		Name:                 path.Name,
		Description:          path.Description,
		Status:               domain.PathDraft,
		Milestones:           toMilestoneResults(appliedPhases),
		TotalRepositories:    len(path.Nodes),
		TotalEstimatedHours:  path.TotalEstimatedHours,
		CompletionPercentage: path.CompletionPercentage,
		GeneratedAt:          startedAt,
		LastOptimizedAt:      path.LastOptimizedAt,
		Version:              path.Version,
		Warnings:             diag.Strings(),
		GenerationStats: map[string]any{
			"repositories_considered": considered,
			"repositories_included":   len(path.Nodes),
			"generation_time_ms":      finishedAt.Sub(startedAt).Milliseconds(),
		},
	}
	return result, nil
}

// filterRepositories applies target_skill_types and target_skill_level,
// each treated as "no filter" when empty/nil.
func filterRepositories(all []domain.Repository, req GenerateRequest) []domain.Repository {
	typeFilter := make(map[domain.SkillType]bool, len(req.TargetSkillTypes))
	for _, t := range req.TargetSkillTypes {
		typeFilter[t] = true
	}

	out := make([]domain.Repository, 0, len(all))
	for _, r := range all {
		if len(typeFilter) > 0 {
			matched := false
			for t := range typeFilter {
				if r.HasSkillType(t) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if req.TargetSkillLevel != nil {
			levelMatched := false
			for _, s := range r.AllSkills() {
				if s.Level == *req.TargetSkillLevel {
					levelMatched = true
					break
				}
			}
			if !levelMatched {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toMilestoneResults(phases []milestone.Milestone) []MilestoneResult {
	out := make([]MilestoneResult, len(phases))
	for i, p := range phases {
		out[i] = MilestoneResult{Phase: p.Phase, Nodes: p.Nodes, TotalHours: p.TotalHours, NodeCount: p.NodeCount}
	}
	return out
}
