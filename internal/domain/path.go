package domain

import "time"

// PathStatus enumerates the lifecycle states of a LearningPath.
type PathStatus string

const (
	PathDraft     PathStatus = "draft"
	PathActive    PathStatus = "active"
	PathCompleted PathStatus = "completed"
	PathArchived  PathStatus = "archived"
)

// Valid reports whether s belongs to the closed set of path statuses.
func (s PathStatus) Valid() bool {
	switch s {
	case PathDraft, PathActive, PathCompleted, PathArchived:
		return true
	default:
		return false
	}
}

// LearningPath is the aggregate root owning an ordered sequence of nodes
// and the dependency relations between them. The graph induced by its
// blocking dependencies must remain acyclic, and Nodes must remain a
// topologically valid order with respect to those dependencies, at every
// point after construction.
type LearningPath struct {
	PathID                ID
	LearnerID             string
	Name                  string
	Description           string
	Nodes                 []*LearningNode
	Dependencies          map[DependencyRelation]bool
	Status                PathStatus
	AllowParallelLearning bool
	MaxParallelNodes      int
	TotalEstimatedHours   int
	CompletionPercentage  float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
	LastOptimizedAt       *time.Time
	Version               int
}

// NewLearningPath validates and constructs an empty draft LearningPath.
// Nodes and dependencies are populated afterward by the graph builder.
func NewLearningPath(learnerID, name, description string, allowParallel bool, maxParallel int, now time.Time) (*LearningPath, error) {
	if learnerID == "" {
		return nil, NewValidationError("learner_id", "must not be empty")
	}
	if maxParallel < 1 {
		return nil, NewValidationError("max_parallel_nodes", "must be at least 1")
	}
	return &LearningPath{
		PathID:                NewID(),
		LearnerID:             learnerID,
		Name:                  name,
		Description:           description,
		Nodes:                 nil,
		Dependencies:          map[DependencyRelation]bool{},
		Status:                PathDraft,
		AllowParallelLearning: allowParallel,
		MaxParallelNodes:      maxParallel,
		Version:               1,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// NodeByID returns the node with the given id, or nil if absent.
func (p *LearningPath) NodeByID(id ID) *LearningNode {
	for _, n := range p.Nodes {
		if n.NodeID == id {
			return n
		}
	}
	return nil
}

// NodeByRepositoryID returns the node referencing repoID, or nil if absent.
func (p *LearningPath) NodeByRepositoryID(repoID ID) *LearningNode {
	for _, n := range p.Nodes {
		if n.Repository.ID == repoID {
			return n
		}
	}
	return nil
}

// BlockingEdges returns the subset of Dependencies that are blocking,
// i.e. the edges whose acyclicity the path must maintain.
func (p *LearningPath) BlockingEdges() []DependencyRelation {
	var out []DependencyRelation
	for d := range p.Dependencies {
		if d.IsBlocking() {
			out = append(out, d)
		}
	}
	return out
}

// RecalculateTotals recomputes TotalEstimatedHours and
// CompletionPercentage from the current node set. Callers invoke this
// after any mutation of Nodes.
func (p *LearningPath) RecalculateTotals() {
	var totalHours, completedHours int
	for _, n := range p.Nodes {
		totalHours += n.EstimatedHours
		if n.Status == StatusCompleted {
			completedHours += n.EstimatedHours
		}
	}
	p.TotalEstimatedHours = totalHours
	if totalHours == 0 {
		p.CompletionPercentage = 0
		return
	}
	p.CompletionPercentage = float64(completedHours) / float64(totalHours) * 100
}

// Touch bumps the version and UpdatedAt timestamp. The pipeline calls it
// once per generation, after overrides are applied.
func (p *LearningPath) Touch(now time.Time) {
	p.Version++
	p.UpdatedAt = now
}
