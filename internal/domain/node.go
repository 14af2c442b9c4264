package domain

import "fmt"

// NodeStatus enumerates the lifecycle states of a LearningNode.
type NodeStatus string

const (
	StatusNotStarted NodeStatus = "not_started"
	StatusAvailable  NodeStatus = "available"
	StatusInProgress NodeStatus = "in_progress"
	StatusCompleted  NodeStatus = "completed"
	StatusBlocked    NodeStatus = "blocked"
	StatusSkipped    NodeStatus = "skipped"
)

// Valid reports whether s belongs to the closed set of node statuses.
func (s NodeStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusAvailable, StatusInProgress, StatusCompleted, StatusBlocked, StatusSkipped:
		return true
	default:
		return false
	}
}

// LearningNode is a repository's representation within exactly one
// LearningPath: local status, progress, and the prerequisite/dependent
// edges connecting it to other nodes in the same path. Equality is by
// NodeID, never by content.
type LearningNode struct {
	NodeID             ID
	Repository         *Repository
	PrerequisiteNodes  map[ID]bool
	DependentNodes     map[ID]bool
	Status             NodeStatus
	ProgressPercentage int
	EstimatedHours     int
	ActualHours        int
	DifficultyOverride int // 0 means unset; otherwise 1..10
	IsOverridden       bool
	OverrideReason     string
	Note               string
	OrderIndex         int
}

// NewLearningNode constructs a fresh, not-started node for repo.
func NewLearningNode(repo *Repository) (*LearningNode, error) {
	if repo == nil {
		return nil, NewValidationError("repository", "must not be nil")
	}
	return &LearningNode{
		NodeID:             NewID(),
		Repository:         repo,
		PrerequisiteNodes:  map[ID]bool{},
		DependentNodes:     map[ID]bool{},
		Status:             StatusNotStarted,
		EstimatedHours:     repo.LearningHoursEstimate,
	}, nil
}

// AddPrerequisite links other as a prerequisite of n. It rejects self-
// reference and the case where other is already recorded as n's
// dependent, which would form an immediate 2-cycle between the two nodes.
func (n *LearningNode) AddPrerequisite(other ID) error {
	if other == n.NodeID {
		return NewBusinessRuleError("a node cannot be its own prerequisite", "no_self_prerequisite")
	}
	if n.DependentNodes[other] {
		return NewBusinessRuleError("node is already recorded as a dependent; adding it as a prerequisite would form a 2-cycle", "no_immediate_two_cycle")
	}
	n.PrerequisiteNodes[other] = true
	return nil
}

// AddDependent links other as a node that depends on n, with the
// symmetric guards of AddPrerequisite.
func (n *LearningNode) AddDependent(other ID) error {
	if other == n.NodeID {
		return NewBusinessRuleError("a node cannot depend on itself", "no_self_dependent")
	}
	if n.PrerequisiteNodes[other] {
		return NewBusinessRuleError("node is already recorded as a prerequisite; adding it as a dependent would form a 2-cycle", "no_immediate_two_cycle")
	}
	n.DependentNodes[other] = true
	return nil
}

// DifficultyScore returns the effective difficulty: the override if set,
// otherwise the repository's primary-skill difficulty.
func (n *LearningNode) DifficultyScore() int {
	if n.DifficultyOverride > 0 {
		return n.DifficultyOverride
	}
	return n.Repository.PrimarySkillValue().LearningDifficulty()
}

// Start transitions the node to in_progress, requiring every prerequisite
// to have status completed or skipped in completed; otherwise it fails with
// KindInvalidSequence listing the unmet prerequisite ids.
func (n *LearningNode) Start(completed map[ID]NodeStatus) error {
	if n.Status != StatusNotStarted && n.Status != StatusAvailable {
		return NewBusinessRuleError(fmt.Sprintf("cannot start node in status %q", n.Status), "start_requires_not_started")
	}
	var missing []string
	for prereq := range n.PrerequisiteNodes {
		st := completed[prereq]
		if st != StatusCompleted && st != StatusSkipped {
			missing = append(missing, prereq.String())
		}
	}
	if len(missing) > 0 {
		return NewInvalidSequenceError("cannot start node: prerequisites not met", missing)
	}
	n.Status = StatusInProgress
	return nil
}

// Complete transitions an in-progress node to completed at 100% progress.
func (n *LearningNode) Complete() error {
	if n.Status != StatusInProgress {
		return NewBusinessRuleError(fmt.Sprintf("cannot complete node in status %q", n.Status), "complete_requires_in_progress")
	}
	n.Status = StatusCompleted
	n.ProgressPercentage = 100
	return nil
}

// Pause records a pause for an in-progress node. Pausing is tracked
// separately from Status for persistence purposes and does not change
// Status itself.
func (n *LearningNode) Pause() error {
	if n.Status != StatusInProgress {
		return NewBusinessRuleError(fmt.Sprintf("cannot pause node in status %q", n.Status), "pause_requires_in_progress")
	}
	return nil
}

// Skip transitions a not-started or in-progress node to skipped.
func (n *LearningNode) Skip() error {
	if n.Status != StatusNotStarted && n.Status != StatusAvailable && n.Status != StatusInProgress {
		return NewBusinessRuleError(fmt.Sprintf("cannot skip node in status %q", n.Status), "skip_requires_not_started_or_in_progress")
	}
	n.Status = StatusSkipped
	return nil
}

// Reset returns any node not currently in_progress to not_started,
// clearing progress.
func (n *LearningNode) Reset() error {
	if n.Status == StatusInProgress {
		return NewBusinessRuleError("cannot reset a node in progress", "reset_forbidden_while_in_progress")
	}
	n.Status = StatusNotStarted
	n.ProgressPercentage = 0
	return nil
}

// RecomputeAvailability sets Status to available when the node is
// not_started and every prerequisite in completed is satisfied, or to
// blocked when not_started with unmet prerequisites. Nodes in any other
// status are left untouched.
func (n *LearningNode) RecomputeAvailability(completed map[ID]NodeStatus) {
	if n.Status != StatusNotStarted && n.Status != StatusAvailable && n.Status != StatusBlocked {
		return
	}
	for prereq := range n.PrerequisiteNodes {
		st := completed[prereq]
		if st != StatusCompleted && st != StatusSkipped {
			n.Status = StatusBlocked
			return
		}
	}
	if n.Status == StatusBlocked {
		n.Status = StatusAvailable
		return
	}
	if n.Status == StatusNotStarted {
		n.Status = StatusAvailable
	}
}

// ApplyOverride marks the node overridden with the given reason, falling
// back to a canonical default when reason is empty.
func (n *LearningNode) ApplyOverride(reason string) {
	n.IsOverridden = true
	if reason == "" {
		reason = "learner override"
	}
	n.OverrideReason = reason
}
