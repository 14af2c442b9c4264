// Package milestone partitions a sorted node sequence into the four
// named learning phases, preserving sort order within each phase.
package milestone

import "github.com/kiet-ta/learning-path-repo/internal/domain"

// Phase names the four fixed milestone buckets, in their output order.
type Phase string

const (
	PhaseFoundations     Phase = "foundations"
	PhaseCoreSkills      Phase = "core_skills"
	PhaseAdvancedSystems Phase = "advanced_systems"
	PhaseSpecialized     Phase = "specialized_topics"
)

// phaseOrder is the fixed output order; phases absent from a given
// grouping (no nodes assigned) are omitted entirely.
var phaseOrder = []Phase{PhaseFoundations, PhaseCoreSkills, PhaseAdvancedSystems, PhaseSpecialized}

// PhaseRank reports p's position in the canonical phase order and whether
// p is one of the four canonical phases at all.
func PhaseRank(p Phase) (int, bool) {
	for i, candidate := range phaseOrder {
		if candidate == p {
			return i, true
		}
	}
	return -1, false
}

// Milestone groups the nodes assigned to a single phase, in sorter order.
type Milestone struct {
	Phase      Phase
	Nodes      []*domain.LearningNode
	TotalHours int
	NodeCount  int
}

// Group partitions nodes into phases, skipping empty phases, and keeping
// each phase's nodes in their incoming relative order.
func Group(nodes []*domain.LearningNode) []Milestone {
	buckets := make(map[Phase][]*domain.LearningNode, len(phaseOrder))
	for _, n := range nodes {
		p := assignPhase(n)
		buckets[p] = append(buckets[p], n)
	}

	var out []Milestone
	for _, p := range phaseOrder {
		bucket := buckets[p]
		if len(bucket) == 0 {
			continue
		}
		hours := 0
		for _, n := range bucket {
			hours += n.EstimatedHours
		}
		out = append(out, Milestone{Phase: p, Nodes: bucket, TotalHours: hours, NodeCount: len(bucket)})
	}
	return out
}

// assignPhase maps a node to its phase: primary skill level first
// (basic→foundations, intermediate→core_skills, advanced→advanced_systems,
// expert→specialized_topics), falling back to complexity score when no
// skill evidence applies. Skill evidence always wins over complexity.
func assignPhase(n *domain.LearningNode) Phase {
	level := n.Repository.PrimarySkillValue().Level
	switch level {
	case domain.LevelBasic:
		return PhaseFoundations
	case domain.LevelIntermediate:
		return PhaseCoreSkills
	case domain.LevelAdvanced:
		return PhaseAdvancedSystems
	case domain.LevelExpert:
		return PhaseSpecialized
	}
	return phaseByComplexity(n.Repository.ComplexityScore)
}

func phaseByComplexity(score float64) Phase {
	switch {
	case score < 3:
		return PhaseFoundations
	case score < 5:
		return PhaseCoreSkills
	case score < 7:
		return PhaseAdvancedSystems
	default:
		return PhaseSpecialized
	}
}

// Flatten concatenates every milestone's nodes back into a single
// sequence, in phase order.
func Flatten(milestones []Milestone) []*domain.LearningNode {
	var out []*domain.LearningNode
	for _, m := range milestones {
		out = append(out, m.Nodes...)
	}
	return out
}
