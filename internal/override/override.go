// Package override re-applies a learner's persisted overrides over a
// milestone phase list, producing a new phase list. The input phase slices
// are left unchanged; the nodes they point to are shared with the result
// and receive the override markers in place.
package override

import (
	"fmt"
	"sort"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/milestone"
)

// Kind discriminates the four override instruction variants.
type Kind string

const (
	KindSkip       Kind = "skip"
	KindReorder    Kind = "reorder"
	KindForcePhase Kind = "force_phase"
	KindNote       Kind = "note"
)

// Instruction is a single persisted override for one learner.
type Instruction struct {
	Kind         Kind
	RepositoryID domain.ID
	TargetIndex  int
	Phase        milestone.Phase
	Text         string
	Reason       string
}

// Apply re-applies instructions, in order, over phases and returns a new
// phase list; the slices of phases are never modified, but the nodes are
// shared with the result, so IsOverridden, OrderIndex and Note set by an
// instruction are visible through phases too. Each instruction is resolved
// against the cumulative effect of all prior instructions. Unknown target
// phases are downgraded to a warning rather than treated as fatal. Phases
// left with no nodes are omitted from the result.
func Apply(phases []milestone.Milestone, instructions []Instruction) ([]milestone.Milestone, []string) {
	working := deepCopy(phases)
	var warnings []string

	for _, instr := range instructions {
		switch instr.Kind {
		case KindSkip:
			working, warnings = applySkip(working, instr, warnings)
		case KindReorder:
			working, warnings = applyReorder(working, instr, warnings)
		case KindForcePhase:
			working, warnings = applyForcePhase(working, instr, warnings)
		case KindNote:
			warnings = applyNote(working, instr, warnings)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown override kind %q for repository %s: ignored", instr.Kind, instr.RepositoryID))
		}
	}

	pruned := working[:0]
	for _, p := range working {
		if len(p.Nodes) > 0 {
			pruned = append(pruned, p)
		}
	}
	return pruned, warnings
}

func deepCopy(phases []milestone.Milestone) []milestone.Milestone {
	out := make([]milestone.Milestone, len(phases))
	for i, p := range phases {
		out[i] = milestone.Milestone{
			Phase:      p.Phase,
			Nodes:      append([]*domain.LearningNode(nil), p.Nodes...),
			TotalHours: p.TotalHours,
			NodeCount:  p.NodeCount,
		}
	}
	return out
}

func findNode(phases []milestone.Milestone, repoID domain.ID) (phaseIdx, nodeIdx int, node *domain.LearningNode) {
	for pi, p := range phases {
		for ni, n := range p.Nodes {
			if n.Repository.ID == repoID {
				return pi, ni, n
			}
		}
	}
	return -1, -1, nil
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "learner override"
	}
	return reason
}

func applySkip(phases []milestone.Milestone, instr Instruction, warnings []string) ([]milestone.Milestone, []string) {
	pi, ni, node := findNode(phases, instr.RepositoryID)
	if node == nil {
		return phases, append(warnings, fmt.Sprintf("override targeted unknown repository %s: ignored", instr.RepositoryID))
	}
	node.ApplyOverride(reasonOrDefault(instr.Reason))
	phases[pi].Nodes = append(phases[pi].Nodes[:ni], phases[pi].Nodes[ni+1:]...)
	phases[pi].NodeCount = len(phases[pi].Nodes)
	return phases, warnings
}

func applyReorder(phases []milestone.Milestone, instr Instruction, warnings []string) ([]milestone.Milestone, []string) {
	_, _, node := findNode(phases, instr.RepositoryID)
	if node == nil {
		return phases, append(warnings, fmt.Sprintf("override targeted unknown repository %s: ignored", instr.RepositoryID))
	}
	node.OrderIndex = instr.TargetIndex
	node.ApplyOverride(reasonOrDefault(instr.Reason))

	for i, p := range phases {
		sorted := append([]*domain.LearningNode(nil), p.Nodes...)
		sort.SliceStable(sorted, func(a, b int) bool {
			return sorted[a].OrderIndex < sorted[b].OrderIndex
		})
		phases[i].Nodes = sorted
	}
	return phases, warnings
}

func applyForcePhase(phases []milestone.Milestone, instr Instruction, warnings []string) ([]milestone.Milestone, []string) {
	pi, ni, node := findNode(phases, instr.RepositoryID)
	if node == nil {
		return phases, append(warnings, fmt.Sprintf("override targeted unknown repository %s: ignored", instr.RepositoryID))
	}

	targetIdx := -1
	for i, p := range phases {
		if p.Phase == instr.Phase {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		rank, ok := milestone.PhaseRank(instr.Phase)
		if !ok {
			return phases, append(warnings, fmt.Sprintf("override targeted unknown phase %q for repository %s: ignored", instr.Phase, instr.RepositoryID))
		}
		insertAt := len(phases)
		for i, p := range phases {
			if pr, _ := milestone.PhaseRank(p.Phase); pr > rank {
				insertAt = i
				break
			}
		}
		phases = append(phases, milestone.Milestone{})
		copy(phases[insertAt+1:], phases[insertAt:])
		phases[insertAt] = milestone.Milestone{Phase: instr.Phase}
		targetIdx = insertAt
		if targetIdx <= pi {
			pi++
		}
	}

	node.ApplyOverride(reasonOrDefault(instr.Reason))
	phases[pi].Nodes = append(phases[pi].Nodes[:ni], phases[pi].Nodes[ni+1:]...)
	phases[pi].NodeCount = len(phases[pi].Nodes)
	phases[targetIdx].Nodes = append(phases[targetIdx].Nodes, node)
	phases[targetIdx].NodeCount = len(phases[targetIdx].Nodes)
	return phases, warnings
}

func applyNote(phases []milestone.Milestone, instr Instruction, warnings []string) []string {
	_, _, node := findNode(phases, instr.RepositoryID)
	if node == nil {
		return append(warnings, fmt.Sprintf("override targeted unknown repository %s: ignored", instr.RepositoryID))
	}
	node.Note = instr.Text
	node.ApplyOverride(reasonOrDefault(instr.Reason))
	return warnings
}
