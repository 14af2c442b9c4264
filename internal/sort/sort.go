// Package sort implements the priority-stable topological sort and
// weighted cycle-breaking recovery that orders a LearningPath's nodes
// with respect to its blocking dependency edges.
package sort

import (
	"log/slog"
	"sort"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

// Sort reorders path.Nodes into a topological order with respect to the
// path's blocking dependencies, using Kahn's algorithm with a stable,
// priority-based pick among ready nodes. On detecting a cycle it attempts
// one recovery pass (dropping removable edges in the witness cycle) before
// failing with domain.KindInvalidSequence, whose AffectedNodes lists the
// nodes that remained unordered.
func Sort(path *domain.LearningPath, logger *slog.Logger, now time.Time) error {
	if logger == nil {
		logger = slog.Default()
	}

	ordered, cyclic := kahn(path.Nodes, path.BlockingEdges())
	if !cyclic {
		path.Nodes = regroup(ordered)
		path.LastOptimizedAt = &now
		return nil
	}

	witness := findWitnessCycle(path.Nodes, path.BlockingEdges())
	removed := recoverFromCycle(path, witness)
	logger.Warn("cycle detected during sort; attempted recovery", "witness_size", len(witness), "edges_removed", removed)

	ordered, cyclic = kahn(path.Nodes, path.BlockingEdges())
	if cyclic {
		unordered := unorderedNodeIDs(path.Nodes, ordered)
		return domain.NewInvalidSequenceError("cycle remains after recovery", unordered)
	}

	path.Nodes = regroup(ordered)
	path.LastOptimizedAt = &now
	return nil
}

// kahn runs Kahn's algorithm over nodes restricted to the given blocking
// edges, breaking ties among ready nodes by ascending natural learning
// priority, then by insertion order into the ready set. It reports
// whether a cycle was detected (len(output) < len(nodes)).
func kahn(nodes []*domain.LearningNode, edges []domain.DependencyRelation) ([]*domain.LearningNode, bool) {
	byRepo := make(map[domain.ID]*domain.LearningNode, len(nodes))
	for _, n := range nodes {
		byRepo[n.Repository.ID] = n
	}

	inDegree := make(map[domain.ID]int, len(nodes))
	successors := make(map[domain.ID][]domain.ID)
	for _, n := range nodes {
		inDegree[n.NodeID] = 0
	}
	for _, e := range edges {
		source, ok1 := byRepo[e.Source]
		target, ok2 := byRepo[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		inDegree[target.NodeID]++
		successors[source.NodeID] = append(successors[source.NodeID], target.NodeID)
	}

	insertionOrder := make(map[domain.ID]int)
	var ready []*domain.LearningNode
	seq := 0
	for _, n := range nodes {
		if inDegree[n.NodeID] == 0 {
			ready = append(ready, n)
			insertionOrder[n.NodeID] = seq
			seq++
		}
	}

	byID := make(map[domain.ID]*domain.LearningNode, len(nodes))
	for _, n := range nodes {
		byID[n.NodeID] = n
	}

	var output []*domain.LearningNode
	for len(ready) > 0 {
		sort.SliceStable(ready, func(i, j int) bool {
			pi := ready[i].Repository.NaturalLearningPriority()
			pj := ready[j].Repository.NaturalLearningPriority()
			if pi != pj {
				return pi < pj
			}
			return insertionOrder[ready[i].NodeID] < insertionOrder[ready[j].NodeID]
		})

		pick := ready[0]
		ready = ready[1:]
		output = append(output, pick)

		for _, succID := range successors[pick.NodeID] {
			inDegree[succID]--
			if inDegree[succID] == 0 {
				ready = append(ready, byID[succID])
				insertionOrder[succID] = seq
				seq++
			}
		}
	}

	return output, len(output) < len(nodes)
}

// regroup partitions the Kahn order by primary skill type, preserving
// first-appearance order of types, then sorts each group by ascending
// complexity. The regrouping is abandoned (the Kahn order is kept
// verbatim) if it would place any node before one of its prerequisites.
func regroup(ordered []*domain.LearningNode) []*domain.LearningNode {
	if len(ordered) == 0 {
		return ordered
	}

	var typeOrder []domain.SkillType
	seen := map[domain.SkillType]bool{}
	groups := map[domain.SkillType][]*domain.LearningNode{}
	for _, n := range ordered {
		t := n.Repository.PrimarySkillValue().Type
		if !seen[t] {
			seen[t] = true
			typeOrder = append(typeOrder, t)
		}
		groups[t] = append(groups[t], n)
	}

	var candidate []*domain.LearningNode
	for _, t := range typeOrder {
		group := append([]*domain.LearningNode(nil), groups[t]...)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Repository.ComplexityScore < group[j].Repository.ComplexityScore
		})
		candidate = append(candidate, group...)
	}

	if violatesOrder(candidate) {
		return ordered
	}
	return candidate
}

// violatesOrder reports whether any node in the sequence appears before
// one of its own prerequisites.
func violatesOrder(nodes []*domain.LearningNode) bool {
	position := make(map[domain.ID]int, len(nodes))
	for i, n := range nodes {
		position[n.NodeID] = i
	}
	for _, n := range nodes {
		for prereq := range n.PrerequisiteNodes {
			if pos, ok := position[prereq]; ok && pos > position[n.NodeID] {
				return true
			}
		}
	}
	return false
}

// unorderedNodeIDs returns the node-identifier strings of the nodes
// present in all but absent from ordered, preserving all's relative order.
func unorderedNodeIDs(all, ordered []*domain.LearningNode) []string {
	placed := make(map[domain.ID]bool, len(ordered))
	for _, n := range ordered {
		placed[n.NodeID] = true
	}
	var out []string
	for _, n := range all {
		if !placed[n.NodeID] {
			out = append(out, n.NodeID.String())
		}
	}
	return out
}
