package sort

import "github.com/kiet-ta/learning-path-repo/internal/domain"

// findWitnessCycle locates one cycle (any one) in the graph induced by
// edges via depth-first search, returning the node identifiers in cycle
// order. Returns nil if the graph (restricted to these nodes) is acyclic.
func findWitnessCycle(nodes []*domain.LearningNode, edges []domain.DependencyRelation) []domain.ID {
	byRepo := make(map[domain.ID]*domain.LearningNode, len(nodes))
	for _, n := range nodes {
		byRepo[n.Repository.ID] = n
	}

	adjacency := make(map[domain.ID][]domain.ID)
	for _, e := range edges {
		source, ok1 := byRepo[e.Source]
		target, ok2 := byRepo[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		adjacency[source.NodeID] = append(adjacency[source.NodeID], target.NodeID)
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[domain.ID]int, len(nodes))
	var stack []domain.ID

	var visit func(id domain.ID) []domain.ID
	visit = func(id domain.ID) []domain.ID {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range adjacency[id] {
			switch color[next] {
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			case gray:
				// Found the back edge that closes the cycle: extract the
				// portion of the stack from next's first occurrence onward.
				for i, s := range stack {
					if s == next {
						cycle := append([]domain.ID(nil), stack[i:]...)
						return append(cycle, next)
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, n := range nodes {
		if color[n.NodeID] == white {
			if cycle := visit(n.NodeID); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// recoverFromCycle removes, from path's dependency set, every removable
// edge (system-created, and either weak strength or of type related /
// alternative) whose endpoints both lie within the witness cycle. It
// returns the number of edges removed. User-created relations are never
// touched.
func recoverFromCycle(path *domain.LearningPath, witness []domain.ID) int {
	if len(witness) == 0 {
		return 0
	}

	inWitness := make(map[domain.ID]bool, len(witness))
	for _, id := range witness {
		inWitness[id] = true
	}

	byRepo := make(map[domain.ID]*domain.LearningNode, len(path.Nodes))
	for _, n := range path.Nodes {
		byRepo[n.Repository.ID] = n
	}

	removed := 0
	for rel := range path.Dependencies {
		if !isRemovable(rel) {
			continue
		}
		source, ok1 := byRepo[rel.Source]
		target, ok2 := byRepo[rel.Target]
		if !ok1 || !ok2 {
			continue
		}
		if !inWitness[source.NodeID] || !inWitness[target.NodeID] {
			continue
		}
		delete(path.Dependencies, rel)
		delete(target.PrerequisiteNodes, source.NodeID)
		delete(source.DependentNodes, target.NodeID)
		removed++
	}
	return removed
}

// isRemovable reports whether rel is a candidate for automatic cycle
// recovery: system-created, and either weak strength or a related /
// alternative relation type.
func isRemovable(rel domain.DependencyRelation) bool {
	if rel.CreatedBy != domain.CreatedBySystem {
		return false
	}
	if rel.Strength == domain.StrengthWeak {
		return true
	}
	return rel.Type == domain.DependencyRelated || rel.Type == domain.DependencyAlternative
}
