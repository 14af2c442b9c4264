// Package graph builds a LearningPath's initial node set and dependency
// edges from a flat list of repositories, inferring prerequisite
// relationships with a small ordered set of heuristics.
package graph

import (
	"log/slog"
	"sort"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

// BuildRequest carries the inputs to Build.
type BuildRequest struct {
	LearnerID     string
	Name          string
	Description   string
	Repositories  []*domain.Repository
	AllowParallel bool
	MaxParallel   int
	ExcludeIDs    map[domain.ID]bool
}

// BuildResult carries the freshly constructed path plus any non-fatal
// diagnostics produced while inferring edges.
type BuildResult struct {
	Path     *domain.LearningPath
	Warnings []string
}

// Build constructs a draft LearningPath with one node per included
// repository and a dependency set populated by heuristic inference. It
// never fails on a per-edge basis: inference failures are dropped and
// reported as warnings.
func Build(req BuildRequest, logger *slog.Logger, now time.Time) (*BuildResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	maxParallel := req.MaxParallel
	if maxParallel < 1 {
		maxParallel = 1
	}

	path, err := domain.NewLearningPath(req.LearnerID, req.Name, req.Description, req.AllowParallel, maxParallel, now)
	if err != nil {
		return nil, err
	}

	included := make([]*domain.Repository, 0, len(req.Repositories))
	for _, r := range req.Repositories {
		if req.ExcludeIDs[r.ID] {
			continue
		}
		included = append(included, r)
	}

	sort.SliceStable(included, func(i, j int) bool {
		return included[i].NaturalLearningPriority() < included[j].NaturalLearningPriority()
	})

	result := &BuildResult{Path: path}
	if len(included) == 0 {
		return result, nil
	}

	nodes := make([]*domain.LearningNode, 0, len(included))
	for _, repo := range included {
		node, err := domain.NewLearningNode(repo)
		if err != nil {
			result.Warnings = append(result.Warnings, "skipped repository "+repo.Path+": "+err.Error())
			continue
		}
		nodes = append(nodes, node)
	}
	path.Nodes = nodes

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			rel, ok := inferRelation(a, b)
			if !ok {
				continue
			}
			if err := addEdge(path, a, b, rel); err != nil {
				logger.Warn("dropped inferred edge", "source", a.NodeID.String(), "target", b.NodeID.String(), "error", err.Error())
				result.Warnings = append(result.Warnings, "dropped edge "+a.Repository.Path+" -> "+b.Repository.Path+": "+err.Error())
			}
		}
	}

	path.RecalculateTotals()
	return result, nil
}

// inferRelation applies the ordered heuristic rules for a pre-sorted pair
// (a precedes b). Only the first matching rule fires.
func inferRelation(a, b *domain.LearningNode) (domain.DependencyRelation, bool) {
	repoA, repoB := a.Repository, b.Repository

	// Rule 1: topic prerequisite.
	for _, topicB := range repoB.Topics {
		for _, topicA := range repoA.Topics {
			if topicB.HasParent(topicA.Name) {
				rel, err := domain.NewDependencyRelation(repoA.ID, repoB.ID, domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.9, "topic prerequisite")
				if err == nil {
					return rel, true
				}
			}
		}
	}

	skillA, skillB := repoA.PrimarySkillValue(), repoB.PrimarySkillValue()

	// Rule 2: skill progression, same type.
	if skillA.Type == skillB.Type && skillA.Level.Less(skillB.Level) {
		rel, err := domain.NewDependencyRelation(repoA.ID, repoB.ID, domain.DependencyPrerequisite, domain.StrengthModerate, domain.CreatedBySystem, 0.75, "skill progression")
		if err == nil {
			return rel, true
		}
	}

	// Rule 3: compatible skill progression with complexity.
	if skillA.Type.CompatibleWith(skillB.Type) && repoA.ComplexityScore < repoB.ComplexityScore {
		rel, err := domain.NewDependencyRelation(repoA.ID, repoB.ID, domain.DependencyRecommended, domain.StrengthWeak, domain.CreatedBySystem, 0.5, "compatible skill progression")
		if err == nil {
			return rel, true
		}
	}

	// Rule 4: complexity gap.
	if repoA.ComplexityScore < 3.0 && repoB.ComplexityScore > 6.0 {
		rel, err := domain.NewDependencyRelation(repoA.ID, repoB.ID, domain.DependencyRecommended, domain.StrengthWeak, domain.CreatedBySystem, 0.4, "complexity gap")
		if err == nil {
			return rel, true
		}
	}

	return domain.DependencyRelation{}, false
}

// addEdge inserts rel into the path's dependency set. For blocking edges
// it also links the node-level prerequisite/dependent sets, refusing the
// insertion (and leaving the path untouched) if it would create an
// immediate 2-cycle at the node level.
func addEdge(path *domain.LearningPath, source, target *domain.LearningNode, rel domain.DependencyRelation) error {
	if !rel.IsBlocking() {
		path.Dependencies[rel] = true
		return nil
	}
	if err := target.AddPrerequisite(source.NodeID); err != nil {
		return err
	}
	if err := source.AddDependent(target.NodeID); err != nil {
		// Roll back the prerequisite link added above so the node pair is
		// left exactly as it was found.
		delete(target.PrerequisiteNodes, source.NodeID)
		return err
	}
	path.Dependencies[rel] = true
	return nil
}
