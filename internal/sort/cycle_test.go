package sort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

func TestFindWitnessCycle_ReturnsNilWhenAcyclic(t *testing.T) {
	a := newNode(t, "repo/a", domain.LevelBasic)
	b := newNode(t, "repo/b", domain.LevelBasic)
	rel, err := domain.NewDependencyRelation(a.Repository.ID, b.Repository.ID, domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.9, "")
	require.NoError(t, err)

	cycle := findWitnessCycle([]*domain.LearningNode{a, b}, []domain.DependencyRelation{rel})
	assert.Nil(t, cycle)
}

func TestFindWitnessCycle_FindsThreeNodeCycle(t *testing.T) {
	a := newNode(t, "repo/a", domain.LevelBasic)
	b := newNode(t, "repo/b", domain.LevelBasic)
	c := newNode(t, "repo/c", domain.LevelBasic)

	relAB, _ := domain.NewDependencyRelation(a.Repository.ID, b.Repository.ID, domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.9, "")
	relBC, _ := domain.NewDependencyRelation(b.Repository.ID, c.Repository.ID, domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.9, "")
	relCA, _ := domain.NewDependencyRelation(c.Repository.ID, a.Repository.ID, domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.9, "")

	cycle := findWitnessCycle([]*domain.LearningNode{a, b, c}, []domain.DependencyRelation{relAB, relBC, relCA})
	require.NotEmpty(t, cycle)
	ids := map[domain.ID]bool{}
	for _, id := range cycle {
		ids[id] = true
	}
	assert.True(t, ids[a.NodeID])
	assert.True(t, ids[b.NodeID])
	assert.True(t, ids[c.NodeID])
}

func TestRecoverFromCycle_RemovesRemovableEdgeWithinWitness(t *testing.T) {
	a := newNode(t, "repo/a", domain.LevelBasic)
	b := newNode(t, "repo/b", domain.LevelBasic)
	path := newPathWithNodes(t, a, b)

	removable, err := domain.NewDependencyRelation(a.Repository.ID, b.Repository.ID, domain.DependencyRelated, domain.StrengthWeak, domain.CreatedBySystem, 0.3, "")
	require.NoError(t, err)
	path.Dependencies[removable] = true

	removed := recoverFromCycle(path, []domain.ID{a.NodeID, b.NodeID})
	assert.Equal(t, 1, removed)
	assert.Empty(t, path.Dependencies)
}

func TestRecoverFromCycle_NeverRemovesUserCreatedEdges(t *testing.T) {
	a := newNode(t, "repo/a", domain.LevelBasic)
	b := newNode(t, "repo/b", domain.LevelBasic)
	path := newPathWithNodes(t, a, b)

	userEdge, err := domain.NewDependencyRelation(a.Repository.ID, b.Repository.ID, domain.DependencyRelated, domain.StrengthWeak, domain.CreatedByUser, 0.3, "")
	require.NoError(t, err)
	path.Dependencies[userEdge] = true

	removed := recoverFromCycle(path, []domain.ID{a.NodeID, b.NodeID})
	assert.Equal(t, 0, removed)
	assert.Len(t, path.Dependencies, 1)
}

func TestIsRemovable(t *testing.T) {
	weakSystem, _ := domain.NewDependencyRelation(domain.NewID(), domain.NewID(), domain.DependencyPrerequisite, domain.StrengthWeak, domain.CreatedBySystem, 0.5, "")
	assert.True(t, isRemovable(weakSystem))

	relatedSystem, _ := domain.NewDependencyRelation(domain.NewID(), domain.NewID(), domain.DependencyRelated, domain.StrengthStrong, domain.CreatedBySystem, 0.5, "")
	assert.True(t, isRemovable(relatedSystem))

	strongSystem, _ := domain.NewDependencyRelation(domain.NewID(), domain.NewID(), domain.DependencyPrerequisite, domain.StrengthStrong, domain.CreatedBySystem, 0.5, "")
	assert.False(t, isRemovable(strongSystem))

	weakUser, _ := domain.NewDependencyRelation(domain.NewID(), domain.NewID(), domain.DependencyPrerequisite, domain.StrengthWeak, domain.CreatedByUser, 0.5, "")
	assert.False(t, isRemovable(weakUser))
}
