package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLearningPath_RejectsEmptyLearnerID(t *testing.T) {
	_, err := NewLearningPath("", "name", "", false, 1, time.Unix(0, 0))
	require.Error(t, err)
}

func TestNewLearningPath_RejectsInvalidMaxParallel(t *testing.T) {
	_, err := NewLearningPath("learner-1", "name", "", true, 0, time.Unix(0, 0))
	require.Error(t, err)
}

func TestLearningPath_NodeByID_AndRepositoryID(t *testing.T) {
	p, err := NewLearningPath("learner-1", "name", "", false, 1, time.Unix(0, 0))
	require.NoError(t, err)
	repo := newTestRepo(t)
	node, _ := NewLearningNode(repo)
	p.Nodes = append(p.Nodes, node)

	assert.Equal(t, node, p.NodeByID(node.NodeID))
	assert.Equal(t, node, p.NodeByRepositoryID(repo.ID))
	assert.Nil(t, p.NodeByID(NewID()))
}

func TestLearningPath_BlockingEdges_FiltersNonBlocking(t *testing.T) {
	p, _ := NewLearningPath("learner-1", "name", "", false, 1, time.Unix(0, 0))
	a, b, c := NewID(), NewID(), NewID()
	blocking, _ := NewDependencyRelation(a, b, DependencyPrerequisite, StrengthStrong, CreatedBySystem, 1.0, "")
	weak, _ := NewDependencyRelation(a, c, DependencyRelated, StrengthWeak, CreatedBySystem, 0.5, "")
	p.Dependencies[blocking] = true
	p.Dependencies[weak] = true

	edges := p.BlockingEdges()
	require.Len(t, edges, 1)
	assert.True(t, edges[0].Equal(blocking))
}

func TestLearningPath_RecalculateTotals(t *testing.T) {
	p, _ := NewLearningPath("learner-1", "name", "", false, 1, time.Unix(0, 0))
	repo := newTestRepo(t)
	node, _ := NewLearningNode(repo)
	require.NoError(t, node.Start(nil))
	require.NoError(t, node.Complete())
	p.Nodes = append(p.Nodes, node)

	p.RecalculateTotals()
	assert.Equal(t, node.EstimatedHours, p.TotalEstimatedHours)
	assert.Equal(t, 100.0, p.CompletionPercentage)
}

func TestLearningPath_Touch_BumpsVersion(t *testing.T) {
	p, _ := NewLearningPath("learner-1", "name", "", false, 1, time.Unix(0, 0))
	initial := p.Version
	later := time.Unix(1000, 0)
	p.Touch(later)
	assert.Equal(t, initial+1, p.Version)
	assert.Equal(t, later, p.UpdatedAt)
}
