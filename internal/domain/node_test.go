package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	meta, _ := NewRepositoryMetadata(100, 10, nil, false, false, false, nil)
	s, _ := NewSkill(SkillBackend, LevelBasic)
	repo, err := NewRepository("repo-a", "repo/a", "go", "", meta, []Skill{s}, nil)
	require.NoError(t, err)
	return repo
}

func TestNewLearningNode_RejectsNilRepository(t *testing.T) {
	_, err := NewLearningNode(nil)
	require.Error(t, err)
}

func TestLearningNode_AddPrerequisite_RejectsSelf(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	err := n.AddPrerequisite(n.NodeID)
	require.Error(t, err)
}

func TestLearningNode_AddPrerequisite_RejectsTwoCycle(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	other := NewID()
	require.NoError(t, n.AddDependent(other))
	err := n.AddPrerequisite(other)
	require.Error(t, err)
}

func TestLearningNode_Start_RequiresPrereqsMet(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	prereq := NewID()
	require.NoError(t, n.AddPrerequisite(prereq))

	err := n.Start(map[ID]NodeStatus{})
	require.Error(t, err)
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, KindInvalidSequence, derr.Kind)

	err = n.Start(map[ID]NodeStatus{prereq: StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, n.Status)
}

func TestLearningNode_Complete_RequiresInProgress(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	err := n.Complete()
	require.Error(t, err)

	require.NoError(t, n.Start(nil))
	require.NoError(t, n.Complete())
	assert.Equal(t, StatusCompleted, n.Status)
	assert.Equal(t, 100, n.ProgressPercentage)
}

func TestLearningNode_Skip_FromNotStartedOrInProgress(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	require.NoError(t, n.Skip())
	assert.Equal(t, StatusSkipped, n.Status)

	n2, _ := NewLearningNode(newTestRepo(t))
	require.NoError(t, n2.Start(nil))
	require.NoError(t, n2.Skip())
	assert.Equal(t, StatusSkipped, n2.Status)
}

func TestLearningNode_Reset_ForbiddenWhileInProgress(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	require.NoError(t, n.Start(nil))
	err := n.Reset()
	require.Error(t, err)

	require.NoError(t, n.Complete())
	require.NoError(t, n.Reset())
	assert.Equal(t, StatusNotStarted, n.Status)
}

func TestLearningNode_RecomputeAvailability(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	prereq := NewID()
	require.NoError(t, n.AddPrerequisite(prereq))

	n.RecomputeAvailability(map[ID]NodeStatus{})
	assert.Equal(t, StatusBlocked, n.Status)

	n.RecomputeAvailability(map[ID]NodeStatus{prereq: StatusCompleted})
	assert.Equal(t, StatusAvailable, n.Status)
}

func TestLearningNode_ApplyOverride_DefaultsReason(t *testing.T) {
	n, _ := NewLearningNode(newTestRepo(t))
	n.ApplyOverride("")
	assert.True(t, n.IsOverridden)
	assert.NotEmpty(t, n.OverrideReason)
}
