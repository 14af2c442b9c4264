package milestone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

func nodeWithLevel(t *testing.T, path string, level domain.SkillLevel) *domain.LearningNode {
	t.Helper()
	meta, err := domain.NewRepositoryMetadata(100, 1, nil, false, false, false, nil)
	require.NoError(t, err)
	skill, err := domain.NewSkill(domain.SkillBackend, level)
	require.NoError(t, err)
	name := strings.ReplaceAll(path, "/", "-")
	repo, err := domain.NewRepository(name, path, "go", "", meta, []domain.Skill{skill}, nil)
	require.NoError(t, err)
	node, err := domain.NewLearningNode(repo)
	require.NoError(t, err)
	return node
}

func TestGroup_AssignsBySkillLevel(t *testing.T) {
	basic := nodeWithLevel(t, "repo/basic", domain.LevelBasic)
	intermediate := nodeWithLevel(t, "repo/intermediate", domain.LevelIntermediate)
	advanced := nodeWithLevel(t, "repo/advanced", domain.LevelAdvanced)
	expert := nodeWithLevel(t, "repo/expert", domain.LevelExpert)

	milestones := Group([]*domain.LearningNode{basic, intermediate, advanced, expert})
	require.Len(t, milestones, 4)
	assert.Equal(t, PhaseFoundations, milestones[0].Phase)
	assert.Equal(t, PhaseCoreSkills, milestones[1].Phase)
	assert.Equal(t, PhaseAdvancedSystems, milestones[2].Phase)
	assert.Equal(t, PhaseSpecialized, milestones[3].Phase)
}

func TestGroup_OmitsEmptyPhases(t *testing.T) {
	basic := nodeWithLevel(t, "repo/basic", domain.LevelBasic)
	milestones := Group([]*domain.LearningNode{basic})
	require.Len(t, milestones, 1)
	assert.Equal(t, PhaseFoundations, milestones[0].Phase)
}

func TestGroup_PreservesOrderWithinPhase(t *testing.T) {
	first := nodeWithLevel(t, "repo/first", domain.LevelBasic)
	second := nodeWithLevel(t, "repo/second", domain.LevelBasic)
	milestones := Group([]*domain.LearningNode{second, first})
	require.Len(t, milestones, 1)
	require.Len(t, milestones[0].Nodes, 2)
	assert.Equal(t, second.NodeID, milestones[0].Nodes[0].NodeID)
	assert.Equal(t, first.NodeID, milestones[0].Nodes[1].NodeID)
}

func TestGroup_BasicLevelWinsOverHighComplexity(t *testing.T) {
	meta, err := domain.NewRepositoryMetadata(100, 1, nil, false, false, false, nil)
	require.NoError(t, err)
	skill, err := domain.NewSkill(domain.SkillMachineLearning, domain.LevelBasic)
	require.NoError(t, err)
	topic, err := domain.NewTopic("deep-topic", domain.CategoryArchitecture, domain.DifficultyExpert, []string{"a", "b", "c"})
	require.NoError(t, err)
	repo, err := domain.NewRepository("repo-edge", "repo/edge", "python", "", meta, []domain.Skill{skill}, []domain.Topic{topic})
	require.NoError(t, err)
	node, err := domain.NewLearningNode(repo)
	require.NoError(t, err)

	milestones := Group([]*domain.LearningNode{node})
	require.Len(t, milestones, 1)
	assert.Equal(t, PhaseFoundations, milestones[0].Phase)
}

// TestGroup_NoSkillEvidence_FallsBackToComplexity exercises assignPhase's
// complexity fallback through the public API: a repository with no
// primary skill carries no skill-level evidence at all, so phase
// assignment falls through to phaseByComplexity.
func TestGroup_NoSkillEvidence_FallsBackToComplexity(t *testing.T) {
	meta, err := domain.NewRepositoryMetadata(100, 1, nil, false, false, false, nil)
	require.NoError(t, err)
	repo, err := domain.NewRepository("repo-noskill", "repo/noskill", "go", "", meta, nil, nil)
	require.NoError(t, err)
	node, err := domain.NewLearningNode(repo)
	require.NoError(t, err)

	milestones := Group([]*domain.LearningNode{node})
	require.Len(t, milestones, 1)
	assert.Equal(t, phaseByComplexity(repo.ComplexityScore), milestones[0].Phase)
}

func TestPhaseByComplexity_Thresholds(t *testing.T) {
	assert.Equal(t, PhaseFoundations, phaseByComplexity(2.0))
	assert.Equal(t, PhaseCoreSkills, phaseByComplexity(4.0))
	assert.Equal(t, PhaseAdvancedSystems, phaseByComplexity(6.5))
	assert.Equal(t, PhaseSpecialized, phaseByComplexity(9.0))
}

func TestFlatten_ReturnsConcatenatedOriginalSequence(t *testing.T) {
	basic := nodeWithLevel(t, "repo/basic", domain.LevelBasic)
	expert := nodeWithLevel(t, "repo/expert", domain.LevelExpert)
	milestones := Group([]*domain.LearningNode{basic, expert})
	flat := Flatten(milestones)
	require.Len(t, flat, 2)
	assert.Equal(t, basic.NodeID, flat[0].NodeID)
	assert.Equal(t, expert.NodeID, flat[1].NodeID)
}
