package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
)

func repoWithSkillAndTopics(t *testing.T, path string, skillType domain.SkillType, level domain.SkillLevel, topics ...domain.Topic) *domain.Repository {
	t.Helper()
	meta, err := domain.NewRepositoryMetadata(1000, 10, nil, false, false, false, nil)
	require.NoError(t, err)
	skill, err := domain.NewSkill(skillType, level)
	require.NoError(t, err)
	name := strings.ReplaceAll(path, "/", "-")
	repo, err := domain.NewRepository(name, path, "go", "", meta, []domain.Skill{skill}, topics)
	require.NoError(t, err)
	return repo
}

func TestBuild_EmptyRepositories_ProducesEmptyPathNoWarnings(t *testing.T) {
	result, err := Build(BuildRequest{LearnerID: "learner-1", Name: "Path", MaxParallel: 1}, nil, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Empty(t, result.Path.Nodes)
	assert.Empty(t, result.Warnings)
}

func TestBuild_SingleRepository_YieldsOneNodeNoDependencies(t *testing.T) {
	repo := repoWithSkillAndTopics(t, "repo/a", domain.SkillBackend, domain.LevelBasic)
	result, err := Build(BuildRequest{
		LearnerID:    "learner-1",
		Name:         "Path",
		Repositories: []*domain.Repository{repo},
		MaxParallel:  1,
	}, nil, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, result.Path.Nodes, 1)
	assert.Empty(t, result.Path.Dependencies)
}

func TestBuild_TopicPrerequisite_InfersStrongPrerequisiteEdge(t *testing.T) {
	httpTopic, _ := domain.NewTopic("http", domain.CategoryConcept, domain.DifficultyMedium, nil)
	routingTopic, _ := domain.NewTopic("routing", domain.CategoryConcept, domain.DifficultyMedium, []string{"http"})

	repoA := repoWithSkillAndTopics(t, "repo/a", domain.SkillBackend, domain.LevelBasic, httpTopic)
	repoB := repoWithSkillAndTopics(t, "repo/b", domain.SkillBackend, domain.LevelBasic, routingTopic)

	result, err := Build(BuildRequest{
		LearnerID:    "learner-1",
		Name:         "Path",
		Repositories: []*domain.Repository{repoA, repoB},
		MaxParallel:  1,
	}, nil, time.Unix(0, 0))
	require.NoError(t, err)

	found := false
	for rel := range result.Path.Dependencies {
		if rel.Source == repoA.ID && rel.Target == repoB.ID {
			assert.Equal(t, domain.DependencyPrerequisite, rel.Type)
			assert.Equal(t, domain.StrengthStrong, rel.Strength)
			found = true
		}
	}
	assert.True(t, found, "expected a topic-prerequisite edge from A to B")

	nodeA := result.Path.NodeByRepositoryID(repoA.ID)
	nodeB := result.Path.NodeByRepositoryID(repoB.ID)
	assert.True(t, nodeB.PrerequisiteNodes[nodeA.NodeID])
}

func TestBuild_ExcludedRepositories_AreOmitted(t *testing.T) {
	repoA := repoWithSkillAndTopics(t, "repo/a", domain.SkillBackend, domain.LevelBasic)
	repoB := repoWithSkillAndTopics(t, "repo/b", domain.SkillBackend, domain.LevelAdvanced)

	result, err := Build(BuildRequest{
		LearnerID:    "learner-1",
		Name:         "Path",
		Repositories: []*domain.Repository{repoA, repoB},
		MaxParallel:  1,
		ExcludeIDs:   map[domain.ID]bool{repoB.ID: true},
	}, nil, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, result.Path.Nodes, 1)
	assert.Equal(t, repoA.ID, result.Path.Nodes[0].Repository.ID)
}

func TestBuild_PreSortsByNaturalLearningPriority(t *testing.T) {
	advanced := repoWithSkillAndTopics(t, "repo/advanced", domain.SkillBackend, domain.LevelAdvanced)
	basic := repoWithSkillAndTopics(t, "repo/basic", domain.SkillBackend, domain.LevelBasic)

	result, err := Build(BuildRequest{
		LearnerID:    "learner-1",
		Name:         "Path",
		Repositories: []*domain.Repository{advanced, basic},
		MaxParallel:  1,
	}, nil, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, result.Path.Nodes, 2)
	assert.Equal(t, basic.ID, result.Path.Nodes[0].Repository.ID)
	assert.Equal(t, advanced.ID, result.Path.Nodes[1].Repository.ID)
}
