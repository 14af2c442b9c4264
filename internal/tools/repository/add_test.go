package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiet-ta/learning-path-repo/internal/store"
	"github.com/kiet-ta/learning-path-repo/internal/tools/repository"
)

func TestAdd_Execute_SavesRepository(t *testing.T) {
	repos := store.NewRepositoryStore()
	tool := repository.NewAdd(repos)

	params, err := json.Marshal(map[string]any{
		"name":             "repo-new",
		"path":             "repo/new",
		"primary_language": "Go",
		"skills": []map[string]any{
			{"type": "backend", "level": "intermediate"},
		},
	})
	require.NoError(t, err)

	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	all, err := repos.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "repo/new", all[0].Path)
}

func TestAdd_Execute_NoSkillsSucceedsWithoutPrimarySkill(t *testing.T) {
	repos := store.NewRepositoryStore()
	tool := repository.NewAdd(repos)

	params, err := json.Marshal(map[string]any{
		"name":             "repo-bare",
		"path":             "repo/bare",
		"primary_language": "Go",
		"skills":           []map[string]any{},
	})
	require.NoError(t, err)

	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	all, err := repos.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].PrimarySkill)
}

func TestAdd_Execute_InvalidLanguageIsToolError(t *testing.T) {
	repos := store.NewRepositoryStore()
	tool := repository.NewAdd(repos)

	params, err := json.Marshal(map[string]any{
		"name":             "repo-bad",
		"path":             "repo/bad",
		"primary_language": "not-a-real-language",
	})
	require.NoError(t, err)

	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	all, err := repos.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdd_Name(t *testing.T) {
	tool := repository.NewAdd(store.NewRepositoryStore())
	assert.Equal(t, "repository_add", tool.Name())
}
