package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositoryMetadata_RejectsNegativeLinesOfCode(t *testing.T) {
	_, err := NewRepositoryMetadata(-1, 0, nil, false, false, false, nil)
	require.Error(t, err)
}

func TestNewRepositoryMetadata_RejectsNegativeFileCount(t *testing.T) {
	_, err := NewRepositoryMetadata(0, -1, nil, false, false, false, nil)
	require.Error(t, err)
}

func TestNewRepositoryMetadata_CopiesSliceAndMap(t *testing.T) {
	deps := []string{"react"}
	dist := map[string]int{"typescript": 90}
	m, err := NewRepositoryMetadata(100, 5, deps, true, true, false, dist)
	require.NoError(t, err)

	deps[0] = "mutated"
	dist["typescript"] = 0
	assert.Equal(t, "react", m.Dependencies[0])
	assert.Equal(t, 90, m.LanguageDistribution["typescript"])
}

func TestRepositoryMetadata_DependencyCount(t *testing.T) {
	m, err := NewRepositoryMetadata(100, 5, []string{"react", "redux"}, false, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.DependencyCount())
}

func TestRepositoryMetadata_IsLargeAndMediumCodebase(t *testing.T) {
	small, _ := NewRepositoryMetadata(500, 5, nil, false, false, false, nil)
	assert.False(t, small.IsLargeCodebase())
	assert.False(t, small.IsMediumCodebase())

	medium, _ := NewRepositoryMetadata(5_000, 5, nil, false, false, false, nil)
	assert.False(t, medium.IsLargeCodebase())
	assert.True(t, medium.IsMediumCodebase())

	large, _ := NewRepositoryMetadata(20_000, 5, nil, false, false, false, nil)
	assert.True(t, large.IsLargeCodebase())
	assert.False(t, large.IsMediumCodebase())
}

func TestRepositoryMetadata_UpdateFromAnalysis_OnlyTouchesProvidedFields(t *testing.T) {
	m, err := NewRepositoryMetadata(100, 5, []string{"react"}, false, false, false, nil)
	require.NoError(t, err)

	loc := 2000
	hasTests := true
	updated := m.UpdateFromAnalysis(AnalysisUpdate{LinesOfCode: &loc, HasTests: &hasTests})

	assert.Equal(t, 2000, updated.LinesOfCode)
	assert.True(t, updated.HasTests)
	assert.Equal(t, m.FileCount, updated.FileCount)
	assert.Equal(t, m.Dependencies, updated.Dependencies)

	assert.Equal(t, 100, m.LinesOfCode, "original value must not mutate")
}
