package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is_ComparesKindOnly(t *testing.T) {
	a := NewValidationError("field", "bad")
	b := NewValidationError("other", "also bad")
	assert.True(t, errors.Is(a, b))

	c := NewNotFoundError("repository", "abc")
	assert.False(t, errors.Is(a, c))
}

func TestError_LogFields_IncludesVariantPayload(t *testing.T) {
	err := NewCircularDependencyError([]string{"a", "b", "a"})
	fields := err.LogFields()
	assert.Contains(t, fields, "affected_nodes")
}

func TestNewNotFoundError_MessageIncludesIdentifier(t *testing.T) {
	err := NewNotFoundError("repository", "repo-123")
	assert.Contains(t, err.Error(), "repo-123")
	assert.Equal(t, KindNotFound, err.Kind)
}

func TestNewDuplicateError_MessageIncludesIdentifier(t *testing.T) {
	err := NewDuplicateError("topic", "routing")
	assert.Contains(t, err.Error(), "routing")
	assert.Equal(t, KindDuplicate, err.Kind)
}
