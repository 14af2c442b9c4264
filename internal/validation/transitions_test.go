package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/validation"
)

func TestRegistry_AllowsLegalTransitions(t *testing.T) {
	r := validation.NewRegistry()
	cases := []struct {
		from, to domain.NodeStatus
	}{
		{domain.StatusNotStarted, domain.StatusInProgress},
		{domain.StatusNotStarted, domain.StatusSkipped},
		{domain.StatusNotStarted, domain.StatusAvailable},
		{domain.StatusAvailable, domain.StatusInProgress},
		{domain.StatusInProgress, domain.StatusCompleted},
		{domain.StatusInProgress, domain.StatusSkipped},
		{domain.StatusBlocked, domain.StatusAvailable},
		{domain.StatusCompleted, domain.StatusNotStarted},
		{domain.StatusSkipped, domain.StatusNotStarted},
	}
	for _, c := range cases {
		assert.NoError(t, r.Validate(c.from, c.to), "%s -> %s should be legal", c.from, c.to)
	}
}

func TestRegistry_RejectsIllegalTransitions(t *testing.T) {
	r := validation.NewRegistry()
	cases := []struct {
		from, to domain.NodeStatus
	}{
		{domain.StatusCompleted, domain.StatusInProgress},
		{domain.StatusSkipped, domain.StatusInProgress},
		{domain.StatusInProgress, domain.StatusNotStarted},
	}
	for _, c := range cases {
		err := r.Validate(c.from, c.to)
		assert.Error(t, err, "%s -> %s should be illegal", c.from, c.to)
		assert.True(t, errors.Is(err, validation.ErrInvalidTransition))
	}
}

func TestRegistry_SameStateIsRejected(t *testing.T) {
	r := validation.NewRegistry()
	err := r.Validate(domain.StatusInProgress, domain.StatusInProgress)
	assert.ErrorIs(t, err, validation.ErrAlreadyInState)
}
