package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnership(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	t.Run("global records are visible but immutable", func(t *testing.T) {
		assert.True(t, CanView(nil, other))
		assert.False(t, CanMutate(nil, other))
	})

	t.Run("owner can view and mutate", func(t *testing.T) {
		assert.True(t, CanView(&owner, owner))
		assert.True(t, CanMutate(&owner, owner))
	})

	t.Run("non-owner can do neither", func(t *testing.T) {
		assert.False(t, CanView(&owner, other))
		assert.False(t, CanMutate(&owner, other))
	})
}
