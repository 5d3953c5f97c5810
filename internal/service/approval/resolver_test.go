package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

func newTestResolver(users ...user.User) *StageResolver {
	store := policy.NewStore(policy.Default())
	return NewStageResolver(store, newMemUserRepo(users...))
}

func TestStageResolver_Resolve(t *testing.T) {
	t.Run("returns the immediate next level when staffed", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("tl-1", "Team Lead", "Billing"),
			testUser("sup-1", "Supervisor", "Billing"),
		)

		stage, err := resolver.Resolve(context.Background(), 1, "Billing")

		require.NoError(t, err)
		assert.Equal(t, 2, stage)
	})

	t.Run("skips levels with no eligible approver", func(t *testing.T) {
		// No Team Lead or Supervisor in Billing, so level 1 routes to the
		// department Manager at level 4.
		resolver := newTestResolver(
			testUser("mgr-1", "Manager", "Billing"),
		)

		stage, err := resolver.Resolve(context.Background(), 1, "Billing")

		require.NoError(t, err)
		assert.Equal(t, 4, stage)
	})

	t.Run("operational levels never match other departments", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("tl-it", "Team Lead", "IT"),
			testUser("hr-1", "HR Executive", "HR"),
		)

		stage, err := resolver.Resolve(context.Background(), 1, "Billing")

		require.NoError(t, err)
		// The IT team lead is invisible to Billing; the HR Executive at
		// level 5 is executive scope and matches regardless of department.
		assert.Equal(t, 5, stage)
	})

	t.Run("executive levels match organization-wide", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("dir-1", "Director", "Finance"),
		)

		stage, err := resolver.Resolve(context.Background(), 4, "Billing")

		require.NoError(t, err)
		assert.Equal(t, 7, stage)
	})

	t.Run("falls back to the CEO level in an empty directory", func(t *testing.T) {
		resolver := newTestResolver()

		stage, err := resolver.Resolve(context.Background(), 1, "Billing")

		require.NoError(t, err)
		assert.Equal(t, policy.MaxLevel, stage)
	})

	t.Run("inactive approvers do not hold a stage", func(t *testing.T) {
		inactive := testUser("tl-1", "Team Lead", "Billing")
		inactive.Status = user.StatusInactive

		resolver := newTestResolver(
			inactive,
			testUser("mgr-1", "Manager", "Billing"),
		)

		stage, err := resolver.Resolve(context.Background(), 1, "Billing")

		require.NoError(t, err)
		assert.Equal(t, 4, stage)
	})

	t.Run("resolving from the top level returns the backstop", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("ceo-1", "CEO", "HR"),
		)

		stage, err := resolver.Resolve(context.Background(), policy.MaxLevel, "HR")

		require.NoError(t, err)
		assert.Equal(t, policy.MaxLevel, stage)
	})
}

func TestStageResolver_PoolAt(t *testing.T) {
	t.Run("operational stage pool is department scoped", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("tl-billing", "Team Lead", "Billing"),
			testUser("tl-it", "Team Lead", "IT"),
		)

		pool, err := resolver.PoolAt(context.Background(), 2, "Billing")

		require.NoError(t, err)
		require.Len(t, pool, 1)
		assert.Equal(t, "tl-billing", pool[0].ID)
	})

	t.Run("executive stage pool spans departments", func(t *testing.T) {
		resolver := newTestResolver(
			testUser("hr-1", "HR Executive", "HR"),
			testUser("fin-1", "Finance Executive", "Finance"),
		)

		pool, err := resolver.PoolAt(context.Background(), 5, "Billing")

		require.NoError(t, err)
		assert.Len(t, pool, 2)
	})
}
