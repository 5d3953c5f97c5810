package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyLevels(t *testing.T) {
	h := Default().Hierarchy

	level, ok := h.LevelOf("Manager")
	require.True(t, ok)
	assert.Equal(t, 4, level)

	_, ok = h.LevelOf("Intern")
	assert.False(t, ok)

	assert.Equal(t, []string{"Finance Executive", "HR Executive"}, h.RolesAt(5))
	assert.Empty(t, h.RolesAt(10))
}

func TestIsOperational(t *testing.T) {
	assert.True(t, IsOperational(1))
	assert.True(t, IsOperational(OperationalCeiling))
	assert.False(t, IsOperational(OperationalCeiling+1))
	assert.False(t, IsOperational(MaxLevel))
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore(Default())

	snap := store.Snapshot()
	snap.LeaveQuotas["Casual"] = 99
	snap.Hierarchy["Employee"] = 5

	fresh := store.Snapshot()
	assert.Equal(t, 10, fresh.LeaveQuotas["Casual"])
	assert.Equal(t, 1, fresh.Hierarchy["Employee"])
}

func TestUpdateQuotas(t *testing.T) {
	t.Run("merges editable quotas", func(t *testing.T) {
		store := NewStore(Default())

		err := store.UpdateQuotas(map[string]int{"Casual": 12, "Emergency": 3})
		require.NoError(t, err)

		quotas := store.Snapshot().LeaveQuotas
		assert.Equal(t, 12, quotas["Casual"])
		assert.Equal(t, 3, quotas["Emergency"])
		assert.Equal(t, 10, quotas["Medical"])
	})

	t.Run("rejects changing a fixed quota", func(t *testing.T) {
		store := NewStore(Default())

		err := store.UpdateQuotas(map[string]int{"Maternity": 60})
		require.Error(t, err)
		assert.Equal(t, 90, store.Snapshot().LeaveQuotas["Maternity"])
	})

	t.Run("accepts fixed quota at its fixed value", func(t *testing.T) {
		store := NewStore(Default())
		assert.NoError(t, store.UpdateQuotas(map[string]int{"Paternity": 10}))
	})

	t.Run("rejects negative quota", func(t *testing.T) {
		store := NewStore(Default())
		assert.Error(t, store.UpdateQuotas(map[string]int{"Casual": -1}))
	})
}

func TestDepartmentManagement(t *testing.T) {
	store := NewStore(Default())
	base := len(store.Snapshot().Departments)

	store.AddDepartment("Compliance")
	assert.Len(t, store.Snapshot().Departments, base+1)

	// Adding twice is a no-op.
	store.AddDepartment("Compliance")
	assert.Len(t, store.Snapshot().Departments, base+1)

	store.RemoveDepartment("Compliance")
	assert.NotContains(t, store.Snapshot().Departments, "Compliance")
	assert.Len(t, store.Snapshot().Departments, base)
}

func TestUpdateShifts(t *testing.T) {
	store := NewStore(Default())

	store.UpdateShifts(map[string]Shift{
		"Night": {Start: "22:00", End: "07:00"},
	})

	shifts := store.Snapshot().Shifts
	require.Len(t, shifts, 1)
	assert.Equal(t, "22:00", shifts["Night"].Start)
}
