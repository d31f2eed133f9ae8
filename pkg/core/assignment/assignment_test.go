package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/kvstore"
)

func newStore(t *testing.T) *kvstore.ShiftStore {
	t.Helper()
	return kvstore.NewShiftStore(kvstore.NewMemoryKV())
}

func insert(t *testing.T, store *kvstore.ShiftStore, shift model.Shift) *model.Shift {
	t.Helper()
	stored, err := store.Insert(context.Background(), &shift)
	require.NoError(t, err)
	return stored
}

func TestIsAvailable_OverlapConflict(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "09:00", EndTime: "13:00",
		AssignedTo: "cg-x", Status: model.ShiftScheduled,
	})

	// 12:00-16:00 overlaps the held 09:00-13:00 shift at 12:00-13:00
	available, err := IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-10", StartTime: "12:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	assert.False(t, available)

	// A touching interval does not conflict (half-open boundary)
	available, err = IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-10", StartTime: "13:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	assert.True(t, available)

	// Another day is free
	available, err = IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-11", StartTime: "12:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_ExcludesShiftUnderTest(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	held := insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "09:00", EndTime: "13:00",
		AssignedTo: "cg-x", Status: model.ShiftScheduled,
	})

	// Re-checking the caregiver's own shift must not conflict with itself
	available, err := IsAvailable(ctx, store, "cg-x", *held)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailable_OvernightConflict(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "22:00", EndTime: "06:00",
		AssignedTo: "cg-x", Status: model.ShiftScheduled,
	})

	available, err := IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-10", StartTime: "05:00", EndTime: "07:00",
	})
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailable_ToMidnightShiftIsNotOvernight(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "16:00", EndTime: "24:00",
		AssignedTo: "cg-x", Status: model.ShiftScheduled,
	})

	// A shift ending at "24:00" stops at midnight; the caregiver's morning
	// stays free.
	available, err := IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-10", StartTime: "08:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	assert.True(t, available)

	// The evening itself is held
	available, err = IsAvailable(ctx, store, "cg-x", model.Shift{
		Date: "2024-01-10", StartTime: "23:00", EndTime: "23:30",
	})
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailable_MissingCaregiverID(t *testing.T) {
	store := newStore(t)

	_, err := IsAvailable(context.Background(), store, "", model.Shift{Date: "2024-01-10"})
	assert.ErrorIs(t, err, model.ErrMissingCaregiverID)
}

func TestAssign(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	shift := insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
	})
	require.Equal(t, model.ShiftOpen, shift.Status)

	assigned, err := Assign(ctx, store, shift.ID, "cg-1")
	require.NoError(t, err)
	assert.Equal(t, "cg-1", assigned.AssignedTo)
	assert.Equal(t, model.ShiftScheduled, assigned.Status)

	loaded, err := store.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, "cg-1", loaded.AssignedTo)
}

func TestAssign_PreservesNonOpenStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	shift := insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
		AssignedTo: "cg-1", Status: model.ShiftInProgress,
	})

	// Reassigning an in-progress shift keeps its status
	assigned, err := Assign(ctx, store, shift.ID, "cg-2")
	require.NoError(t, err)
	assert.Equal(t, "cg-2", assigned.AssignedTo)
	assert.Equal(t, model.ShiftInProgress, assigned.Status)
}

func TestAssign_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := Assign(context.Background(), store, "missing", "cg-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUnassign(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	shift := insert(t, store, model.Shift{
		Date: "2024-01-10", StartTime: "09:00", EndTime: "17:00",
		AssignedTo: "cg-1", Status: model.ShiftScheduled,
	})

	unassigned, err := Unassign(ctx, store, shift.ID)
	require.NoError(t, err)
	assert.Empty(t, unassigned.AssignedTo)
	assert.Equal(t, model.ShiftOpen, unassigned.Status)
}

func TestBulkAssign_PerItemResults(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	a := insert(t, store, model.Shift{Date: "2024-01-10", StartTime: "09:00", EndTime: "13:00"})
	b := insert(t, store, model.Shift{Date: "2024-01-11", StartTime: "09:00", EndTime: "13:00"})

	results := BulkAssign(ctx, store, []string{a.ID, "missing", b.ID}, "cg-1")
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, model.ErrNotFound)
	// A failure mid-list does not block later shifts
	assert.NoError(t, results[2].Err)

	loaded, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "cg-1", loaded.AssignedTo)
}
