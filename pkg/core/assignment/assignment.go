// Package assignment decides whether a caregiver can take a shift and applies
// assignment state transitions. Conflict detection is interval overlap against
// the caregiver's other shifts on the same date; availability records are a
// separate concern handled by the services layer.
package assignment

import (
	"context"
	"fmt"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
	"github.com/tovahealth/careshift/pkg/db"
)

// IsAvailable reports whether the caregiver is free to take the shift: true
// unless another shift already assigned to them on the same date overlaps it.
// The shift under test is excluded from the comparison by id.
func IsAvailable(ctx context.Context, shifts db.ShiftStore, caregiverID string, shift model.Shift) (bool, error) {
	if caregiverID == "" {
		return false, model.ErrMissingCaregiverID
	}

	existing, err := shifts.ListForCaregiver(ctx, caregiverID, shift.Date, shift.Date)
	if err != nil {
		return false, fmt.Errorf("failed to list shifts for caregiver %s: %w", caregiverID, err)
	}

	for _, other := range existing {
		if other.ID == shift.ID {
			continue
		}
		overlap, err := timeutil.Overlaps(shift.StartTime, shift.EndTime, other.StartTime, other.EndTime)
		if err != nil {
			return false, err
		}
		if overlap {
			return false, nil
		}
	}
	return true, nil
}

// Assign sets the shift's assignee and moves it from open to scheduled.
// It does not enforce availability; callers check IsAvailable first.
func Assign(ctx context.Context, shifts db.ShiftStore, shiftID, caregiverID string) (*model.Shift, error) {
	if caregiverID == "" {
		return nil, model.ErrMissingCaregiverID
	}

	shift, err := shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	shift.AssignedTo = caregiverID
	if shift.Status == model.ShiftOpen {
		shift.Status = model.ShiftScheduled
	}

	if err := shifts.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Unassign clears the shift's assignee and reopens it.
func Unassign(ctx context.Context, shifts db.ShiftStore, shiftID string) (*model.Shift, error) {
	shift, err := shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	shift.AssignedTo = ""
	shift.Status = model.ShiftOpen

	if err := shifts.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Result is the per-shift outcome of a bulk assignment.
type Result struct {
	ShiftID string
	Shift   *model.Shift
	Err     error
}

// BulkAssign assigns every listed shift to the caregiver. Each shift is
// updated independently; one failure does not block the others, and the
// caller receives a result per shift rather than a single boolean.
func BulkAssign(ctx context.Context, shifts db.ShiftStore, shiftIDs []string, caregiverID string) []Result {
	results := make([]Result, 0, len(shiftIDs))
	for _, id := range shiftIDs {
		shift, err := Assign(ctx, shifts, id, caregiverID)
		results = append(results, Result{ShiftID: id, Shift: shift, Err: err})
	}
	return results
}
