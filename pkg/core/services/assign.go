package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/internal/metrics"
	"github.com/tovahealth/careshift/pkg/core/assignment"
	"github.com/tovahealth/careshift/pkg/core/model"
)

// AssignShift assigns a shift to a caregiver. Unless force is set, the
// caregiver's other shifts on the date are checked first and the assignment
// is refused with ErrSchedulingConflict on overlap.
func AssignShift(ctx context.Context, deps Deps, shiftID, caregiverID string, force bool) (*model.Shift, error) {
	if !force {
		shift, err := deps.Shifts.GetByID(ctx, shiftID)
		if err != nil {
			return nil, err
		}

		available, err := assignment.IsAvailable(ctx, deps.Shifts, caregiverID, *shift)
		if err != nil {
			return nil, err
		}
		if !available {
			metrics.IncShiftAssignment("conflict")
			return nil, fmt.Errorf("%w: caregiver %s on %s", ErrSchedulingConflict, caregiverID, shift.Date)
		}
	}

	assigned, err := assignment.Assign(ctx, deps.Shifts, shiftID, caregiverID)
	if err != nil {
		metrics.IncShiftAssignment("error")
		return nil, err
	}
	metrics.IncShiftAssignment("assigned")

	deps.Logger.Info("Shift assigned",
		zap.String("shift_id", shiftID),
		zap.String("caregiver_id", caregiverID),
		zap.String("date", assigned.Date))

	return assigned, nil
}

// UnassignShift clears a shift's assignee and reopens it.
func UnassignShift(ctx context.Context, deps Deps, shiftID string) (*model.Shift, error) {
	shift, err := assignment.Unassign(ctx, deps.Shifts, shiftID)
	if err != nil {
		return nil, err
	}

	deps.Logger.Info("Shift unassigned",
		zap.String("shift_id", shiftID),
		zap.String("date", shift.Date))

	return shift, nil
}

// BulkAssignShifts assigns every listed shift to one caregiver. Each shift is
// applied independently with no rollback; the caller gets a result per shift.
func BulkAssignShifts(ctx context.Context, deps Deps, shiftIDs []string, caregiverID string) []assignment.Result {
	results := assignment.BulkAssign(ctx, deps.Shifts, shiftIDs, caregiverID)

	succeeded := 0
	for _, result := range results {
		if result.Err == nil {
			succeeded++
			metrics.IncShiftAssignment("assigned")
		} else {
			metrics.IncShiftAssignment("error")
		}
	}

	deps.Logger.Info("Bulk assignment applied",
		zap.String("caregiver_id", caregiverID),
		zap.Int("requested", len(shiftIDs)),
		zap.Int("succeeded", succeeded))

	return results
}

// CheckAvailability reports whether the caregiver could take the shift
// without an interval conflict.
func CheckAvailability(ctx context.Context, deps Deps, caregiverID, shiftID string) (bool, error) {
	shift, err := deps.Shifts.GetByID(ctx, shiftID)
	if err != nil {
		return false, err
	}
	return assignment.IsAvailable(ctx, deps.Shifts, caregiverID, *shift)
}
