package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/internal/metrics"
	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/notify"
)

// SetAvailabilityStatus upserts a caregiver's status for one date. When the
// status is unavailable, the caregiver's assigned, non-completed shifts on
// that date are scanned and a single conflict notification is emitted if any
// exist. The upsert itself is idempotent for identical inputs.
func SetAvailabilityStatus(ctx context.Context, deps Deps, caregiverID, date string, status model.AvailabilityStatus, reason string) (*model.AvailabilityRecord, error) {
	deps.Logger.Info("Setting availability status",
		zap.String("caregiver_id", caregiverID),
		zap.String("date", date),
		zap.String("status", string(status)))

	record, err := deps.Availability.SetStatus(ctx, caregiverID, date, status, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to set availability status: %w", err)
	}
	metrics.IncStatusWrite(string(status))

	if status != model.StatusUnavailable {
		return record, nil
	}

	conflicted, err := assignedActiveShifts(ctx, deps, caregiverID, date, date)
	if err != nil {
		return nil, err
	}
	if len(conflicted) == 0 {
		return record, nil
	}

	deps.Logger.Warn("Caregiver marked unavailable with assigned shifts",
		zap.String("caregiver_id", caregiverID),
		zap.String("date", date),
		zap.Int("shift_count", len(conflicted)))

	emit(ctx, deps, notify.Notification{
		Type:     notify.TypeAvailabilityConflict,
		Title:    "Availability conflict",
		Message:  fmt.Sprintf("%s is unavailable on %s but has %d assigned shift(s) that day", caregiverName(deps, caregiverID), date, len(conflicted)),
		Priority: notify.PriorityHigh,
	})

	return record, nil
}

// GetAvailabilityRange returns the caregiver's explicit statuses over a date
// range, inclusive of both ends.
func GetAvailabilityRange(ctx context.Context, deps Deps, caregiverID, startDate, endDate string) (map[string]model.AvailabilityStatus, error) {
	if caregiverID == "" {
		return nil, model.ErrMissingCaregiverID
	}
	return deps.Availability.GetRange(ctx, caregiverID, startDate, endDate)
}

// assignedActiveShifts lists the caregiver's assigned shifts in the range
// whose status is not completed.
func assignedActiveShifts(ctx context.Context, deps Deps, caregiverID, startDate, endDate string) ([]model.Shift, error) {
	shifts, err := deps.Shifts.ListForCaregiver(ctx, caregiverID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for caregiver %s: %w", caregiverID, err)
	}

	active := make([]model.Shift, 0, len(shifts))
	for _, shift := range shifts {
		if shift.Status != model.ShiftCompleted {
			active = append(active, shift)
		}
	}
	return active, nil
}

// emit hands a notification to the sink, fire-and-forget.
func emit(ctx context.Context, deps Deps, notification notify.Notification) {
	deps.Notifier.Notify(ctx, notification)
	metrics.IncNotificationEmitted(notification.Type)
}
