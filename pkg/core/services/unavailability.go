package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/internal/metrics"
	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
	"github.com/tovahealth/careshift/pkg/notify"
)

// UnavailabilityReport is a caller's request to mark a caregiver unavailable
// over a date range.
type UnavailabilityReport struct {
	CaregiverID        string
	StartDate          string
	EndDate            string
	Reason             string
	RequestReplacement bool
	NotifyTeam         bool
}

// ReportUnavailability records a caregiver's absence: it snapshots the
// assigned, non-completed shifts the range touches, writes an unavailable
// status for every date in the range, and notifies each coordinator when
// asked. The stored record is marked processed immediately when a replacement
// was requested, pending otherwise.
//
// The per-date status writes go straight to the store rather than through
// SetAvailabilityStatus: the shifts this absence conflicts with are already
// captured on the record, and one report should not fan out into a
// notification per date.
func ReportUnavailability(ctx context.Context, deps Deps, report UnavailabilityReport) (*model.UnavailabilityRecord, error) {
	record := &model.UnavailabilityRecord{
		ID:                 uuid.New().String(),
		CaregiverID:        report.CaregiverID,
		StartDate:          report.StartDate,
		EndDate:            report.EndDate,
		Reason:             report.Reason,
		RequestReplacement: report.RequestReplacement,
		NotifyTeam:         report.NotifyTeam,
		Status:             model.UnavailabilityPending,
		CreatedAt:          time.Now(),
	}
	if err := model.ValidateUnavailabilityRecord(record); err != nil {
		return nil, err
	}

	deps.Logger.Info("Reporting unavailability",
		zap.String("caregiver_id", report.CaregiverID),
		zap.String("start_date", report.StartDate),
		zap.String("end_date", report.EndDate))

	affected, err := assignedActiveShifts(ctx, deps, report.CaregiverID, report.StartDate, report.EndDate)
	if err != nil {
		return nil, err
	}
	record.AffectedShiftIDs = make([]string, len(affected))
	for i, shift := range affected {
		record.AffectedShiftIDs[i] = shift.ID
	}

	if report.RequestReplacement {
		record.Status = model.UnavailabilityProcessed
	}

	if err := deps.Availability.InsertUnavailability(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store unavailability record: %w", err)
	}

	dates, err := timeutil.DatesInRange(report.StartDate, report.EndDate)
	if err != nil {
		return nil, err
	}
	for _, date := range dates {
		if _, err := deps.Availability.SetStatus(ctx, report.CaregiverID, date, model.StatusUnavailable, report.Reason); err != nil {
			return nil, fmt.Errorf("failed to mark %s unavailable: %w", date, err)
		}
	}

	metrics.IncUnavailabilityReport()

	if report.NotifyTeam {
		name := caregiverName(deps, report.CaregiverID)
		for range deps.Roster.ListCoordinators() {
			emit(ctx, deps, notify.Notification{
				Type:     notify.TypeUnavailabilityReport,
				Title:    "Caregiver unavailable",
				Message:  fmt.Sprintf("%s is unavailable %s to %s (%d shift(s) affected)", name, report.StartDate, report.EndDate, len(record.AffectedShiftIDs)),
				Priority: notify.PriorityNormal,
			})
		}
	}

	deps.Logger.Info("Unavailability recorded",
		zap.String("record_id", record.ID),
		zap.String("status", string(record.Status)),
		zap.Int("affected_shifts", len(record.AffectedShiftIDs)))

	return record, nil
}

// ResolveUnavailability closes out a reported absence. The record moves to
// resolved and keeps its affected-shift snapshot for audit.
func ResolveUnavailability(ctx context.Context, deps Deps, recordID string) (*model.UnavailabilityRecord, error) {
	record, err := deps.Availability.GetUnavailability(ctx, recordID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.Status = model.UnavailabilityResolved
	record.ResolvedAt = &now

	if err := deps.Availability.UpdateUnavailability(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to resolve unavailability record: %w", err)
	}

	deps.Logger.Info("Unavailability resolved", zap.String("record_id", record.ID))
	return record, nil
}
