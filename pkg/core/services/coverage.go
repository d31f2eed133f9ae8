package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/coverage"
	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

// CoverageReport analyzes staffing over a date range and attaches replacement
// suggestions to every gap it finds. Shifts from the day before the range are
// fetched too, so an overnight shift spilling into the first day is counted.
func CoverageReport(ctx context.Context, deps Deps, startDate, endDate string, window coverage.Window, policy coverage.GapPolicy) (*coverage.Report, error) {
	start, err := timeutil.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	fetchFrom := start.AddDate(0, 0, -1).Format(timeutil.DateLayout)

	shifts, err := deps.Shifts.ListInRange(ctx, fetchFrom, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	report, err := coverage.Analyze(startDate, endDate, window, policy, shifts)
	if err != nil {
		return nil, err
	}

	for i := range report.Gaps {
		suggested, err := suggestCaregivers(ctx, deps, report.Gaps[i])
		if err != nil {
			return nil, err
		}
		report.Gaps[i].SuggestedCaregivers = suggested
	}

	deps.Logger.Info("Coverage analyzed",
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("coverage_percentage", report.Metrics.CoveragePercentage),
		zap.Int("gaps", report.Metrics.GapsCount),
		zap.Int("critical_gaps", report.Metrics.CriticalGapsCount))

	return report, nil
}

// suggestCaregivers ranks replacement candidates for a gap: caregivers whose
// explicit status for the date is available come first, tentative ones after,
// both in roster order. Anyone holding an assigned shift overlapping the gap
// is excluded.
func suggestCaregivers(ctx context.Context, deps Deps, gap model.CoverageGap) ([]string, error) {
	var available, tentative []string
	for _, caregiver := range deps.Roster.ListCaregivers() {
		status, err := deps.Availability.GetStatus(ctx, caregiver.ID, gap.Date)
		if err != nil {
			return nil, err
		}
		if status != model.StatusAvailable && status != model.StatusTentative {
			continue
		}

		busy, err := hasOverlappingShift(ctx, deps, caregiver.ID, gap.Date, gap.StartTime, gap.EndTime)
		if err != nil {
			return nil, err
		}
		if busy {
			continue
		}

		if status == model.StatusAvailable {
			available = append(available, caregiver.ID)
		} else {
			tentative = append(tentative, caregiver.ID)
		}
	}

	return append(available, tentative...), nil
}

func hasOverlappingShift(ctx context.Context, deps Deps, caregiverID, date, start, end string) (bool, error) {
	shifts, err := deps.Shifts.ListForCaregiver(ctx, caregiverID, date, date)
	if err != nil {
		return false, err
	}

	for _, shift := range shifts {
		overlap, err := timeutil.Overlaps(start, end, shift.StartTime, shift.EndTime)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}
