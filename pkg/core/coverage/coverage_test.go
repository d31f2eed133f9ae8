package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

func defaultWindow(t *testing.T) Window {
	t.Helper()
	window, err := ParseWindow("08:00", "24:00")
	require.NoError(t, err)
	return window
}

func defaultPolicy(t *testing.T) GapPolicy {
	t.Helper()
	policy, err := ParseGapPolicy("18:00", "24:00", 240)
	require.NoError(t, err)
	return policy
}

func TestParseWindow(t *testing.T) {
	window, err := ParseWindow("08:00", "24:00")
	require.NoError(t, err)
	assert.Equal(t, 480, window.StartMinute)
	assert.Equal(t, 1440, window.EndMinute)
	assert.Equal(t, 960, window.Minutes())

	_, err = ParseWindow("17:00", "09:00")
	assert.Error(t, err)

	_, err = ParseWindow("8am", "17:00")
	assert.ErrorIs(t, err, timeutil.ErrInvalidTimeFormat)
}

func TestAnalyze_HalfCoveredDay(t *testing.T) {
	// One 08:00-16:00 shift inside a 16-hour window covers exactly half the
	// day, leaving a single 16:00-24:00 gap.
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "16:00", AssignedTo: "cg-x", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	assert.Equal(t, 960, report.Metrics.TotalMinutes)
	assert.Equal(t, 480, report.Metrics.CoveredMinutes)
	assert.Equal(t, 50, report.Metrics.CoveragePercentage)

	require.Len(t, report.Gaps, 1)
	gap := report.Gaps[0]
	assert.Equal(t, "2024-01-10", gap.Date)
	assert.Equal(t, "16:00", gap.StartTime)
	assert.Equal(t, "24:00", gap.EndTime)
}

func TestAnalyze_ShiftEndingAtMidnight(t *testing.T) {
	// A 16:00-24:00 shift runs to the closing midnight; it is neither
	// rejected nor treated as an overnight wrap.
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "16:00", EndTime: "24:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	assert.Equal(t, 480, report.Metrics.CoveredMinutes)
	assert.Equal(t, 50, report.Metrics.CoveragePercentage)

	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "08:00", report.Gaps[0].StartTime)
	assert.Equal(t, "16:00", report.Gaps[0].EndTime)
}

func TestAnalyze_UnassignedShiftsDoNotCount(t *testing.T) {
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "16:00", Status: model.ShiftOpen},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Metrics.CoveredMinutes)
	assert.Equal(t, 0, report.Metrics.CoveragePercentage)
}

func TestAnalyze_OverlappingShiftsDoNotDoubleCount(t *testing.T) {
	// Two caregivers over the same hours: the union, not the sum, counts,
	// so the percentage stays within [0, 100].
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "20:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
		{ID: "s-2", Date: "2024-01-10", StartTime: "08:00", EndTime: "20:00", AssignedTo: "cg-b", Status: model.ShiftScheduled},
		{ID: "s-3", Date: "2024-01-10", StartTime: "14:00", EndTime: "24:00", AssignedTo: "cg-c", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	assert.Equal(t, 960, report.Metrics.CoveredMinutes)
	assert.Equal(t, 100, report.Metrics.CoveragePercentage)
	assert.Empty(t, report.Gaps)

	require.Len(t, report.Days, 1)
	assert.Equal(t, 100, report.Days[0].Percentage)
}

func TestAnalyze_PerDayBreakdown(t *testing.T) {
	report, err := Analyze("2024-01-10", "2024-01-12", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "16:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
		{ID: "s-2", Date: "2024-01-12", StartTime: "08:00", EndTime: "24:00", AssignedTo: "cg-b", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	require.Len(t, report.Days, 3)
	assert.Equal(t, 50, report.Days[0].Percentage)
	assert.Equal(t, 0, report.Days[1].Percentage)
	assert.Equal(t, 100, report.Days[2].Percentage)

	assert.Equal(t, 2880, report.Metrics.TotalMinutes)
	assert.Equal(t, 1440, report.Metrics.CoveredMinutes)
	assert.Equal(t, 50, report.Metrics.CoveragePercentage)
}

func TestAnalyze_OvernightShiftSpillsIntoNextDay(t *testing.T) {
	// 20:00-04:00 covers 20:00-24:00 on its own date; the 00:00-04:00
	// remainder falls before the next day's window and contributes nothing.
	report, err := Analyze("2024-01-10", "2024-01-11", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "20:00", EndTime: "04:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	require.Len(t, report.Days, 2)
	assert.Equal(t, 240, report.Days[0].CoveredMinutes)
	assert.Equal(t, 0, report.Days[1].CoveredMinutes)
}

func TestAnalyze_GapClassification(t *testing.T) {
	window, err := ParseWindow("08:00", "24:00")
	require.NoError(t, err)
	policy, err := ParseGapPolicy("18:00", "24:00", 240)
	require.NoError(t, err)

	report, err := Analyze("2024-01-10", "2024-01-10", window, policy, []model.Shift{
		// Leaves a short midday gap (12:00-14:00) and an evening gap
		// (17:00-24:00) touching the high-need window.
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "12:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
		{ID: "s-2", Date: "2024-01-10", StartTime: "14:00", EndTime: "17:00", AssignedTo: "cg-b", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	require.Len(t, report.Gaps, 2)

	midday := report.Gaps[0]
	assert.Equal(t, "12:00", midday.StartTime)
	assert.Equal(t, "14:00", midday.EndTime)
	assert.Equal(t, model.GapModerate, midday.Priority)

	evening := report.Gaps[1]
	assert.Equal(t, "17:00", evening.StartTime)
	assert.Equal(t, "24:00", evening.EndTime)
	assert.Equal(t, model.GapCritical, evening.Priority)

	assert.Equal(t, 2, report.Metrics.GapsCount)
	assert.Equal(t, 1, report.Metrics.CriticalGapsCount)
}

func TestAnalyze_LongGapIsCriticalByDuration(t *testing.T) {
	window, err := ParseWindow("08:00", "16:00")
	require.NoError(t, err)
	// High-need window outside the coverage window; only duration triggers
	policy, err := ParseGapPolicy("20:00", "24:00", 240)
	require.NoError(t, err)

	report, err := Analyze("2024-01-10", "2024-01-10", window, policy, []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "10:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "10:00", report.Gaps[0].StartTime)
	assert.Equal(t, "16:00", report.Gaps[0].EndTime)
	assert.Equal(t, model.GapCritical, report.Gaps[0].Priority, "6h gap exceeds the 4h threshold")
}

func TestAnalyze_MergesAdjacentCoverage(t *testing.T) {
	// Back-to-back shifts leave no gap at the seam
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), []model.Shift{
		{ID: "s-1", Date: "2024-01-10", StartTime: "08:00", EndTime: "16:00", AssignedTo: "cg-a", Status: model.ShiftScheduled},
		{ID: "s-2", Date: "2024-01-10", StartTime: "16:00", EndTime: "24:00", AssignedTo: "cg-b", Status: model.ShiftScheduled},
	})
	require.NoError(t, err)

	assert.Empty(t, report.Gaps)
	assert.Equal(t, 100, report.Metrics.CoveragePercentage)
}

func TestAnalyze_EmptyDay(t *testing.T) {
	report, err := Analyze("2024-01-10", "2024-01-10", defaultWindow(t), defaultPolicy(t), nil)
	require.NoError(t, err)

	require.Len(t, report.Gaps, 1)
	assert.Equal(t, "08:00", report.Gaps[0].StartTime)
	assert.Equal(t, "24:00", report.Gaps[0].EndTime)
	assert.Equal(t, model.GapCritical, report.Gaps[0].Priority)
	assert.Equal(t, 0, report.Metrics.CoveragePercentage)
}

func TestAnalyze_InvalidRange(t *testing.T) {
	_, err := Analyze("2024-01-12", "2024-01-10", defaultWindow(t), defaultPolicy(t), nil)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDateRange)
}
