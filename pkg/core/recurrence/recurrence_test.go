package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tovahealth/careshift/pkg/core/model"
)

func TestExpand_Daily(t *testing.T) {
	shifts, err := Expand(Template{
		Date:            "2024-01-10",
		StartTime:       "09:00",
		DurationMinutes: 480,
		AssignedTo:      "cg-1",
		Status:          model.ShiftScheduled,
	}, model.RecurrencePattern{
		Type:        model.RecurrenceDaily,
		Interval:    2,
		Occurrences: 3,
	})
	require.NoError(t, err)
	require.Len(t, shifts, 3)

	// Base date counts as occurrence 1, then every Interval days
	assert.Equal(t, "2024-01-10", shifts[0].Date)
	assert.Equal(t, "2024-01-12", shifts[1].Date)
	assert.Equal(t, "2024-01-14", shifts[2].Date)

	for _, shift := range shifts {
		assert.Equal(t, "09:00", shift.StartTime)
		assert.Equal(t, "17:00", shift.EndTime)
		assert.Equal(t, "cg-1", shift.AssignedTo)
		assert.True(t, shift.Recurring)
		require.NotNil(t, shift.Recurrence)
	}
}

func TestExpand_WeeklyFromMonday(t *testing.T) {
	// 2024-01-01 is a Monday. Mon/Wed/Fri twice over should give exactly
	// 6 instances, sorted by date.
	shifts, err := Expand(Template{
		Date:            "2024-01-01",
		StartTime:       "08:00",
		DurationMinutes: 240,
	}, model.RecurrencePattern{
		Type:        model.RecurrenceWeekly,
		Interval:    1,
		WeekDays:    []int{1, 3, 5},
		Occurrences: 2,
	})
	require.NoError(t, err)
	require.Len(t, shifts, 6)

	expected := []string{
		"2024-01-01", // base Monday
		"2024-01-03", // Wednesday
		"2024-01-05", // Friday
		"2024-01-08", // Monday
		"2024-01-10", // Wednesday
		"2024-01-12", // Friday
	}
	for i, shift := range shifts {
		assert.Equal(t, expected[i], shift.Date, "instance %d", i)
		assert.Equal(t, "08:00", shift.StartTime)
		assert.Equal(t, "12:00", shift.EndTime)
	}
}

func TestExpand_WeeklyBaseNotInWeekDays(t *testing.T) {
	// 2024-01-02 is a Tuesday; the pattern only names Fridays. The base is
	// still emitted once as-is, then Fridays follow.
	shifts, err := Expand(Template{
		Date:            "2024-01-02",
		StartTime:       "10:00",
		DurationMinutes: 120,
	}, model.RecurrencePattern{
		Type:        model.RecurrenceWeekly,
		Interval:    1,
		WeekDays:    []int{5},
		Occurrences: 3,
	})
	require.NoError(t, err)
	require.Len(t, shifts, 3)

	assert.Equal(t, "2024-01-02", shifts[0].Date)
	assert.Equal(t, "2024-01-05", shifts[1].Date)
	assert.Equal(t, "2024-01-12", shifts[2].Date)
}

func TestExpand_OvernightEndTime(t *testing.T) {
	// A 10-hour shift starting at 22:00 wraps past midnight
	shifts, err := Expand(Template{
		Date:            "2024-01-10",
		StartTime:       "22:00",
		DurationMinutes: 600,
	}, model.RecurrencePattern{
		Type:        model.RecurrenceDaily,
		Interval:    1,
		Occurrences: 2,
	})
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	for _, shift := range shifts {
		assert.Equal(t, "22:00", shift.StartTime)
		assert.Equal(t, "08:00", shift.EndTime)
	}
}

func TestExpand_EndOfDayEndTime(t *testing.T) {
	// A shift landing exactly on midnight ends at "24:00", not "00:00"
	shifts, err := Expand(Template{
		Date:            "2024-01-10",
		StartTime:       "16:00",
		DurationMinutes: 480,
	}, model.RecurrencePattern{
		Type:        model.RecurrenceDaily,
		Interval:    1,
		Occurrences: 1,
	})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "24:00", shifts[0].EndTime)
}

func TestExpand_Pure(t *testing.T) {
	tmpl := Template{Date: "2024-01-01", StartTime: "09:00", DurationMinutes: 60}
	pattern := model.RecurrencePattern{
		Type:        model.RecurrenceWeekly,
		Interval:    1,
		WeekDays:    []int{1, 3, 5},
		Occurrences: 2,
	}

	first, err := Expand(tmpl, pattern)
	require.NoError(t, err)
	second, err := Expand(tmpl, pattern)
	require.NoError(t, err)

	// Re-invocation with the same inputs yields the same instances
	assert.Equal(t, first, second)
}

func TestExpand_InvalidInputs(t *testing.T) {
	valid := Template{Date: "2024-01-01", StartTime: "09:00", DurationMinutes: 60}

	_, err := Expand(valid, model.RecurrencePattern{
		Type:        model.RecurrenceWeekly,
		Interval:    1,
		Occurrences: 2,
	})
	assert.Error(t, err, "weekly pattern without weekdays")

	_, err = Expand(Template{Date: "2024-01-01", StartTime: "09:00"}, model.RecurrencePattern{
		Type:        model.RecurrenceDaily,
		Interval:    1,
		Occurrences: 2,
	})
	assert.Error(t, err, "non-positive duration")

	_, err = Expand(Template{Date: "bad", StartTime: "09:00", DurationMinutes: 60}, model.RecurrencePattern{
		Type:        model.RecurrenceDaily,
		Interval:    1,
		Occurrences: 2,
	})
	assert.Error(t, err, "malformed date")
}

func TestFromShift(t *testing.T) {
	tmpl, err := FromShift(model.Shift{
		Date:       "2024-01-10",
		StartTime:  "22:00",
		EndTime:    "06:00",
		AssignedTo: "cg-1",
		Status:     model.ShiftScheduled,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, tmpl.DurationMinutes)
	assert.Equal(t, "cg-1", tmpl.AssignedTo)
}
