package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

func validShift() *Shift {
	return &Shift{
		ID:        "shift-1",
		Date:      "2024-01-10",
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    ShiftOpen,
	}
}

func TestValidateShift(t *testing.T) {
	require.NoError(t, ValidateShift(validShift()))

	// Overnight shifts are first-class, not an error
	overnight := validShift()
	overnight.StartTime = "22:00"
	overnight.EndTime = "06:00"
	require.NoError(t, ValidateShift(overnight))

	// "24:00" ends a shift at the closing midnight
	toMidnight := validShift()
	toMidnight.StartTime = "16:00"
	toMidnight.EndTime = "24:00"
	require.NoError(t, ValidateShift(toMidnight))
}

func TestValidateShift_Invalid(t *testing.T) {
	badDate := validShift()
	badDate.Date = "10/01/2024"
	assert.ErrorIs(t, ValidateShift(badDate), timeutil.ErrInvalidDateFormat)

	badTime := validShift()
	badTime.StartTime = "9am"
	assert.ErrorIs(t, ValidateShift(badTime), timeutil.ErrInvalidTimeFormat)

	badStatus := validShift()
	badStatus.Status = "cancelled"
	assert.ErrorIs(t, ValidateShift(badStatus), ErrInvalidStatus)

	// End-of-day is an end bound only
	badStart := validShift()
	badStart.StartTime = "24:00"
	assert.ErrorIs(t, ValidateShift(badStart), timeutil.ErrInvalidTimeFormat)
}

func TestValidateRecurrencePattern(t *testing.T) {
	require.NoError(t, ValidateRecurrencePattern(&RecurrencePattern{
		Type:        RecurrenceWeekly,
		Interval:    1,
		WeekDays:    []int{1, 3, 5},
		Occurrences: 2,
	}))

	assert.Error(t, ValidateRecurrencePattern(&RecurrencePattern{
		Type:        RecurrenceWeekly,
		Interval:    1,
		Occurrences: 2,
	}), "weekly pattern without weekdays should fail")

	assert.Error(t, ValidateRecurrencePattern(&RecurrencePattern{
		Type:        RecurrenceDaily,
		Interval:    0,
		Occurrences: 3,
	}), "zero interval should fail")

	assert.Error(t, ValidateRecurrencePattern(&RecurrencePattern{
		Type:        "monthly",
		Interval:    1,
		Occurrences: 3,
	}), "unknown recurrence type should fail")
}

func TestValidateAvailabilityRecord(t *testing.T) {
	require.NoError(t, ValidateAvailabilityRecord(&AvailabilityRecord{
		CaregiverID: "cg-1",
		Date:        "2024-01-10",
		Status:      StatusAvailable,
	}))

	assert.ErrorIs(t, ValidateAvailabilityRecord(&AvailabilityRecord{
		Date:   "2024-01-10",
		Status: StatusAvailable,
	}), ErrMissingCaregiverID)

	// Unset is the absence of a record, never a stored value
	assert.ErrorIs(t, ValidateAvailabilityRecord(&AvailabilityRecord{
		CaregiverID: "cg-1",
		Date:        "2024-01-10",
		Status:      StatusUnset,
	}), ErrInvalidStatus)
}

func TestValidateUnavailabilityRecord(t *testing.T) {
	require.NoError(t, ValidateUnavailabilityRecord(&UnavailabilityRecord{
		CaregiverID: "cg-1",
		StartDate:   "2024-01-10",
		EndDate:     "2024-01-12",
	}))

	assert.ErrorIs(t, ValidateUnavailabilityRecord(&UnavailabilityRecord{
		CaregiverID: "cg-1",
		StartDate:   "2024-01-12",
		EndDate:     "2024-01-10",
	}), timeutil.ErrInvalidDateRange)
}

func TestValidateWeeklyTemplate(t *testing.T) {
	tmpl := DefaultWeeklyTemplate()
	require.NoError(t, ValidateWeeklyTemplate(&tmpl))

	assert.Error(t, ValidateWeeklyTemplate(&WeeklyTemplate{
		Slots: map[int][]TimeSlot{7: {{Start: "09:00", End: "17:00"}}},
	}))

	assert.ErrorIs(t, ValidateWeeklyTemplate(&WeeklyTemplate{
		Slots: map[int][]TimeSlot{1: {{Start: "late", End: "17:00"}}},
	}), timeutil.ErrInvalidTimeFormat)
}

func TestDefaultWeeklyTemplate(t *testing.T) {
	tmpl := DefaultWeeklyTemplate()

	for day := 1; day <= 5; day++ {
		require.Len(t, tmpl.Slots[day], 1)
		assert.Equal(t, TimeSlot{Start: "09:00", End: "17:00"}, tmpl.Slots[day][0])
	}
	assert.Empty(t, tmpl.Slots[0], "Sunday should have no default slots")
	assert.Empty(t, tmpl.Slots[6], "Saturday should have no default slots")
}
