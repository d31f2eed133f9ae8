package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateShift checks a shift's schema: required fields present, date and
// times well-formed, status within its enum, and any recurrence pattern
// internally consistent. Overnight shifts (end < start) are valid, as is an
// end time of "24:00" for a shift running to the closing midnight.
func ValidateShift(shift *Shift) error {
	if err := validate.Struct(shift); err != nil {
		return fmt.Errorf("shift validation failed: %w", err)
	}

	if _, err := timeutil.ParseDate(shift.Date); err != nil {
		return err
	}
	if _, err := timeutil.ToMinutes(shift.StartTime); err != nil {
		return err
	}
	if _, err := timeutil.ToEndMinutes(shift.EndTime); err != nil {
		return err
	}

	switch shift.Status {
	case ShiftOpen, ShiftScheduled, ShiftInProgress, ShiftCompleted:
	default:
		return fmt.Errorf("%w: shift status %q", ErrInvalidStatus, shift.Status)
	}

	if shift.Recurrence != nil {
		if err := ValidateRecurrencePattern(shift.Recurrence); err != nil {
			return err
		}
	}

	return nil
}

// ValidateRecurrencePattern checks a pattern's schema. Weekly patterns must
// name at least one weekday.
func ValidateRecurrencePattern(pattern *RecurrencePattern) error {
	if err := validate.Struct(pattern); err != nil {
		return fmt.Errorf("recurrence pattern validation failed: %w", err)
	}

	if pattern.Type == RecurrenceWeekly && len(pattern.WeekDays) == 0 {
		return fmt.Errorf("weekly recurrence pattern requires at least one weekday")
	}

	return nil
}

// ValidateAvailabilityRecord checks a record's schema. StatusUnset is
// rejected: absence of a record represents "unset", it is never stored.
func ValidateAvailabilityRecord(record *AvailabilityRecord) error {
	if record.CaregiverID == "" {
		return ErrMissingCaregiverID
	}
	if _, err := timeutil.ParseDate(record.Date); err != nil {
		return err
	}
	if !record.Status.IsStorable() {
		return fmt.Errorf("%w: availability status %q", ErrInvalidStatus, record.Status)
	}
	return nil
}

// ValidateUnavailabilityRecord checks a report's schema and the
// startDate <= endDate invariant.
func ValidateUnavailabilityRecord(record *UnavailabilityRecord) error {
	if record.CaregiverID == "" {
		return ErrMissingCaregiverID
	}
	if _, err := timeutil.ParseDate(record.StartDate); err != nil {
		return err
	}
	if _, err := timeutil.ParseDate(record.EndDate); err != nil {
		return err
	}
	if record.EndDate < record.StartDate {
		return fmt.Errorf("%w: %s > %s", timeutil.ErrInvalidDateRange, record.StartDate, record.EndDate)
	}
	return nil
}

// ValidateWeeklyTemplate checks every slot in a template: weekday keys within
// 0-6 and slot times well-formed.
func ValidateWeeklyTemplate(template *WeeklyTemplate) error {
	for day, slots := range template.Slots {
		if day < 0 || day > 6 {
			return fmt.Errorf("weekly template weekday %d out of range [0,6]", day)
		}
		for _, slot := range slots {
			if _, err := timeutil.ToMinutes(slot.Start); err != nil {
				return err
			}
			if _, err := timeutil.ToEndMinutes(slot.End); err != nil {
				return err
			}
		}
	}
	return nil
}
