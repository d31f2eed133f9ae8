// Package recurrence expands a shift template and recurrence pattern into
// concrete shift instances. Expansion is pure: it never touches storage and
// never deduplicates against existing shifts; the caller decides what to
// persist.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

// Template is the base shift a pattern expands from. The first emitted
// instance is dated exactly at Date.
type Template struct {
	Date            string
	StartTime       string
	DurationMinutes int
	AssignedTo      string
	Status          model.ShiftStatus
	Tasks           []string
}

// FromShift derives a template from an existing shift, computing the duration
// from its start and end times (overnight spans included).
func FromShift(shift model.Shift) (Template, error) {
	duration, err := timeutil.DurationMinutes(shift.StartTime, shift.EndTime)
	if err != nil {
		return Template{}, err
	}
	return Template{
		Date:            shift.Date,
		StartTime:       shift.StartTime,
		DurationMinutes: duration,
		AssignedTo:      shift.AssignedTo,
		Status:          shift.Status,
		Tasks:           shift.Tasks,
	}, nil
}

// ISO weekday numbers (1=Monday .. 7=Sunday) to rrule weekdays.
var isoWeekdays = map[int]rrule.Weekday{
	1: rrule.MO,
	2: rrule.TU,
	3: rrule.WE,
	4: rrule.TH,
	5: rrule.FR,
	6: rrule.SA,
	7: rrule.SU,
}

// Expand produces the ordered list of concrete shifts described by the
// template and pattern.
//
// Daily patterns emit Occurrences shifts spaced Interval days apart, the base
// date counting as the first occurrence. Weekly patterns always emit the base
// date first (whether or not its weekday is in WeekDays), then walk forward
// from the day after it, emitting on the listed weekdays until
// Occurrences x len(WeekDays) total instances exist.
func Expand(tmpl Template, pattern model.RecurrencePattern) ([]model.Shift, error) {
	if err := model.ValidateRecurrencePattern(&pattern); err != nil {
		return nil, err
	}
	baseDate, err := timeutil.ParseDate(tmpl.Date)
	if err != nil {
		return nil, err
	}
	startMinutes, err := timeutil.ToMinutes(tmpl.StartTime)
	if err != nil {
		return nil, err
	}
	if tmpl.DurationMinutes <= 0 {
		return nil, fmt.Errorf("template duration must be positive, got %d", tmpl.DurationMinutes)
	}

	var dates []time.Time
	switch pattern.Type {
	case model.RecurrenceDaily:
		dates, err = dailyDates(baseDate, pattern)
	case model.RecurrenceWeekly:
		dates, err = weeklyDates(baseDate, pattern)
	default:
		err = fmt.Errorf("unsupported recurrence type %q", pattern.Type)
	}
	if err != nil {
		return nil, err
	}

	endTime := timeutil.FormatEndMinutes(startMinutes + tmpl.DurationMinutes)
	patternCopy := pattern

	shifts := make([]model.Shift, len(dates))
	for i, date := range dates {
		shifts[i] = model.Shift{
			Date:       date.Format(timeutil.DateLayout),
			StartTime:  tmpl.StartTime,
			EndTime:    endTime,
			AssignedTo: tmpl.AssignedTo,
			Status:     tmpl.Status,
			Recurring:  true,
			Recurrence: &patternCopy,
			Tasks:      tmpl.Tasks,
		}
	}
	return shifts, nil
}

func dailyDates(base time.Time, pattern model.RecurrencePattern) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: pattern.Interval,
		Count:    pattern.Occurrences,
		Dtstart:  base,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build daily rule: %w", err)
	}
	return rule.All(), nil
}

func weeklyDates(base time.Time, pattern model.RecurrencePattern) ([]time.Time, error) {
	weekdays := make([]rrule.Weekday, 0, len(pattern.WeekDays))
	for _, day := range pattern.WeekDays {
		weekday, ok := isoWeekdays[day]
		if !ok {
			return nil, fmt.Errorf("weekday %d out of range [1,7]", day)
		}
		weekdays = append(weekdays, weekday)
	}

	total := pattern.Occurrences * len(pattern.WeekDays)

	// The base date is always the first instance; the rule fills in the rest
	// starting the day after it.
	dates := []time.Time{base}
	if total <= 1 {
		return dates, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  1,
		Byweekday: weekdays,
		Count:     total - 1,
		Dtstart:   base.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}
	return append(dates, rule.All()...), nil
}
