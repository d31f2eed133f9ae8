package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the engine.
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned when a date string is not a valid
// "YYYY-MM-DD" value.
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// ErrInvalidDateRange is returned when a range's end date precedes its start.
var ErrInvalidDateRange = errors.New("end date is before start date")

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}
	return t, nil
}

// DatesInRange returns every date from startDate to endDate inclusive,
// formatted as "YYYY-MM-DD" in ascending order.
func DatesInRange(startDate, endDate string) ([]string, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange, startDate, endDate)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// InRange reports whether date falls within [startDate, endDate], all three
// being "YYYY-MM-DD" strings. Lexicographic comparison is safe for this
// layout.
func InRange(date, startDate, endDate string) bool {
	return date >= startDate && date <= endDate
}
