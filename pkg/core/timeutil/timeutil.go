package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat is returned when a time-of-day string is not a valid
// 24-hour "HH:MM" value.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

const minutesPerDay = 1440

// EndOfDay is the end-bound spelling for midnight at the close of a day.
const EndOfDay = "24:00"

// ToMinutes parses a 24-hour "HH:MM" string into minutes since midnight,
// in the range [0, 1440).
func ToMinutes(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	return hours*60 + minutes, nil
}

// ToEndMinutes parses an interval end bound: any "HH:MM" value, plus "24:00"
// meaning end of day (1440). Start bounds stay strict; only an end may name
// the closing midnight.
func ToEndMinutes(value string) (int, error) {
	if value == EndOfDay {
		return minutesPerDay, nil
	}
	return ToMinutes(value)
}

// FormatMinutes renders minutes-of-day as an "HH:MM" string. Values outside
// [0, 1440) are wrapped onto the 24-hour clock, so adding a duration past
// midnight produces the next day's clock time.
func FormatMinutes(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatEndMinutes renders an interval end bound, keeping exactly 1440
// readable as "24:00" instead of wrapping to "00:00". Other values format
// like FormatMinutes.
func FormatEndMinutes(minutes int) string {
	if minutes == minutesPerDay {
		return EndOfDay
	}
	return FormatMinutes(minutes)
}

// Overlaps reports whether the intervals [startA, endA) and [startB, endB)
// share any time of day. An interval whose end is numerically earlier than its
// start is an overnight interval wrapping past midnight; an end of "24:00"
// runs to the closing midnight without wrapping.
//
// Overnight handling, in order:
//  1. Both intervals overnight: always overlapping (both cross midnight).
//  2. Exactly one overnight: overlap if the plain interval starts before the
//     wrapping interval's post-midnight end, or the wrapping interval starts
//     before the plain interval's end.
//  3. Neither overnight: standard half-open interval overlap.
func Overlaps(startA, endA, startB, endB string) (bool, error) {
	sa, err := ToMinutes(startA)
	if err != nil {
		return false, err
	}
	ea, err := ToEndMinutes(endA)
	if err != nil {
		return false, err
	}
	sb, err := ToMinutes(startB)
	if err != nil {
		return false, err
	}
	eb, err := ToEndMinutes(endB)
	if err != nil {
		return false, err
	}

	overnightA := ea < sa
	overnightB := eb < sb

	switch {
	case overnightA && overnightB:
		return true, nil
	case overnightA:
		return sb < ea || sa < eb, nil
	case overnightB:
		return sa < eb || sb < ea, nil
	default:
		return sa < eb && sb < ea, nil
	}
}

// DurationMinutes returns the length of the interval from start to end in
// minutes, treating end < start as an overnight span crossing midnight and
// "24:00" as the closing midnight. The result is never negative.
func DurationMinutes(start, end string) (int, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToEndMinutes(end)
	if err != nil {
		return 0, err
	}

	if e >= s {
		return e - s, nil
	}
	return (minutesPerDay - s) + e, nil
}
