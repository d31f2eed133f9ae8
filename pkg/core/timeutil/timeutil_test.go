package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestToMinutes_Invalid(t *testing.T) {
	invalid := []string{"", "9:00", "09:0", "24:00", "12:60", "ab:cd", "12-30", "12:30:00"}

	for _, input := range invalid {
		_, err := ToMinutes(input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "23:59", FormatMinutes(1439))

	// Past-midnight values wrap onto the next day's clock
	assert.Equal(t, "00:00", FormatMinutes(1440))
	assert.Equal(t, "02:00", FormatMinutes(1560))
}

func TestOverlaps_PlainIntervals(t *testing.T) {
	overlap, err := Overlaps("09:00", "13:00", "12:00", "16:00")
	require.NoError(t, err)
	assert.True(t, overlap)

	// Half-open boundary: touching intervals do not overlap
	overlap, err = Overlaps("09:00", "17:00", "17:00", "18:00")
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = Overlaps("08:00", "10:00", "11:00", "12:00")
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestOverlaps_Overnight(t *testing.T) {
	// Overnight shift 22:00-06:00 covers the early morning
	overlap, err := Overlaps("22:00", "06:00", "05:00", "07:00")
	require.NoError(t, err)
	assert.True(t, overlap)

	// Overnight shift reaches into the late evening as well
	overlap, err = Overlaps("22:00", "06:00", "21:00", "23:00")
	require.NoError(t, err)
	assert.True(t, overlap)

	// A midday interval misses an overnight interval entirely
	overlap, err = Overlaps("22:00", "06:00", "10:00", "12:00")
	require.NoError(t, err)
	assert.False(t, overlap)

	// Two overnight intervals always overlap
	overlap, err = Overlaps("22:00", "04:00", "23:00", "05:00")
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestOverlaps_Symmetric(t *testing.T) {
	intervals := [][2]string{
		{"09:00", "17:00"},
		{"17:00", "18:00"},
		{"22:00", "06:00"},
		{"05:00", "07:00"},
		{"23:00", "05:00"},
		{"00:00", "23:59"},
		{"16:00", "24:00"},
	}

	for _, a := range intervals {
		for _, b := range intervals {
			ab, err := Overlaps(a[0], a[1], b[0], b[1])
			require.NoError(t, err)
			ba, err := Overlaps(b[0], b[1], a[0], a[1])
			require.NoError(t, err)
			assert.Equal(t, ab, ba, "overlaps(%v, %v) not symmetric", a, b)
		}
	}
}

func TestOverlaps_EndOfDay(t *testing.T) {
	// A shift running to the closing midnight is not an overnight wrap
	overlap, err := Overlaps("22:00", "24:00", "08:00", "12:00")
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = Overlaps("16:00", "24:00", "23:00", "23:30")
	require.NoError(t, err)
	assert.True(t, overlap)

	// Half-open boundary holds at midnight too
	overlap, err = Overlaps("16:00", "24:00", "00:00", "06:00")
	require.NoError(t, err)
	assert.False(t, overlap)

	// An overnight interval reaches back into a to-midnight one
	overlap, err = Overlaps("16:00", "24:00", "23:00", "05:00")
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestOverlaps_InvalidInput(t *testing.T) {
	_, err := Overlaps("9am", "17:00", "09:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestDurationMinutes(t *testing.T) {
	d, err := DurationMinutes("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 480, d)

	// Overnight span has the same length
	d, err = DurationMinutes("22:00", "06:00")
	require.NoError(t, err)
	assert.Equal(t, 480, d)

	d, err = DurationMinutes("10:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	// "24:00" ends the interval at the closing midnight
	d, err = DurationMinutes("16:00", "24:00")
	require.NoError(t, err)
	assert.Equal(t, 480, d)
}

func TestToEndMinutes(t *testing.T) {
	m, err := ToEndMinutes("24:00")
	require.NoError(t, err)
	assert.Equal(t, 1440, m)

	m, err = ToEndMinutes("17:30")
	require.NoError(t, err)
	assert.Equal(t, 1050, m)

	// Only the exact end-of-day spelling is special
	_, err = ToEndMinutes("24:01")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	// Start bounds stay strict
	_, err = ToMinutes("24:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestFormatEndMinutes(t *testing.T) {
	assert.Equal(t, "24:00", FormatEndMinutes(1440))
	assert.Equal(t, "17:30", FormatEndMinutes(1050))
	assert.Equal(t, "01:00", FormatEndMinutes(1500))
}

func TestDatesInRange(t *testing.T) {
	dates, err := DatesInRange("2024-01-30", "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)

	// Single-day range is inclusive of both ends
	dates, err = DatesInRange("2024-01-10", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-10"}, dates)
}

func TestDatesInRange_Invalid(t *testing.T) {
	_, err := DatesInRange("2024-01-10", "2024-01-09")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = DatesInRange("10/01/2024", "2024-01-12")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("2024-01-10", "2024-01-01", "2024-01-31"))
	assert.True(t, InRange("2024-01-01", "2024-01-01", "2024-01-31"))
	assert.True(t, InRange("2024-01-31", "2024-01-01", "2024-01-31"))
	assert.False(t, InRange("2024-02-01", "2024-01-01", "2024-01-31"))
}
