// Package coverage measures how well a date range is staffed. Covered time is
// the union of assigned shift intervals clipped to the daily coverage window,
// so overlapping assignments never double-count and a day's percentage can
// never exceed 100.
package coverage

import (
	"fmt"
	"math"
	"sort"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

const minutesPerDay = 1440

// Window is the portion of each day over which coverage is measured, in
// minutes since midnight. EndMinute may be 1440 to run through midnight.
type Window struct {
	StartMinute int
	EndMinute   int
}

// ParseWindow builds a Window from "HH:MM" bounds. "24:00" is accepted as the
// end bound meaning end of day.
func ParseWindow(start, end string) (Window, error) {
	startMinute, err := timeutil.ToMinutes(start)
	if err != nil {
		return Window{}, err
	}

	endMinute, err := timeutil.ToEndMinutes(end)
	if err != nil {
		return Window{}, err
	}

	if endMinute <= startMinute {
		return Window{}, fmt.Errorf("coverage window end %s must be after start %s", end, start)
	}
	return Window{StartMinute: startMinute, EndMinute: endMinute}, nil
}

// Minutes is the window's length.
func (w Window) Minutes() int {
	return w.EndMinute - w.StartMinute
}

// GapPolicy holds the classification thresholds for coverage gaps. These are
// policy inputs, not derived values: a gap is critical when it touches the
// high-need sub-window or runs at least CriticalMinutes long.
type GapPolicy struct {
	HighNeedStartMinute int
	HighNeedEndMinute   int
	CriticalMinutes     int
}

// ParseGapPolicy builds a GapPolicy from "HH:MM" high-need bounds ("24:00"
// accepted for the end) and a minimum critical duration in minutes.
func ParseGapPolicy(highNeedStart, highNeedEnd string, criticalMinutes int) (GapPolicy, error) {
	window, err := ParseWindow(highNeedStart, highNeedEnd)
	if err != nil {
		return GapPolicy{}, fmt.Errorf("invalid high-need window: %w", err)
	}
	if criticalMinutes <= 0 {
		return GapPolicy{}, fmt.Errorf("critical gap threshold must be positive, got %d", criticalMinutes)
	}
	return GapPolicy{
		HighNeedStartMinute: window.StartMinute,
		HighNeedEndMinute:   window.EndMinute,
		CriticalMinutes:     criticalMinutes,
	}, nil
}

// DayCoverage is one day's slice of a coverage report.
type DayCoverage struct {
	Date           string `json:"date"`
	CoveredMinutes int    `json:"covered_minutes"`
	Percentage     int    `json:"percentage"`
}

// Report is the combined output of coverage analysis and gap identification
// for a date range. Suggestions on gaps are filled in by the caller; this
// package has no access to availability data.
type Report struct {
	Metrics model.CoverageMetrics `json:"metrics"`
	Days    []DayCoverage         `json:"days"`
	Gaps    []model.CoverageGap   `json:"gaps"`
}

// Analyze computes coverage metrics, a per-day breakdown, and classified gaps
// for [startDate, endDate]. Only shifts with an assignee count as coverage.
// Overnight shifts credit their own date up to midnight and spill the
// remainder into the following date.
func Analyze(startDate, endDate string, window Window, policy GapPolicy, shifts []model.Shift) (*Report, error) {
	dates, err := timeutil.DatesInRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	segmentsByDate, err := assignedSegments(shifts, window)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	totalCovered := 0

	for _, date := range dates {
		covered := mergeSegments(segmentsByDate[date])

		coveredMinutes := 0
		for _, seg := range covered {
			coveredMinutes += seg.end - seg.start
		}
		totalCovered += coveredMinutes

		report.Days = append(report.Days, DayCoverage{
			Date:           date,
			CoveredMinutes: coveredMinutes,
			Percentage:     clampPercent(coveredMinutes, window.Minutes()),
		})

		report.Gaps = append(report.Gaps, gapsForDay(date, covered, window, policy)...)
	}

	totalMinutes := len(dates) * window.Minutes()
	criticalCount := 0
	for _, gap := range report.Gaps {
		if gap.Priority == model.GapCritical {
			criticalCount++
		}
	}

	report.Metrics = model.CoverageMetrics{
		TotalMinutes:       totalMinutes,
		CoveredMinutes:     totalCovered,
		CoveragePercentage: clampPercent(totalCovered, totalMinutes),
		GapsCount:          len(report.Gaps),
		CriticalGapsCount:  criticalCount,
	}
	return report, nil
}

type segment struct {
	start int
	end   int
}

// assignedSegments maps each date to the window-clipped intervals its
// assigned shifts contribute. An overnight shift contributes its pre-midnight
// part to its own date and its post-midnight part to the next date.
func assignedSegments(shifts []model.Shift, window Window) (map[string][]segment, error) {
	segments := make(map[string][]segment)

	for _, shift := range shifts {
		if !shift.IsAssigned() {
			continue
		}

		start, err := timeutil.ToMinutes(shift.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToEndMinutes(shift.EndTime)
		if err != nil {
			return nil, err
		}

		if end >= start {
			addClipped(segments, shift.Date, segment{start, end}, window)
			continue
		}

		addClipped(segments, shift.Date, segment{start, minutesPerDay}, window)

		date, err := timeutil.ParseDate(shift.Date)
		if err != nil {
			return nil, err
		}
		nextDate := date.AddDate(0, 0, 1).Format(timeutil.DateLayout)
		addClipped(segments, nextDate, segment{0, end}, window)
	}

	return segments, nil
}

func addClipped(segments map[string][]segment, date string, seg segment, window Window) {
	if seg.start < window.StartMinute {
		seg.start = window.StartMinute
	}
	if seg.end > window.EndMinute {
		seg.end = window.EndMinute
	}
	if seg.start >= seg.end {
		return
	}
	segments[date] = append(segments[date], seg)
}

// mergeSegments sorts segments and merges any that touch or overlap,
// producing the union as disjoint ascending intervals.
func mergeSegments(segments []segment) []segment {
	if len(segments) == 0 {
		return nil
	}

	sorted := make([]segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := []segment{sorted[0]}
	for _, seg := range sorted[1:] {
		last := &merged[len(merged)-1]
		if seg.start <= last.end {
			if seg.end > last.end {
				last.end = seg.end
			}
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// gapsForDay derives the uncovered complement of the coverage window and
// classifies each gap against the policy.
func gapsForDay(date string, covered []segment, window Window, policy GapPolicy) []model.CoverageGap {
	var gaps []model.CoverageGap

	cursor := window.StartMinute
	emit := func(start, end int) {
		if end <= start {
			return
		}
		gaps = append(gaps, model.CoverageGap{
			Date:      date,
			StartTime: timeutil.FormatMinutes(start),
			EndTime:   timeutil.FormatEndMinutes(end),
			Priority:  classify(start, end, policy),
		})
	}

	for _, seg := range covered {
		emit(cursor, seg.start)
		if seg.end > cursor {
			cursor = seg.end
		}
	}
	emit(cursor, window.EndMinute)

	return gaps
}

// classify marks a gap critical when it falls fully or partially within the
// high-need sub-window, or when it meets the minimum-duration threshold.
func classify(start, end int, policy GapPolicy) model.GapPriority {
	touchesHighNeed := start < policy.HighNeedEndMinute && policy.HighNeedStartMinute < end
	if touchesHighNeed || end-start >= policy.CriticalMinutes {
		return model.GapCritical
	}
	return model.GapModerate
}

func clampPercent(covered, total int) int {
	if total <= 0 {
		return 0
	}
	percent := int(math.Round(float64(covered) / float64(total) * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
