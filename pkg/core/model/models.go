package model

import "time"

// Role classifies a caregiver within the care team.
type Role string

const (
	RoleCaregiver   Role = "caregiver"
	RoleCoordinator Role = "coordinator"
)

func (r Role) IsValid() bool {
	return r == RoleCaregiver || r == RoleCoordinator
}

// Caregiver represents a member of the care team. The roster is managed
// externally; the scheduling engine only references caregivers by ID.
type Caregiver struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	Role Role   `yaml:"role" validate:"required"`
}

// AvailabilityStatus is a caregiver's declared status for a single date.
// StatusUnset is never stored; it is the absence of a record.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusTentative   AvailabilityStatus = "tentative"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusUnset       AvailabilityStatus = "unset"
)

// IsStorable reports whether the status may be written to the store.
// StatusUnset is represented by deleting or never creating a record.
func (s AvailabilityStatus) IsStorable() bool {
	return s == StatusAvailable || s == StatusTentative || s == StatusUnavailable
}

// AvailabilityRecord is a caregiver's explicit status for one date.
// At most one record exists per (caregiver, date); writes upsert.
type AvailabilityRecord struct {
	CaregiverID string             `json:"caregiver_id" validate:"required"`
	Date        string             `json:"date" validate:"required"`
	Status      AvailabilityStatus `json:"status" validate:"required"`
	Reason      string             `json:"reason,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TimeSlot is a start/end pair of "HH:MM" times within one day.
type TimeSlot struct {
	Start string `json:"start" yaml:"start" validate:"required"`
	End   string `json:"end" yaml:"end" validate:"required"`
}

// WeeklyTemplate maps a weekday (0=Sunday .. 6=Saturday) to the ordered time
// slots a caregiver typically works. The template is advisory default data;
// date-level AvailabilityRecords always take precedence.
type WeeklyTemplate struct {
	Slots map[int][]TimeSlot `json:"slots"`
}

// DefaultWeeklyTemplate returns the documented fallback pattern:
// 09:00-17:00 Monday through Friday, no weekend slots.
func DefaultWeeklyTemplate() WeeklyTemplate {
	slots := make(map[int][]TimeSlot)
	for day := 1; day <= 5; day++ {
		slots[day] = []TimeSlot{{Start: "09:00", End: "17:00"}}
	}
	return WeeklyTemplate{Slots: slots}
}

// UnavailabilityStatus tracks the lifecycle of a reported absence.
type UnavailabilityStatus string

const (
	UnavailabilityPending   UnavailabilityStatus = "pending"
	UnavailabilityProcessed UnavailabilityStatus = "processed"
	UnavailabilityResolved  UnavailabilityStatus = "resolved"
)

// UnavailabilityRecord captures a caregiver's reported absence over a date
// range, along with the shifts it touched at the time of the report.
type UnavailabilityRecord struct {
	ID                 string               `json:"id"`
	CaregiverID        string               `json:"caregiver_id" validate:"required"`
	StartDate          string               `json:"start_date" validate:"required"`
	EndDate            string               `json:"end_date" validate:"required"`
	Reason             string               `json:"reason,omitempty"`
	RequestReplacement bool                 `json:"request_replacement"`
	NotifyTeam         bool                 `json:"notify_team"`
	AffectedShiftIDs   []string             `json:"affected_shift_ids"`
	Status             UnavailabilityStatus `json:"status"`
	CreatedAt          time.Time            `json:"created_at"`
	ResolvedAt         *time.Time           `json:"resolved_at,omitempty"`
}

// ShiftStatus tracks a shift through its lifecycle.
type ShiftStatus string

const (
	ShiftOpen       ShiftStatus = "open"
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
)

// Shift is a single concrete unit of care. An EndTime numerically earlier
// than StartTime denotes an overnight shift wrapping past midnight; that is a
// first-class case, not an error.
type Shift struct {
	ID         string             `json:"id"`
	Date       string             `json:"date" validate:"required"`
	StartTime  string             `json:"start_time" validate:"required"`
	EndTime    string             `json:"end_time" validate:"required"`
	AssignedTo string             `json:"assigned_to,omitempty"`
	Status     ShiftStatus        `json:"status"`
	Recurring  bool               `json:"recurring"`
	Recurrence *RecurrencePattern `json:"recurrence,omitempty"`
	Tasks      []string           `json:"tasks,omitempty"`
}

// IsAssigned reports whether the shift has a caregiver attached.
func (s Shift) IsAssigned() bool {
	return s.AssignedTo != ""
}

// RecurrenceType selects the expansion rule for a recurrence pattern.
type RecurrenceType string

const (
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
)

// RecurrencePattern describes how a shift template expands into concrete
// instances. WeekDays uses ISO numbering (1=Monday .. 7=Sunday) and is only
// consulted for weekly patterns.
type RecurrencePattern struct {
	Type        RecurrenceType `json:"type" validate:"required,oneof=daily weekly"`
	Interval    int            `json:"interval" validate:"required,min=1"`
	WeekDays    []int          `json:"week_days,omitempty" validate:"dive,min=1,max=7"`
	Occurrences int            `json:"occurrences" validate:"required,min=1"`
}

// CoverageMetrics summarises how well a date range is staffed. Derived data,
// never persisted.
type CoverageMetrics struct {
	TotalMinutes       int `json:"total_minutes"`
	CoveredMinutes     int `json:"covered_minutes"`
	CoveragePercentage int `json:"coverage_percentage"`
	GapsCount          int `json:"gaps_count"`
	CriticalGapsCount  int `json:"critical_gaps_count"`
}

// GapPriority classifies how urgently a coverage gap needs filling.
type GapPriority string

const (
	GapModerate GapPriority = "moderate"
	GapCritical GapPriority = "critical"
)

// CoverageGap is a contiguous uncovered sub-interval of one day's coverage
// window, with replacement suggestions ranked available-before-tentative.
type CoverageGap struct {
	Date                string      `json:"date"`
	StartTime           string      `json:"start_time"`
	EndTime             string      `json:"end_time"`
	Priority            GapPriority `json:"priority"`
	SuggestedCaregivers []string    `json:"suggested_caregivers,omitempty"`
}
