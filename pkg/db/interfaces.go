package db

import (
	"context"

	"github.com/tovahealth/careshift/pkg/core/model"
)

// AvailabilityStore defines the interface for caregiver availability
// operations: per-date status records, the weekly recurring template, and
// reported unavailability windows.
type AvailabilityStore interface {
	// SetStatus upserts the availability record for (caregiverID, date).
	// At most one record exists per key; repeated identical writes are
	// idempotent.
	SetStatus(ctx context.Context, caregiverID, date string, status model.AvailabilityStatus, reason string) (*model.AvailabilityRecord, error)

	// GetStatus returns the stored status for the date, or StatusUnset when
	// no record exists.
	GetStatus(ctx context.Context, caregiverID, date string) (model.AvailabilityStatus, error)

	// GetRange returns a date -> status map for [startDate, endDate]
	// inclusive. Only dates with explicit records appear.
	GetRange(ctx context.Context, caregiverID, startDate, endDate string) (map[string]model.AvailabilityStatus, error)

	// GetWeeklyTemplate returns the caregiver's stored template, or the
	// documented default (09:00-17:00 Mon-Fri) when none is stored.
	GetWeeklyTemplate(ctx context.Context, caregiverID string) (model.WeeklyTemplate, error)

	// SetWeeklyTemplate replaces the caregiver's template wholesale.
	SetWeeklyTemplate(ctx context.Context, caregiverID string, template model.WeeklyTemplate) error

	// InsertUnavailability stores a new unavailability record.
	InsertUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error

	// GetUnavailability returns a record by id, or model.ErrNotFound.
	GetUnavailability(ctx context.Context, id string) (*model.UnavailabilityRecord, error)

	// UpdateUnavailability overwrites a record by id, or model.ErrNotFound.
	UpdateUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error
}

// ShiftStore defines the interface for shift record operations.
type ShiftStore interface {
	// Insert stores a new shift, assigning an id when absent, and returns
	// the stored shift.
	Insert(ctx context.Context, shift *model.Shift) (*model.Shift, error)

	// Update overwrites a shift by id. Returns model.ErrNotFound when no
	// shift with that id exists.
	Update(ctx context.Context, shift *model.Shift) error

	// GetByID returns a shift by id, or model.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Shift, error)

	// ListInRange returns shifts dated within [startDate, endDate]
	// inclusive, ordered by date then start time.
	ListInRange(ctx context.Context, startDate, endDate string) ([]model.Shift, error)

	// ListForCaregiver returns shifts assigned to the caregiver, optionally
	// bounded by dates (empty strings mean unbounded). Unknown caregiver ids
	// yield an empty result, not an error.
	ListForCaregiver(ctx context.Context, caregiverID, startDate, endDate string) ([]model.Shift, error)
}
