package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
	"github.com/tovahealth/careshift/pkg/db"
)

const keyShifts = "shifts"

// ShiftStore implements db.ShiftStore over a db.KV port. The whole shift
// collection lives under one key and is rewritten on every mutation.
type ShiftStore struct {
	kv db.KV
}

// NewShiftStore creates a shift store backed by the given KV.
func NewShiftStore(kv db.KV) *ShiftStore {
	return &ShiftStore{kv: kv}
}

func (s *ShiftStore) load(ctx context.Context) ([]model.Shift, error) {
	raw, ok, err := s.kv.Get(ctx, keyShifts)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var shifts []model.Shift
	if err := json.Unmarshal(raw, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}

func (s *ShiftStore) save(ctx context.Context, shifts []model.Shift) error {
	raw, err := json.Marshal(shifts)
	if err != nil {
		return fmt.Errorf("failed to encode shifts: %w", err)
	}
	if err := s.kv.Save(ctx, keyShifts, raw); err != nil {
		return fmt.Errorf("failed to save shifts: %w", err)
	}
	return nil
}

// Insert stores a new shift, assigning a fresh id when absent.
func (s *ShiftStore) Insert(ctx context.Context, shift *model.Shift) (*model.Shift, error) {
	stored := *shift
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	if stored.Status == "" {
		stored.Status = model.ShiftOpen
	}
	if err := model.ValidateShift(&stored); err != nil {
		return nil, err
	}

	shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	shifts = append(shifts, stored)
	if err := s.save(ctx, shifts); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update overwrites a shift by id.
func (s *ShiftStore) Update(ctx context.Context, shift *model.Shift) error {
	if err := model.ValidateShift(shift); err != nil {
		return err
	}

	shifts, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range shifts {
		if shifts[i].ID == shift.ID {
			shifts[i] = *shift
			return s.save(ctx, shifts)
		}
	}
	return fmt.Errorf("shift %q: %w", shift.ID, model.ErrNotFound)
}

// GetByID returns a shift by id, or model.ErrNotFound.
func (s *ShiftStore) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range shifts {
		if shifts[i].ID == id {
			return &shifts[i], nil
		}
	}
	return nil, fmt.Errorf("shift %q: %w", id, model.ErrNotFound)
}

// ListInRange returns shifts dated within [startDate, endDate] inclusive,
// ordered by date then start time.
func (s *ShiftStore) ListInRange(ctx context.Context, startDate, endDate string) ([]model.Shift, error) {
	if _, err := timeutil.ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := timeutil.ParseDate(endDate); err != nil {
		return nil, err
	}
	if endDate < startDate {
		return nil, fmt.Errorf("%w: %s > %s", timeutil.ErrInvalidDateRange, startDate, endDate)
	}

	shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Shift, 0)
	for _, shift := range shifts {
		if timeutil.InRange(shift.Date, startDate, endDate) {
			matched = append(matched, shift)
		}
	}
	sortShifts(matched)
	return matched, nil
}

// ListForCaregiver returns shifts assigned to the caregiver, optionally
// bounded by dates. Unknown ids yield an empty result.
func (s *ShiftStore) ListForCaregiver(ctx context.Context, caregiverID, startDate, endDate string) ([]model.Shift, error) {
	shifts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Shift, 0)
	for _, shift := range shifts {
		if shift.AssignedTo != caregiverID {
			continue
		}
		if startDate != "" && shift.Date < startDate {
			continue
		}
		if endDate != "" && shift.Date > endDate {
			continue
		}
		matched = append(matched, shift)
	}
	sortShifts(matched)
	return matched, nil
}

func sortShifts(shifts []model.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})
}
