package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
	"github.com/tovahealth/careshift/pkg/db"
)

// Storage keys. Each key holds one JSON document that is read, modified, and
// written back whole on every operation.
const (
	keyDateAvailability      = "date_availability"
	keyWeeklyAvailability    = "weekly_availability"
	keyUnavailabilityRecords = "unavailability_records"
	keyCurrentStatus         = "current_availability_status"
)

// AvailabilityStore implements db.AvailabilityStore over a db.KV port.
type AvailabilityStore struct {
	kv  db.KV
	now func() time.Time
}

// NewAvailabilityStore creates an availability store backed by the given KV.
func NewAvailabilityStore(kv db.KV) *AvailabilityStore {
	return &AvailabilityStore{kv: kv, now: time.Now}
}

func (s *AvailabilityStore) loadRecords(ctx context.Context) ([]model.AvailabilityRecord, error) {
	raw, ok, err := s.kv.Get(ctx, keyDateAvailability)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability records: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var records []model.AvailabilityRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode availability records: %w", err)
	}
	return records, nil
}

func (s *AvailabilityStore) saveRecords(ctx context.Context, records []model.AvailabilityRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode availability records: %w", err)
	}
	if err := s.kv.Save(ctx, keyDateAvailability, raw); err != nil {
		return fmt.Errorf("failed to save availability records: %w", err)
	}
	return nil
}

// SetStatus upserts the availability record for (caregiverID, date) and
// mirrors the caregiver's most recent status into the current-status map.
func (s *AvailabilityStore) SetStatus(ctx context.Context, caregiverID, date string, status model.AvailabilityStatus, reason string) (*model.AvailabilityRecord, error) {
	record := model.AvailabilityRecord{
		CaregiverID: caregiverID,
		Date:        date,
		Status:      status,
		Reason:      reason,
	}
	if err := model.ValidateAvailabilityRecord(&record); err != nil {
		return nil, err
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated := false
	for i := range records {
		if records[i].CaregiverID == caregiverID && records[i].Date == date {
			records[i].Status = status
			records[i].Reason = reason
			records[i].UpdatedAt = now
			record = records[i]
			updated = true
			break
		}
	}
	if !updated {
		record.CreatedAt = now
		record.UpdatedAt = now
		records = append(records, record)
	}

	if err := s.saveRecords(ctx, records); err != nil {
		return nil, err
	}

	if err := s.updateCurrentStatus(ctx, caregiverID, status); err != nil {
		return nil, err
	}

	return &record, nil
}

// updateCurrentStatus tracks the status most recently written per caregiver.
func (s *AvailabilityStore) updateCurrentStatus(ctx context.Context, caregiverID string, status model.AvailabilityStatus) error {
	raw, ok, err := s.kv.Get(ctx, keyCurrentStatus)
	if err != nil {
		return fmt.Errorf("failed to load current status map: %w", err)
	}

	current := make(map[string]model.AvailabilityStatus)
	if ok {
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("failed to decode current status map: %w", err)
		}
	}

	current[caregiverID] = status

	encoded, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode current status map: %w", err)
	}
	if err := s.kv.Save(ctx, keyCurrentStatus, encoded); err != nil {
		return fmt.Errorf("failed to save current status map: %w", err)
	}
	return nil
}

// GetStatus returns the stored status for the date, or StatusUnset when no
// record exists.
func (s *AvailabilityStore) GetStatus(ctx context.Context, caregiverID, date string) (model.AvailabilityStatus, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return model.StatusUnset, err
	}

	for _, record := range records {
		if record.CaregiverID == caregiverID && record.Date == date {
			return record.Status, nil
		}
	}
	return model.StatusUnset, nil
}

// GetRange returns a date -> status map for [startDate, endDate] inclusive.
func (s *AvailabilityStore) GetRange(ctx context.Context, caregiverID, startDate, endDate string) (map[string]model.AvailabilityStatus, error) {
	if _, err := timeutil.ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := timeutil.ParseDate(endDate); err != nil {
		return nil, err
	}
	if endDate < startDate {
		return nil, fmt.Errorf("%w: %s > %s", timeutil.ErrInvalidDateRange, startDate, endDate)
	}

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]model.AvailabilityStatus)
	for _, record := range records {
		if record.CaregiverID == caregiverID && timeutil.InRange(record.Date, startDate, endDate) {
			statuses[record.Date] = record.Status
		}
	}
	return statuses, nil
}

// GetWeeklyTemplate returns the caregiver's stored template, falling back to
// the documented default when none is stored.
func (s *AvailabilityStore) GetWeeklyTemplate(ctx context.Context, caregiverID string) (model.WeeklyTemplate, error) {
	raw, ok, err := s.kv.Get(ctx, keyWeeklyAvailability)
	if err != nil {
		return model.WeeklyTemplate{}, fmt.Errorf("failed to load weekly templates: %w", err)
	}
	if !ok {
		return model.DefaultWeeklyTemplate(), nil
	}

	templates := make(map[string]model.WeeklyTemplate)
	if err := json.Unmarshal(raw, &templates); err != nil {
		return model.WeeklyTemplate{}, fmt.Errorf("failed to decode weekly templates: %w", err)
	}

	template, ok := templates[caregiverID]
	if !ok {
		return model.DefaultWeeklyTemplate(), nil
	}
	return template, nil
}

// SetWeeklyTemplate replaces the caregiver's template wholesale, no merge.
func (s *AvailabilityStore) SetWeeklyTemplate(ctx context.Context, caregiverID string, template model.WeeklyTemplate) error {
	if caregiverID == "" {
		return model.ErrMissingCaregiverID
	}
	if err := model.ValidateWeeklyTemplate(&template); err != nil {
		return err
	}

	raw, ok, err := s.kv.Get(ctx, keyWeeklyAvailability)
	if err != nil {
		return fmt.Errorf("failed to load weekly templates: %w", err)
	}

	templates := make(map[string]model.WeeklyTemplate)
	if ok {
		if err := json.Unmarshal(raw, &templates); err != nil {
			return fmt.Errorf("failed to decode weekly templates: %w", err)
		}
	}

	templates[caregiverID] = template

	encoded, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("failed to encode weekly templates: %w", err)
	}
	if err := s.kv.Save(ctx, keyWeeklyAvailability, encoded); err != nil {
		return fmt.Errorf("failed to save weekly templates: %w", err)
	}
	return nil
}

func (s *AvailabilityStore) loadUnavailability(ctx context.Context) ([]model.UnavailabilityRecord, error) {
	raw, ok, err := s.kv.Get(ctx, keyUnavailabilityRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability records: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var records []model.UnavailabilityRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode unavailability records: %w", err)
	}
	return records, nil
}

func (s *AvailabilityStore) saveUnavailability(ctx context.Context, records []model.UnavailabilityRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode unavailability records: %w", err)
	}
	if err := s.kv.Save(ctx, keyUnavailabilityRecords, raw); err != nil {
		return fmt.Errorf("failed to save unavailability records: %w", err)
	}
	return nil
}

// InsertUnavailability stores a new unavailability record.
func (s *AvailabilityStore) InsertUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error {
	if err := model.ValidateUnavailabilityRecord(record); err != nil {
		return err
	}

	records, err := s.loadUnavailability(ctx)
	if err != nil {
		return err
	}

	records = append(records, *record)
	return s.saveUnavailability(ctx, records)
}

// GetUnavailability returns a record by id, or model.ErrNotFound.
func (s *AvailabilityStore) GetUnavailability(ctx context.Context, id string) (*model.UnavailabilityRecord, error) {
	records, err := s.loadUnavailability(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("unavailability record %q: %w", id, model.ErrNotFound)
}

// UpdateUnavailability overwrites a record by id.
func (s *AvailabilityStore) UpdateUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error {
	if err := model.ValidateUnavailabilityRecord(record); err != nil {
		return err
	}

	records, err := s.loadUnavailability(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == record.ID {
			records[i] = *record
			return s.saveUnavailability(ctx, records)
		}
	}
	return fmt.Errorf("unavailability record %q: %w", record.ID, model.ErrNotFound)
}
