package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tovahealth/careshift/pkg/core/model"
)

// SetStatus upserts the availability record for (caregiverID, date).
func (d *DB) SetStatus(ctx context.Context, caregiverID, date string, status model.AvailabilityStatus, reason string) (*model.AvailabilityRecord, error) {
	row := d.pool.QueryRow(ctx, `
		INSERT INTO date_availability (caregiver_id, availability_date, status, reason)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (caregiver_id, availability_date)
		DO UPDATE SET status = EXCLUDED.status, reason = EXCLUDED.reason, updated_at = NOW()
		RETURNING caregiver_id, availability_date::text, status, COALESCE(reason, ''), created_at, updated_at
	`, caregiverID, date, string(status), reason)

	record, err := scanAvailabilityRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert availability record: %w", err)
	}

	return record, nil
}

// GetStatus returns the stored status for the date, or StatusUnset when no
// record exists.
func (d *DB) GetStatus(ctx context.Context, caregiverID, date string) (model.AvailabilityStatus, error) {
	var status string
	err := d.pool.QueryRow(ctx, `
		SELECT status FROM date_availability
		WHERE caregiver_id = $1 AND availability_date = $2::date
	`, caregiverID, date).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.StatusUnset, nil
	}
	if err != nil {
		return model.StatusUnset, fmt.Errorf("failed to query availability status: %w", err)
	}

	return model.AvailabilityStatus(status), nil
}

// GetRange returns a date -> status map for [startDate, endDate] inclusive.
func (d *DB) GetRange(ctx context.Context, caregiverID, startDate, endDate string) (map[string]model.AvailabilityStatus, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT availability_date::text, status FROM date_availability
		WHERE caregiver_id = $1 AND availability_date BETWEEN $2::date AND $3::date
	`, caregiverID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability range: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]model.AvailabilityStatus)
	for rows.Next() {
		var date, status string
		if err := rows.Scan(&date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		statuses[date] = model.AvailabilityStatus(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability rows: %w", err)
	}

	return statuses, nil
}

// GetWeeklyTemplate returns the caregiver's stored template, or the default
// pattern when none is stored.
func (d *DB) GetWeeklyTemplate(ctx context.Context, caregiverID string) (model.WeeklyTemplate, error) {
	var raw []byte
	err := d.pool.QueryRow(ctx, `
		SELECT slots FROM weekly_availability WHERE caregiver_id = $1
	`, caregiverID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultWeeklyTemplate(), nil
	}
	if err != nil {
		return model.WeeklyTemplate{}, fmt.Errorf("failed to query weekly template: %w", err)
	}

	var slots map[int][]model.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return model.WeeklyTemplate{}, fmt.Errorf("failed to decode weekly template: %w", err)
	}

	return model.WeeklyTemplate{Slots: slots}, nil
}

// SetWeeklyTemplate replaces the caregiver's template wholesale.
func (d *DB) SetWeeklyTemplate(ctx context.Context, caregiverID string, template model.WeeklyTemplate) error {
	raw, err := json.Marshal(template.Slots)
	if err != nil {
		return fmt.Errorf("failed to encode weekly template: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO weekly_availability (caregiver_id, slots)
		VALUES ($1, $2)
		ON CONFLICT (caregiver_id) DO UPDATE SET slots = EXCLUDED.slots
	`, caregiverID, raw)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly template: %w", err)
	}

	return nil
}

// InsertUnavailability stores a new unavailability record.
func (d *DB) InsertUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error {
	shiftIDs, err := json.Marshal(record.AffectedShiftIDs)
	if err != nil {
		return fmt.Errorf("failed to encode affected shift ids: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO unavailability_record
			(id, caregiver_id, start_date, end_date, reason, request_replacement, notify_team, affected_shift_ids, status, created_at, resolved_at)
		VALUES ($1, $2, $3::date, $4::date, $5, $6, $7, $8, $9, $10, $11)
	`, record.ID, record.CaregiverID, record.StartDate, record.EndDate, record.Reason,
		record.RequestReplacement, record.NotifyTeam, shiftIDs, string(record.Status),
		record.CreatedAt, record.ResolvedAt)
	if err != nil {
		return fmt.Errorf("failed to insert unavailability record: %w", err)
	}

	return nil
}

// GetUnavailability returns a record by id, or model.ErrNotFound.
func (d *DB) GetUnavailability(ctx context.Context, id string) (*model.UnavailabilityRecord, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, caregiver_id, start_date::text, end_date::text, COALESCE(reason, ''),
			request_replacement, notify_team, affected_shift_ids, status, created_at, resolved_at
		FROM unavailability_record WHERE id = $1
	`, id)

	record, err := scanUnavailabilityRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query unavailability record: %w", err)
	}

	return record, nil
}

// UpdateUnavailability overwrites a record by id, or model.ErrNotFound.
func (d *DB) UpdateUnavailability(ctx context.Context, record *model.UnavailabilityRecord) error {
	shiftIDs, err := json.Marshal(record.AffectedShiftIDs)
	if err != nil {
		return fmt.Errorf("failed to encode affected shift ids: %w", err)
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE unavailability_record SET
			caregiver_id = $2, start_date = $3::date, end_date = $4::date, reason = $5,
			request_replacement = $6, notify_team = $7, affected_shift_ids = $8,
			status = $9, resolved_at = $10
		WHERE id = $1
	`, record.ID, record.CaregiverID, record.StartDate, record.EndDate, record.Reason,
		record.RequestReplacement, record.NotifyTeam, shiftIDs, string(record.Status),
		record.ResolvedAt)
	if err != nil {
		return fmt.Errorf("failed to update unavailability record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanAvailabilityRecord(row pgx.Row) (*model.AvailabilityRecord, error) {
	var record model.AvailabilityRecord
	var status string
	err := row.Scan(&record.CaregiverID, &record.Date, &status, &record.Reason,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.Status = model.AvailabilityStatus(status)
	return &record, nil
}

func scanUnavailabilityRecord(row pgx.Row) (*model.UnavailabilityRecord, error) {
	var record model.UnavailabilityRecord
	var status string
	var shiftIDs []byte
	var resolvedAt *time.Time
	err := row.Scan(&record.ID, &record.CaregiverID, &record.StartDate, &record.EndDate,
		&record.Reason, &record.RequestReplacement, &record.NotifyTeam, &shiftIDs,
		&status, &record.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	if shiftIDs != nil {
		if err := json.Unmarshal(shiftIDs, &record.AffectedShiftIDs); err != nil {
			return nil, fmt.Errorf("failed to decode affected shift ids: %w", err)
		}
	}
	record.Status = model.UnavailabilityStatus(status)
	record.ResolvedAt = resolvedAt
	return &record, nil
}
