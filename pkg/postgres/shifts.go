package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tovahealth/careshift/pkg/core/model"
)

const shiftColumns = `id, shift_date::text, start_time, end_time, COALESCE(assigned_to, ''), status, recurring, recurrence, tasks`

// Insert stores a new shift, assigning an id when absent.
func (d *DB) Insert(ctx context.Context, shift *model.Shift) (*model.Shift, error) {
	stored := *shift
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = model.ShiftOpen
	}

	recurrence, tasks, err := encodeShiftJSON(&stored)
	if err != nil {
		return nil, err
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO shift (id, shift_date, start_time, end_time, assigned_to, status, recurring, recurrence, tasks)
		VALUES ($1, $2::date, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
	`, stored.ID, stored.Date, stored.StartTime, stored.EndTime, stored.AssignedTo,
		string(stored.Status), stored.Recurring, recurrence, tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shift: %w", err)
	}

	return &stored, nil
}

// Update overwrites a shift by id, or model.ErrNotFound.
func (d *DB) Update(ctx context.Context, shift *model.Shift) error {
	recurrence, tasks, err := encodeShiftJSON(shift)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE shift SET
			shift_date = $2::date, start_time = $3, end_time = $4, assigned_to = NULLIF($5, ''),
			status = $6, recurring = $7, recurrence = $8, tasks = $9
		WHERE id = $1
	`, shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.AssignedTo,
		string(shift.Status), shift.Recurring, recurrence, tasks)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// GetByID returns a shift by id, or model.ErrNotFound.
func (d *DB) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift WHERE id = $1`, id)

	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}

	return shift, nil
}

// ListInRange returns shifts dated within [startDate, endDate] inclusive,
// ordered by date then start time.
func (d *DB) ListInRange(ctx context.Context, startDate, endDate string) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+` FROM shift
		WHERE shift_date BETWEEN $1::date AND $2::date
		ORDER BY shift_date, start_time
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts in range: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListForCaregiver returns shifts assigned to the caregiver, optionally
// bounded by dates.
func (d *DB) ListForCaregiver(ctx context.Context, caregiverID, startDate, endDate string) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+` FROM shift
		WHERE assigned_to = $1
			AND shift_date >= COALESCE(NULLIF($2, '')::date, shift_date)
			AND shift_date <= COALESCE(NULLIF($3, '')::date, shift_date)
		ORDER BY shift_date, start_time
	`, caregiverID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for caregiver: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

func encodeShiftJSON(shift *model.Shift) (recurrence, tasks []byte, err error) {
	if shift.Recurrence != nil {
		recurrence, err = json.Marshal(shift.Recurrence)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode recurrence pattern: %w", err)
		}
	}
	if shift.Tasks != nil {
		tasks, err = json.Marshal(shift.Tasks)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode tasks: %w", err)
		}
	}
	return recurrence, tasks, nil
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var shift model.Shift
	var status string
	var recurrence, tasks []byte
	err := row.Scan(&shift.ID, &shift.Date, &shift.StartTime, &shift.EndTime,
		&shift.AssignedTo, &status, &shift.Recurring, &recurrence, &tasks)
	if err != nil {
		return nil, err
	}
	shift.Status = model.ShiftStatus(status)
	if recurrence != nil {
		shift.Recurrence = &model.RecurrencePattern{}
		if err := json.Unmarshal(recurrence, shift.Recurrence); err != nil {
			return nil, fmt.Errorf("failed to decode recurrence pattern: %w", err)
		}
	}
	if tasks != nil {
		if err := json.Unmarshal(tasks, &shift.Tasks); err != nil {
			return nil, fmt.Errorf("failed to decode tasks: %w", err)
		}
	}
	return &shift, nil
}

func collectShifts(rows pgx.Rows) ([]model.Shift, error) {
	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift row: %w", err)
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift rows: %w", err)
	}
	return shifts, nil
}
