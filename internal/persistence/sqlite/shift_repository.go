package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/resort-backoffice/internal/persistence"
)

// ShiftRepository implements persistence.ShiftRepository over SQLite.
type ShiftRepository struct {
	db *DB
}

// NewShiftRepository creates a SQLite-backed shift repository.
func NewShiftRepository(db *DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = `id, tenant_id, staff_id, staff_name, shift_date, start_minutes, end_minutes,
	position, department, location, notes, status, hourly_rate, version, created_at, updated_at`

// CreateShift inserts a new shift record with version 1.
func (r *ShiftRepository) CreateShift(ctx context.Context, shift persistence.Shift) error {
	if shift.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`
	_, err := r.db.db.ExecContext(ctx, query,
		shift.ID,
		shift.TenantID,
		shift.StaffID,
		shift.StaffName,
		shift.Date,
		shift.StartMinutes,
		shift.EndMinutes,
		shift.Position,
		shift.Department,
		shift.Location,
		shift.Notes,
		shift.Status,
		shift.HourlyRate,
		shift.CreatedAt.UTC().Format(time.RFC3339),
		shift.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetShift retrieves a shift by ID within the tenant scope.
func (r *ShiftRepository) GetShift(ctx context.Context, tenantID, id string) (persistence.Shift, error) {
	if id == "" {
		return persistence.Shift{}, persistence.ErrNotFound
	}

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = ? AND tenant_id = ?`
	return scanShift(r.db.db.QueryRowContext(ctx, query, id, tenantID))
}

// UpdateShift replaces the stored record when the caller's version token
// still matches, bumping the version in the same statement.
func (r *ShiftRepository) UpdateShift(ctx context.Context, shift persistence.Shift, expectedVersion int64) error {
	if shift.ID == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE shifts
		SET staff_id = ?, staff_name = ?, shift_date = ?, start_minutes = ?, end_minutes = ?,
			position = ?, department = ?, location = ?, notes = ?, status = ?, hourly_rate = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND version = ?
	`
	result, err := r.db.db.ExecContext(ctx, query,
		shift.StaffID,
		shift.StaffName,
		shift.Date,
		shift.StartMinutes,
		shift.EndMinutes,
		shift.Position,
		shift.Department,
		shift.Location,
		shift.Notes,
		shift.Status,
		shift.HourlyRate,
		shift.UpdatedAt.UTC().Format(time.RFC3339),
		shift.ID,
		shift.TenantID,
		expectedVersion,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing record from a stale token.
	var exists int
	err = r.db.db.QueryRowContext(ctx, "SELECT 1 FROM shifts WHERE id = ? AND tenant_id = ?", shift.ID, shift.TenantID).Scan(&exists)
	if err == sql.ErrNoRows {
		return persistence.ErrNotFound
	}
	if err != nil {
		return mapError(err)
	}
	return persistence.ErrStaleVersion
}

// DeleteShift removes a shift by ID within the tenant scope.
func (r *ShiftRepository) DeleteShift(ctx context.Context, tenantID, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.db.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ? AND tenant_id = ?", id, tenantID)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListShifts returns the tenant's shifts ordered by date, start time, then ID.
func (r *ShiftRepository) ListShifts(ctx context.Context, tenantID string, filter persistence.ShiftFilter) ([]persistence.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE tenant_id = ?`
	args := []any{tenantID}

	if filter.StaffID != "" {
		query += " AND staff_id = ?"
		args = append(args, filter.StaffID)
	}
	if filter.Date != "" {
		query += " AND shift_date = ?"
		args = append(args, filter.Date)
	}
	query += " ORDER BY shift_date ASC, start_minutes ASC, id ASC"

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var shifts []persistence.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return shifts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (persistence.Shift, error) {
	var shift persistence.Shift
	var createdAt, updatedAt string

	err := row.Scan(
		&shift.ID,
		&shift.TenantID,
		&shift.StaffID,
		&shift.StaffName,
		&shift.Date,
		&shift.StartMinutes,
		&shift.EndMinutes,
		&shift.Position,
		&shift.Department,
		&shift.Location,
		&shift.Notes,
		&shift.Status,
		&shift.HourlyRate,
		&shift.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Shift{}, persistence.ErrNotFound
		}
		return persistence.Shift{}, mapError(err)
	}

	if shift.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Shift{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if shift.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Shift{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}
	return shift, nil
}
