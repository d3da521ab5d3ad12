package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/resort-backoffice/internal/persistence"
)

// StaffRepository implements persistence.StaffRepository over SQLite.
type StaffRepository struct {
	db *DB
}

// NewStaffRepository creates a SQLite-backed staff repository.
func NewStaffRepository(db *DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// CreateStaff inserts a new staff directory entry.
func (r *StaffRepository) CreateStaff(ctx context.Context, staff persistence.Staff) error {
	if staff.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO staff (id, tenant_id, display_name, position, department, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.db.ExecContext(ctx, query,
		staff.ID,
		staff.TenantID,
		staff.DisplayName,
		staff.Position,
		staff.Department,
		staff.CreatedAt.UTC().Format(time.RFC3339),
		staff.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// UpdateStaff replaces an existing staff entry.
func (r *StaffRepository) UpdateStaff(ctx context.Context, staff persistence.Staff) error {
	query := `
		UPDATE staff
		SET display_name = ?, position = ?, department = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`
	result, err := r.db.db.ExecContext(ctx, query,
		staff.DisplayName,
		staff.Position,
		staff.Department,
		staff.UpdatedAt.UTC().Format(time.RFC3339),
		staff.ID,
		staff.TenantID,
	)
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

// GetStaff retrieves a staff entry by ID within the tenant scope.
func (r *StaffRepository) GetStaff(ctx context.Context, tenantID, id string) (persistence.Staff, error) {
	if id == "" {
		return persistence.Staff{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, tenant_id, display_name, position, department, created_at, updated_at
		FROM staff
		WHERE id = ? AND tenant_id = ?
	`
	return scanStaff(r.db.db.QueryRowContext(ctx, query, id, tenantID))
}

// ListStaff returns the tenant's staff ordered by display name, then ID.
func (r *StaffRepository) ListStaff(ctx context.Context, tenantID string) ([]persistence.Staff, error) {
	query := `
		SELECT id, tenant_id, display_name, position, department, created_at, updated_at
		FROM staff
		WHERE tenant_id = ?
		ORDER BY display_name ASC, id ASC
	`
	rows, err := r.db.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []persistence.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return members, nil
}

// DeleteStaff removes a staff entry by ID within the tenant scope.
func (r *StaffRepository) DeleteStaff(ctx context.Context, tenantID, id string) error {
	result, err := r.db.db.ExecContext(ctx, "DELETE FROM staff WHERE id = ? AND tenant_id = ?", id, tenantID)
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

func scanStaff(row rowScanner) (persistence.Staff, error) {
	var staff persistence.Staff
	var createdAt, updatedAt string

	err := row.Scan(
		&staff.ID,
		&staff.TenantID,
		&staff.DisplayName,
		&staff.Position,
		&staff.Department,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Staff{}, persistence.ErrNotFound
		}
		return persistence.Staff{}, mapError(err)
	}

	if staff.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Staff{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	if staff.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.Staff{}, fmt.Errorf("sqlite: parse updated_at: %w", err)
	}
	return staff, nil
}
