package persistence

import "context"

// ShiftFilter narrows shift queries. Zero-valued fields are ignored.
type ShiftFilter struct {
	StaffID string
	Date    string
}

// ShiftRepository stores shift records. All operations are scoped to a
// tenant; a record belonging to another tenant behaves as if it did not
// exist.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift Shift) error
	GetShift(ctx context.Context, tenantID, id string) (Shift, error)
	// UpdateShift replaces the stored record when expectedVersion matches the
	// current version, bumping the version; otherwise ErrStaleVersion.
	UpdateShift(ctx context.Context, shift Shift, expectedVersion int64) error
	DeleteShift(ctx context.Context, tenantID, id string) error
	ListShifts(ctx context.Context, tenantID string, filter ShiftFilter) ([]Shift, error)
}

// StaffRepository exposes CRUD operations for the staff directory.
type StaffRepository interface {
	CreateStaff(ctx context.Context, staff Staff) error
	UpdateStaff(ctx context.Context, staff Staff) error
	GetStaff(ctx context.Context, tenantID, id string) (Staff, error)
	ListStaff(ctx context.Context, tenantID string) ([]Staff, error)
	DeleteStaff(ctx context.Context, tenantID, id string) error
}
