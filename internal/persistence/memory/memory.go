// Package memory provides a mutex-guarded in-memory implementation of the
// persistence repositories, used by tests and as a development fallback when
// no SQLite DSN is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/resort-backoffice/internal/persistence"
)

// Store implements persistence.ShiftRepository and
// persistence.StaffRepository over in-process maps.
type Store struct {
	mu     sync.RWMutex
	shifts map[string]persistence.Shift
	staff  map[string]persistence.Staff
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		shifts: make(map[string]persistence.Shift),
		staff:  make(map[string]persistence.Staff),
	}
}

// --- ShiftRepository implementation ---

// CreateShift stores a new shift record with version 1.
func (s *Store) CreateShift(ctx context.Context, shift persistence.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shift.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if _, ok := s.shifts[shift.ID]; ok {
		return fmt.Errorf("memory: shift %s: %w", shift.ID, persistence.ErrDuplicate)
	}
	if shift.EndMinutes <= shift.StartMinutes {
		return persistence.ErrConstraintViolation
	}

	shift.Version = 1
	s.shifts[shift.ID] = shift
	return nil
}

// GetShift retrieves a shift by ID within the tenant scope.
func (s *Store) GetShift(ctx context.Context, tenantID, id string) (persistence.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[id]
	if !ok || shift.TenantID != tenantID {
		return persistence.Shift{}, persistence.ErrNotFound
	}
	return shift, nil
}

// UpdateShift replaces a stored shift when the caller's version token still
// matches, bumping the version. Tenant and creation metadata are preserved.
func (s *Store) UpdateShift(ctx context.Context, shift persistence.Shift, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.shifts[shift.ID]
	if !ok || existing.TenantID != shift.TenantID {
		return persistence.ErrNotFound
	}
	if existing.Version != expectedVersion {
		return persistence.ErrStaleVersion
	}
	if shift.EndMinutes <= shift.StartMinutes {
		return persistence.ErrConstraintViolation
	}

	shift.TenantID = existing.TenantID
	shift.CreatedAt = existing.CreatedAt
	shift.Version = existing.Version + 1
	s.shifts[shift.ID] = shift
	return nil
}

// DeleteShift removes a shift by ID within the tenant scope.
func (s *Store) DeleteShift(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[id]
	if !ok || shift.TenantID != tenantID {
		return persistence.ErrNotFound
	}
	delete(s.shifts, id)
	return nil
}

// ListShifts returns the tenant's shifts ordered by date, start time, then ID.
func (s *Store) ListShifts(ctx context.Context, tenantID string, filter persistence.ShiftFilter) ([]persistence.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts := make([]persistence.Shift, 0)
	for _, shift := range s.shifts {
		if shift.TenantID != tenantID {
			continue
		}
		if filter.StaffID != "" && shift.StaffID != filter.StaffID {
			continue
		}
		if filter.Date != "" && shift.Date != filter.Date {
			continue
		}
		shifts = append(shifts, shift)
	}

	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		if shifts[i].StartMinutes != shifts[j].StartMinutes {
			return shifts[i].StartMinutes < shifts[j].StartMinutes
		}
		return shifts[i].ID < shifts[j].ID
	})

	return shifts, nil
}

// --- StaffRepository implementation ---

// CreateStaff stores a new staff directory entry.
func (s *Store) CreateStaff(ctx context.Context, staff persistence.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if staff.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if _, ok := s.staff[staff.ID]; ok {
		return fmt.Errorf("memory: staff %s: %w", staff.ID, persistence.ErrDuplicate)
	}
	s.staff[staff.ID] = staff
	return nil
}

// UpdateStaff replaces an existing staff entry.
func (s *Store) UpdateStaff(ctx context.Context, staff persistence.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.staff[staff.ID]
	if !ok || existing.TenantID != staff.TenantID {
		return persistence.ErrNotFound
	}
	staff.CreatedAt = existing.CreatedAt
	s.staff[staff.ID] = staff
	return nil
}

// GetStaff retrieves a staff entry by ID within the tenant scope.
func (s *Store) GetStaff(ctx context.Context, tenantID, id string) (persistence.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff, ok := s.staff[id]
	if !ok || staff.TenantID != tenantID {
		return persistence.Staff{}, persistence.ErrNotFound
	}
	return staff, nil
}

// ListStaff returns the tenant's staff ordered by display name, then ID.
func (s *Store) ListStaff(ctx context.Context, tenantID string) ([]persistence.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]persistence.Staff, 0)
	for _, member := range s.staff {
		if member.TenantID != tenantID {
			continue
		}
		members = append(members, member)
	}

	sort.Slice(members, func(i, j int) bool {
		if members[i].DisplayName == members[j].DisplayName {
			return members[i].ID < members[j].ID
		}
		return members[i].DisplayName < members[j].DisplayName
	})

	return members, nil
}

// DeleteStaff removes a staff entry by ID within the tenant scope.
func (s *Store) DeleteStaff(ctx context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, ok := s.staff[id]
	if !ok || staff.TenantID != tenantID {
		return persistence.ErrNotFound
	}
	delete(s.staff, id)
	return nil
}
