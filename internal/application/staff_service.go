package application

import (
	"context"
	"errors"
	"strings"

	"github.com/example/resort-backoffice/internal/persistence"
)

// StaffService exposes read access to the staff directory. Staff records are
// provisioned out of band; the scheduling surface only consumes them.
type StaffService struct {
	staff StaffDirectory
}

// NewStaffService wires the staff directory dependency.
func NewStaffService(staff StaffDirectory) *StaffService {
	return &StaffService{staff: staff}
}

// List returns the tenant's staff directory for pickers and filters.
func (s *StaffService) List(ctx context.Context, tenantID string) ([]Staff, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantRequired
	}

	members, err := s.staff.ListStaff(ctx, tenantID)
	if err != nil {
		return nil, mapStaffRepoError(err)
	}
	return members, nil
}

// Get resolves a single staff member by id.
func (s *StaffService) Get(ctx context.Context, tenantID, id string) (Staff, error) {
	if strings.TrimSpace(tenantID) == "" {
		return Staff{}, ErrTenantRequired
	}

	member, err := s.staff.GetStaff(ctx, tenantID, id)
	if err != nil {
		return Staff{}, mapStaffRepoError(err)
	}
	return member, nil
}

func mapStaffRepoError(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
