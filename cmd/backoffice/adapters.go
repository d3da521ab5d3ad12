package main

import (
	"context"

	"github.com/example/resort-backoffice/internal/application"
	"github.com/example/resort-backoffice/internal/persistence"
)

// shiftRepositoryAdapter bridges the persistence-level shift repository to
// the application-level contract, converting between the two record types.
type shiftRepositoryAdapter struct {
	repo persistence.ShiftRepository
}

func newShiftRepositoryAdapter(repo persistence.ShiftRepository) *shiftRepositoryAdapter {
	return &shiftRepositoryAdapter{repo: repo}
}

func (a *shiftRepositoryAdapter) CreateShift(ctx context.Context, tenantID string, shift application.Shift) (application.Shift, error) {
	record := toPersistenceShift(shift)
	record.TenantID = tenantID
	if err := a.repo.CreateShift(ctx, record); err != nil {
		return application.Shift{}, err
	}
	return a.GetShift(ctx, tenantID, shift.ID)
}

func (a *shiftRepositoryAdapter) GetShift(ctx context.Context, tenantID, id string) (application.Shift, error) {
	record, err := a.repo.GetShift(ctx, tenantID, id)
	if err != nil {
		return application.Shift{}, err
	}
	return toApplicationShift(record), nil
}

func (a *shiftRepositoryAdapter) UpdateShift(ctx context.Context, tenantID string, shift application.Shift, expectedVersion int64) (application.Shift, error) {
	record := toPersistenceShift(shift)
	record.TenantID = tenantID
	if err := a.repo.UpdateShift(ctx, record, expectedVersion); err != nil {
		return application.Shift{}, err
	}
	return a.GetShift(ctx, tenantID, shift.ID)
}

func (a *shiftRepositoryAdapter) DeleteShift(ctx context.Context, tenantID, id string) error {
	return a.repo.DeleteShift(ctx, tenantID, id)
}

func (a *shiftRepositoryAdapter) ListShifts(ctx context.Context, tenantID string) ([]application.Shift, error) {
	records, err := a.repo.ListShifts(ctx, tenantID, persistence.ShiftFilter{})
	if err != nil {
		return nil, err
	}
	shifts := make([]application.Shift, 0, len(records))
	for _, record := range records {
		shifts = append(shifts, toApplicationShift(record))
	}
	return shifts, nil
}

// staffDirectoryAdapter exposes the staff repository through the read-only
// directory contract the services consume.
type staffDirectoryAdapter struct {
	repo persistence.StaffRepository
}

func newStaffDirectoryAdapter(repo persistence.StaffRepository) *staffDirectoryAdapter {
	return &staffDirectoryAdapter{repo: repo}
}

func (a *staffDirectoryAdapter) GetStaff(ctx context.Context, tenantID, id string) (application.Staff, error) {
	record, err := a.repo.GetStaff(ctx, tenantID, id)
	if err != nil {
		return application.Staff{}, err
	}
	return toApplicationStaff(record), nil
}

func (a *staffDirectoryAdapter) ListStaff(ctx context.Context, tenantID string) ([]application.Staff, error) {
	records, err := a.repo.ListStaff(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	members := make([]application.Staff, 0, len(records))
	for _, record := range records {
		members = append(members, toApplicationStaff(record))
	}
	return members, nil
}

func toPersistenceShift(shift application.Shift) persistence.Shift {
	return persistence.Shift{
		ID:           shift.ID,
		TenantID:     shift.TenantID,
		StaffID:      shift.StaffID,
		StaffName:    shift.StaffName,
		Date:         shift.Date,
		StartMinutes: shift.StartMinutes,
		EndMinutes:   shift.EndMinutes,
		Position:     shift.Position,
		Department:   shift.Department,
		Location:     shift.Location,
		Notes:        shift.Notes,
		Status:       string(shift.Status),
		HourlyRate:   shift.HourlyRate,
		Version:      shift.Version,
		CreatedAt:    shift.CreatedAt,
		UpdatedAt:    shift.UpdatedAt,
	}
}

func toApplicationShift(record persistence.Shift) application.Shift {
	return application.Shift{
		ID:           record.ID,
		TenantID:     record.TenantID,
		StaffID:      record.StaffID,
		StaffName:    record.StaffName,
		Date:         record.Date,
		StartMinutes: record.StartMinutes,
		EndMinutes:   record.EndMinutes,
		Position:     record.Position,
		Department:   record.Department,
		Location:     record.Location,
		Notes:        record.Notes,
		Status:       application.Status(record.Status),
		HourlyRate:   record.HourlyRate,
		Version:      record.Version,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toApplicationStaff(record persistence.Staff) application.Staff {
	return application.Staff{
		ID:          record.ID,
		DisplayName: record.DisplayName,
		Position:    record.Position,
		Department:  record.Department,
	}
}
