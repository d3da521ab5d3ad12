package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/example/resort-backoffice/internal/persistence"
)

const testTenant = "resort-alpine"

func sampleShift(id string) persistence.Shift {
	return persistence.Shift{
		ID:           id,
		TenantID:     testTenant,
		StaffID:      "staff-1",
		StaffName:    "Alice Chen",
		Date:         "2026-01-05",
		StartMinutes: 9 * 60,
		EndMinutes:   17 * 60,
		Status:       "scheduled",
	}
}

func TestStore_ShiftLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create assigns version one", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		if err := store.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		stored, err := store.GetShift(ctx, testTenant, "s1")
		if err != nil {
			t.Fatalf("GetShift returned error: %v", err)
		}
		if stored.Version != 1 {
			t.Fatalf("expected version 1, got %d", stored.Version)
		}
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		if err := store.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}
		if err := store.CreateShift(ctx, sampleShift("s1")); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("inverted time range is rejected", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		shift := sampleShift("s1")
		shift.StartMinutes = 17 * 60
		shift.EndMinutes = 9 * 60
		if err := store.CreateShift(ctx, shift); !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})

	t.Run("update bumps the version and rejects stale tokens", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		if err := store.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		updated := sampleShift("s1")
		updated.Date = "2026-01-06"
		if err := store.UpdateShift(ctx, updated, 1); err != nil {
			t.Fatalf("UpdateShift returned error: %v", err)
		}

		stored, err := store.GetShift(ctx, testTenant, "s1")
		if err != nil {
			t.Fatalf("GetShift returned error: %v", err)
		}
		if stored.Version != 2 || stored.Date != "2026-01-06" {
			t.Fatalf("expected version 2 on the new date, got %+v", stored)
		}

		if err := store.UpdateShift(ctx, updated, 1); !errors.Is(err, persistence.ErrStaleVersion) {
			t.Fatalf("expected ErrStaleVersion, got %v", err)
		}
	})

	t.Run("tenants are isolated", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		if err := store.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		if _, err := store.GetShift(ctx, "resort-other", "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for the wrong tenant, got %v", err)
		}
		if err := store.DeleteShift(ctx, "resort-other", "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for the wrong tenant, got %v", err)
		}

		shifts, err := store.ListShifts(ctx, "resort-other", persistence.ShiftFilter{})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		if len(shifts) != 0 {
			t.Fatalf("expected no shifts for the other tenant, got %d", len(shifts))
		}
	})

	t.Run("list orders by date then start then id", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		later := sampleShift("s-later")
		later.Date = "2026-01-06"
		evening := sampleShift("s-evening")
		evening.StartMinutes = 18 * 60
		evening.EndMinutes = 22 * 60
		morning := sampleShift("s-morning")

		for _, shift := range []persistence.Shift{later, evening, morning} {
			if err := store.CreateShift(ctx, shift); err != nil {
				t.Fatalf("CreateShift returned error: %v", err)
			}
		}

		shifts, err := store.ListShifts(ctx, testTenant, persistence.ShiftFilter{})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		want := []string{"s-morning", "s-evening", "s-later"}
		for i, id := range want {
			if shifts[i].ID != id {
				t.Fatalf("position %d: expected %s, got %s", i, id, shifts[i].ID)
			}
		}
	})

	t.Run("list applies staff and date filters", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		first := sampleShift("s1")
		second := sampleShift("s2")
		second.StaffID = "staff-2"
		second.Date = "2026-01-06"
		for _, shift := range []persistence.Shift{first, second} {
			if err := store.CreateShift(ctx, shift); err != nil {
				t.Fatalf("CreateShift returned error: %v", err)
			}
		}

		byStaff, err := store.ListShifts(ctx, testTenant, persistence.ShiftFilter{StaffID: "staff-2"})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		if len(byStaff) != 1 || byStaff[0].ID != "s2" {
			t.Fatalf("expected only s2, got %+v", byStaff)
		}

		byDate, err := store.ListShifts(ctx, testTenant, persistence.ShiftFilter{Date: "2026-01-05"})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		if len(byDate) != 1 || byDate[0].ID != "s1" {
			t.Fatalf("expected only s1, got %+v", byDate)
		}
	})
}

func TestStore_StaffLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	members := []persistence.Staff{
		{ID: "staff-2", TenantID: testTenant, DisplayName: "Bob Reyes", Position: "Chef", Department: "Kitchen"},
		{ID: "staff-1", TenantID: testTenant, DisplayName: "Alice Chen", Position: "Front Desk", Department: "Reception"},
	}
	for _, member := range members {
		if err := store.CreateStaff(ctx, member); err != nil {
			t.Fatalf("CreateStaff returned error: %v", err)
		}
	}

	listed, err := store.ListStaff(ctx, testTenant)
	if err != nil {
		t.Fatalf("ListStaff returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].DisplayName != "Alice Chen" {
		t.Fatalf("expected display-name ordering, got %+v", listed)
	}

	updated := members[0]
	updated.Position = "Head Chef"
	if err := store.UpdateStaff(ctx, updated); err != nil {
		t.Fatalf("UpdateStaff returned error: %v", err)
	}
	stored, err := store.GetStaff(ctx, testTenant, "staff-2")
	if err != nil {
		t.Fatalf("GetStaff returned error: %v", err)
	}
	if stored.Position != "Head Chef" {
		t.Fatalf("expected updated position, got %q", stored.Position)
	}

	if err := store.DeleteStaff(ctx, testTenant, "staff-1"); err != nil {
		t.Fatalf("DeleteStaff returned error: %v", err)
	}
	if _, err := store.GetStaff(ctx, testTenant, "staff-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
