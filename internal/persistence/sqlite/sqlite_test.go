package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/resort-backoffice/internal/persistence"
)

const testTenant = "resort-alpine"

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	return db
}

func sampleShift(id string) persistence.Shift {
	now := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)
	return persistence.Shift{
		ID:           id,
		TenantID:     testTenant,
		StaffID:      "staff-1",
		StaffName:    "Alice Chen",
		Date:         "2026-01-05",
		StartMinutes: 9 * 60,
		EndMinutes:   17 * 60,
		Position:     "Front Desk",
		Department:   "Reception",
		Status:       "scheduled",
		HourlyRate:   21.5,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate returned error: %v", err)
	}
}

func TestShiftRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round-trips a record", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		if err := repo.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		stored, err := repo.GetShift(ctx, testTenant, "s1")
		if err != nil {
			t.Fatalf("GetShift returned error: %v", err)
		}
		if stored.StaffName != "Alice Chen" || stored.StartMinutes != 9*60 || stored.Version != 1 {
			t.Fatalf("unexpected stored record: %+v", stored)
		}
		if stored.HourlyRate != 21.5 {
			t.Fatalf("expected hourly rate to round-trip, got %v", stored.HourlyRate)
		}
	})

	t.Run("rejects an inverted time range via the check constraint", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		shift := sampleShift("s1")
		shift.StartMinutes = 17 * 60
		shift.EndMinutes = 9 * 60
		if err := repo.CreateShift(ctx, shift); !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		if err := repo.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}
		if err := repo.CreateShift(ctx, sampleShift("s1")); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("update bumps the version atomically", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		if err := repo.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		updated := sampleShift("s1")
		updated.Date = "2026-01-06"
		if err := repo.UpdateShift(ctx, updated, 1); err != nil {
			t.Fatalf("UpdateShift returned error: %v", err)
		}

		stored, err := repo.GetShift(ctx, testTenant, "s1")
		if err != nil {
			t.Fatalf("GetShift returned error: %v", err)
		}
		if stored.Version != 2 || stored.Date != "2026-01-06" {
			t.Fatalf("expected version 2 on the new date, got %+v", stored)
		}

		if err := repo.UpdateShift(ctx, updated, 1); !errors.Is(err, persistence.ErrStaleVersion) {
			t.Fatalf("expected ErrStaleVersion, got %v", err)
		}
	})

	t.Run("update of a missing record maps to not found", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		if err := repo.UpdateShift(ctx, sampleShift("missing"), 1); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list orders and filters", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))

		evening := sampleShift("s-evening")
		evening.StartMinutes = 18 * 60
		evening.EndMinutes = 22 * 60
		later := sampleShift("s-later")
		later.Date = "2026-01-06"
		later.StaffID = "staff-2"
		morning := sampleShift("s-morning")

		for _, shift := range []persistence.Shift{evening, later, morning} {
			if err := repo.CreateShift(ctx, shift); err != nil {
				t.Fatalf("CreateShift returned error: %v", err)
			}
		}

		all, err := repo.ListShifts(ctx, testTenant, persistence.ShiftFilter{})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		want := []string{"s-morning", "s-evening", "s-later"}
		if len(all) != len(want) {
			t.Fatalf("expected %d shifts, got %d", len(want), len(all))
		}
		for i, id := range want {
			if all[i].ID != id {
				t.Fatalf("position %d: expected %s, got %s", i, id, all[i].ID)
			}
		}

		byStaff, err := repo.ListShifts(ctx, testTenant, persistence.ShiftFilter{StaffID: "staff-2"})
		if err != nil {
			t.Fatalf("ListShifts returned error: %v", err)
		}
		if len(byStaff) != 1 || byStaff[0].ID != "s-later" {
			t.Fatalf("expected only s-later, got %+v", byStaff)
		}
	})

	t.Run("tenants are isolated", func(t *testing.T) {
		t.Parallel()

		repo := NewShiftRepository(openTestDB(t))
		if err := repo.CreateShift(ctx, sampleShift("s1")); err != nil {
			t.Fatalf("CreateShift returned error: %v", err)
		}

		if _, err := repo.GetShift(ctx, "resort-other", "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for the wrong tenant, got %v", err)
		}
		if err := repo.DeleteShift(ctx, "resort-other", "s1"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for the wrong tenant, got %v", err)
		}
	})
}

func TestStaffRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)

	repo := NewStaffRepository(openTestDB(t))

	members := []persistence.Staff{
		{ID: "staff-2", TenantID: testTenant, DisplayName: "Bob Reyes", Position: "Chef", Department: "Kitchen", CreatedAt: now, UpdatedAt: now},
		{ID: "staff-1", TenantID: testTenant, DisplayName: "Alice Chen", Position: "Front Desk", Department: "Reception", CreatedAt: now, UpdatedAt: now},
	}
	for _, member := range members {
		if err := repo.CreateStaff(ctx, member); err != nil {
			t.Fatalf("CreateStaff returned error: %v", err)
		}
	}

	listed, err := repo.ListStaff(ctx, testTenant)
	if err != nil {
		t.Fatalf("ListStaff returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].DisplayName != "Alice Chen" {
		t.Fatalf("expected display-name ordering, got %+v", listed)
	}

	updated := members[0]
	updated.Position = "Head Chef"
	updated.UpdatedAt = now.Add(time.Hour)
	if err := repo.UpdateStaff(ctx, updated); err != nil {
		t.Fatalf("UpdateStaff returned error: %v", err)
	}

	stored, err := repo.GetStaff(ctx, testTenant, "staff-2")
	if err != nil {
		t.Fatalf("GetStaff returned error: %v", err)
	}
	if stored.Position != "Head Chef" {
		t.Fatalf("expected updated position, got %q", stored.Position)
	}

	if err := repo.DeleteStaff(ctx, testTenant, "staff-1"); err != nil {
		t.Fatalf("DeleteStaff returned error: %v", err)
	}
	if _, err := repo.GetStaff(ctx, testTenant, "staff-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
