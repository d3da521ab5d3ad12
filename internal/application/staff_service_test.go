package application

import (
	"context"
	"errors"
	"testing"
)

func TestStaffService(t *testing.T) {
	t.Parallel()

	service := NewStaffService(newFakeStaffDirectory())

	t.Run("lists the directory", func(t *testing.T) {
		t.Parallel()

		members, err := service.List(context.Background(), testTenant)
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
	})

	t.Run("resolves a member by id", func(t *testing.T) {
		t.Parallel()

		member, err := service.Get(context.Background(), testTenant, "staff-alice")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if member.DisplayName != "Alice Chen" {
			t.Fatalf("expected Alice Chen, got %q", member.DisplayName)
		}
	})

	t.Run("maps a missing member to not found", func(t *testing.T) {
		t.Parallel()

		if _, err := service.Get(context.Background(), testTenant, "ghost"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("requires a tenant id", func(t *testing.T) {
		t.Parallel()

		if _, err := service.List(context.Background(), ""); !errors.Is(err, ErrTenantRequired) {
			t.Fatalf("expected ErrTenantRequired, got %v", err)
		}
	})
}
