package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

func testUser(t *testing.T) User {
	t.Helper()
	user, err := ValidateUser("alice", "Alice Smith", "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return user
}

func testRole(t *testing.T, registry *NameRegistry, name string) *Role {
	t.Helper()
	role, err := NewRole(registry, name, "test role")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return role
}

func TestPermanentAssignmentLifecycle(t *testing.T) {
	registry := NewNameRegistry()
	role := testRole(t, registry, "Admin")
	user := testUser(t)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	assignment, err := NewPermanentAssignment(user, role, NewMetadata("root", "onboarding", fixedClock(now)), fixedClock(now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assignment.Kind() != AssignmentPermanent {
		t.Fatalf("kind = %q, want PERMANENT", assignment.Kind())
	}
	if !assignment.IsActive() {
		t.Fatal("permanent assignment must start active")
	}
	if assignment.IsExpired() {
		t.Fatal("permanent assignments never expire")
	}

	if err := assignment.Revoke(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.IsActive() {
		t.Fatal("revoked assignment must be inactive")
	}
	if !assignment.IsRevoked() {
		t.Fatal("revoked latch must be set")
	}

	// revoke is a one-way latch and idempotent
	if err := assignment.Revoke(); err != nil {
		t.Fatalf("second revoke must be a no-op, got %v", err)
	}

	if err := assignment.Extend("2026-12-31"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("extending a permanent assignment must fail with ErrInvalidState, got %v", err)
	}
}

func TestTemporaryAssignmentExpiration(t *testing.T) {
	registry := NewNameRegistry()
	role := testRole(t, registry, "Reviewer")
	user := testUser(t)

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := fixedClock(now)

	t.Run("active before expiry", func(t *testing.T) {
		assignment, err := NewTemporaryAssignment(user, role, NewMetadata("root", "", clock), now.Add(24*time.Hour), false, clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !assignment.IsActive() {
			t.Fatal("assignment expiring tomorrow must be active")
		}
	})

	t.Run("inactive at construction when already expired", func(t *testing.T) {
		assignment, err := NewTemporaryAssignment(user, role, NewMetadata("root", "", clock), now.Add(-time.Minute), false, clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if assignment.IsActive() {
			t.Fatal("assignment with past expiry must be inactive immediately")
		}
		if !assignment.IsExpired() {
			t.Fatal("IsExpired must report true")
		}
	})

	t.Run("revoke not supported", func(t *testing.T) {
		assignment, err := NewTemporaryAssignment(user, role, NewMetadata("root", "", clock), now.Add(time.Hour), false, clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := assignment.Revoke(); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})
}

func TestTemporaryAssignmentExtend(t *testing.T) {
	registry := NewNameRegistry()
	role := testRole(t, registry, "Auditor")
	user := testUser(t)

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := fixedClock(now)

	assignment, err := NewTemporaryAssignment(user, role, NewMetadata("root", "", clock), now.Add(-time.Hour), false, clock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.IsActive() {
		t.Fatal("assignment must start expired")
	}

	if err := assignment.Extend("2026-02-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !assignment.IsActive() {
		t.Fatal("extending past the evaluation instant must reactivate the assignment")
	}

	if err := assignment.Extend("not-a-date"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for malformed date, got %v", err)
	}

	// chronology is deliberately unchecked: extending into the past is allowed
	if err := assignment.Extend("2020-01-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment.IsActive() {
		t.Fatal("assignment extended into the past must be inactive")
	}
}

func TestAssignmentSummary(t *testing.T) {
	registry := NewNameRegistry()
	role := testRole(t, registry, "Operator")
	user := testUser(t)

	now := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	clock := fixedClock(now)

	t.Run("permanent with reason", func(t *testing.T) {
		assignment, err := NewPermanentAssignment(user, role, NewMetadata("root", "rotation", clock), clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := assignment.Summary()
		for _, want := range []string{
			"[PERMANENT] Operator assigned to alice by root at 2026-01-15 09:30",
			"Reason: rotation",
			"Status: ACTIVE",
		} {
			if !strings.Contains(summary, want) {
				t.Fatalf("summary missing %q:\n%s", want, summary)
			}
		}
		if strings.Contains(summary, "Expiration:") {
			t.Fatal("permanent summary must not carry an expiration line")
		}
	})

	t.Run("temporary without reason", func(t *testing.T) {
		expiresAt := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		assignment, err := NewTemporaryAssignment(user, role, NewMetadata("root", "", clock), expiresAt, true, clock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary := assignment.Summary()
		if strings.Contains(summary, "Reason:") {
			t.Fatal("summary must omit the reason line when no reason was given")
		}
		if !strings.Contains(summary, "Expiration: 2026-03-01 00:00") {
			t.Fatalf("temporary summary must append the expiration line:\n%s", summary)
		}
		if !assignment.AutoRenew() {
			t.Fatal("auto renew flag must round-trip")
		}
	})
}

func TestAssignmentEqualByID(t *testing.T) {
	registry := NewNameRegistry()
	role := testRole(t, registry, "Viewer")
	user := testUser(t)

	a, err := NewPermanentAssignment(user, role, NewMetadata("root", "", nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewPermanentAssignment(user, role, NewMetadata("root", "", nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.Equal(a) {
		t.Fatal("assignment must equal itself")
	}
	if a.Equal(b) {
		t.Fatal("assignments with distinct ids must not be equal")
	}
}
