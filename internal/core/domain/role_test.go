package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestNewRoleValidation(t *testing.T) {
	registry := NewNameRegistry()

	if _, err := NewRole(nil, "Admin", "d"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for nil registry, got %v", err)
	}
	if _, err := NewRole(registry, "  ", "d"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank name, got %v", err)
	}

	role, err := NewRole(registry, "Admin", "administrators")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role.ID() == "" {
		t.Fatal("role id must be generated")
	}
	if role.Name() != "Admin" {
		t.Fatalf("name = %q, want Admin", role.Name())
	}
}

func TestRoleNameConflict(t *testing.T) {
	registry := NewNameRegistry()

	if _, err := NewRole(registry, "Admin", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewRole(registry, "Admin", "second"); !errors.Is(err, ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestRoleNameConflictUnderConcurrentCreation(t *testing.T) {
	registry := NewNameRegistry()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewRole(registry, "Contended", "d")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrNameConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("exactly one creation must win, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestRolePermissionSet(t *testing.T) {
	registry := NewNameRegistry()
	role, err := NewRole(registry, "Editor", "editors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	read, _ := NewPermission("read", "articles", "read articles")
	readDup, _ := NewPermission("READ", "ARTICLES", "different description")

	role.AddPermission(read)
	role.AddPermission(readDup)
	if role.PermissionCount() != 1 {
		t.Fatalf("duplicate identity must not grow the set, count = %d", role.PermissionCount())
	}

	if !role.HasPermission(read) {
		t.Fatal("HasPermission must find the stored permission")
	}
	if !role.HasPermissionNamed("read", "articles") {
		t.Fatal("HasPermissionNamed must match case-insensitively")
	}
	if role.HasPermissionNamed("write", "articles") {
		t.Fatal("HasPermissionNamed must not match absent permissions")
	}

	role.RemovePermission(readDup)
	if role.PermissionCount() != 0 {
		t.Fatal("removal by identity must empty the set")
	}
	// removing again is a no-op
	role.RemovePermission(read)
}

func TestRoleEqualByID(t *testing.T) {
	registry := NewNameRegistry()
	a, _ := NewRole(registry, "A", "")
	b, _ := NewRole(registry, "B", "")

	if !a.Equal(a) {
		t.Fatal("role must equal itself")
	}
	if a.Equal(b) {
		t.Fatal("distinct roles must not be equal")
	}
	if a.Equal(nil) {
		t.Fatal("role must not equal nil")
	}
}
