package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
)

type assignmentFixture struct {
	users       *UserStore
	roles       *RoleStore
	assignments *AssignmentStore
	registry    *domain.NameRegistry
	clock       domain.Clock
	now         time.Time
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	f := &assignmentFixture{
		users:    NewUserStore(),
		roles:    NewRoleStore(),
		registry: domain.NewNameRegistry(),
		now:      now,
		clock:    func() time.Time { return now },
	}
	f.assignments = NewAssignmentStore(f.users, f.roles)
	return f
}

func (f *assignmentFixture) addUser(t *testing.T, username string) domain.User {
	t.Helper()
	user := mustUser(t, username, "Test User", username+"@example.com")
	if err := f.users.Add(user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return user
}

func (f *assignmentFixture) addRole(t *testing.T, name string) *domain.Role {
	t.Helper()
	role := mustRole(t, f.registry, name)
	if err := f.roles.Add(role); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return role
}

func (f *assignmentFixture) permanent(t *testing.T, user domain.User, role *domain.Role) *domain.RoleAssignment {
	t.Helper()
	assignment, err := domain.NewPermanentAssignment(user, role, domain.NewMetadata("root", "", f.clock), f.clock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return assignment
}

func (f *assignmentFixture) temporary(t *testing.T, user domain.User, role *domain.Role, expiresAt time.Time) *domain.RoleAssignment {
	t.Helper()
	assignment, err := domain.NewTemporaryAssignment(user, role, domain.NewMetadata("root", "", f.clock), expiresAt, false, f.clock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return assignment
}

func TestAssignmentStoreReferentialIntegrity(t *testing.T) {
	f := newAssignmentFixture(t)
	role := f.addRole(t, "Admin")
	stranger := mustUser(t, "ghost", "Ghost User", "ghost@example.com")

	err := f.assignments.Add(f.permanent(t, stranger, role))
	if !errors.Is(err, repository.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference for unknown user, got %v", err)
	}
	if f.assignments.Count() != 0 {
		t.Fatal("a rejected insert must not mutate the store")
	}

	user := f.addUser(t, "alice")
	orphanRegistry := domain.NewNameRegistry()
	orphanRole := mustRole(t, orphanRegistry, "Orphan")
	err = f.assignments.Add(f.permanent(t, user, orphanRole))
	if !errors.Is(err, repository.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference for unknown role, got %v", err)
	}
	if f.assignments.Count() != 0 {
		t.Fatal("a rejected insert must not mutate the store")
	}
}

func TestAssignmentStoreExclusivity(t *testing.T) {
	f := newAssignmentFixture(t)
	user := f.addUser(t, "alice")
	role := f.addRole(t, "Admin")

	first := f.permanent(t, user, role)
	if err := f.assignments.Add(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a second active assignment for the same (user, role) pair must be refused
	if err := f.assignments.Add(f.permanent(t, user, role)); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// once the first is revoked the pair is free again
	if err := f.assignments.Revoke(first.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.assignments.Add(f.permanent(t, user, role)); err != nil {
		t.Fatalf("re-adding after revoke must succeed, got %v", err)
	}
	if f.assignments.Count() != 2 {
		t.Fatalf("count = %d, want 2", f.assignments.Count())
	}
}

func TestAssignmentStoreExclusivityIgnoresExpired(t *testing.T) {
	f := newAssignmentFixture(t)
	user := f.addUser(t, "alice")
	role := f.addRole(t, "Reviewer")

	expired := f.temporary(t, user, role, f.now.Add(-time.Hour))
	if err := f.assignments.Add(expired); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the expired assignment does not hold the pair
	if err := f.assignments.Add(f.permanent(t, user, role)); err != nil {
		t.Fatalf("expected insert alongside an expired assignment to succeed, got %v", err)
	}
}

func TestAssignmentStorePermissionResolution(t *testing.T) {
	f := newAssignmentFixture(t)
	user := f.addUser(t, "alice")
	admin := f.addRole(t, "Admin")
	ops := f.addRole(t, "Ops")

	read := mustPermission(t, "read", "articles")
	write := mustPermission(t, "write", "articles")
	deploy := mustPermission(t, "deploy", "cluster")
	admin.AddPermission(read)
	admin.AddPermission(write)
	ops.AddPermission(read)
	ops.AddPermission(deploy)

	adminGrant := f.permanent(t, user, admin)
	if err := f.assignments.Add(adminGrant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.assignments.Add(f.permanent(t, user, ops)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.assignments.UserHasRole(user, admin) {
		t.Fatal("user must hold the admin role")
	}
	if !f.assignments.UserHasPermission(user, "WRITE", "articles") {
		t.Fatal("permission check must be case-insensitive")
	}
	if f.assignments.UserHasPermission(user, "", "articles") {
		t.Fatal("blank permission name must never grant")
	}

	// union across roles deduplicates by (name, resource) identity
	union := f.assignments.UserPermissions(user)
	if len(union) != 3 {
		t.Fatalf("permission union = %d entries, want 3", len(union))
	}

	// revoking the admin grant drops its exclusive permissions immediately
	if err := f.assignments.Revoke(adminGrant.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.assignments.UserHasPermission(user, "write", "articles") {
		t.Fatal("revoked role's permission must no longer resolve")
	}
	if !f.assignments.UserHasPermission(user, "read", "articles") {
		t.Fatal("permission still granted through the remaining role must resolve")
	}
	if f.assignments.UserHasRole(user, admin) {
		t.Fatal("revoked role must no longer be held")
	}
}

func TestAssignmentStoreRevokeAndExtendDispatch(t *testing.T) {
	f := newAssignmentFixture(t)
	user := f.addUser(t, "alice")
	admin := f.addRole(t, "Admin")
	ops := f.addRole(t, "Ops")

	permanent := f.permanent(t, user, admin)
	temporary := f.temporary(t, user, ops, f.now.Add(time.Hour))
	if err := f.assignments.Add(permanent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.assignments.Add(temporary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.assignments.Revoke("assign_missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.assignments.Revoke(temporary.ID()); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for temporary revoke, got %v", err)
	}
	if err := f.assignments.Extend(permanent.ID(), "2026-06-01"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for permanent extend, got %v", err)
	}
	if err := f.assignments.Extend(temporary.ID(), "06/01/2026"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for malformed date, got %v", err)
	}
	if err := f.assignments.Extend(temporary.ID(), "2026-06-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expiresAt, ok := temporary.ExpiresAt()
	if !ok || !expiresAt.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expiration must move to midnight UTC of the new date, got %v", expiresAt)
	}
}

func TestAssignmentStoreQueries(t *testing.T) {
	f := newAssignmentFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")
	admin := f.addRole(t, "Admin")
	ops := f.addRole(t, "Ops")

	active := f.permanent(t, alice, admin)
	expired := f.temporary(t, bob, ops, f.now.Add(-time.Hour))
	if err := f.assignments.Add(active); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.assignments.Add(expired); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := f.assignments.FindByUser(alice); len(got) != 1 || !got[0].Equal(active) {
		t.Fatalf("FindByUser = %v", got)
	}
	if got := f.assignments.FindByRole(ops); len(got) != 1 || !got[0].Equal(expired) {
		t.Fatalf("FindByRole = %v", got)
	}
	if got := f.assignments.ActiveAssignments(); len(got) != 1 || !got[0].Equal(active) {
		t.Fatalf("ActiveAssignments = %v", got)
	}
	if got := f.assignments.ExpiredAssignments(); len(got) != 1 || !got[0].Equal(expired) {
		t.Fatalf("ExpiredAssignments = %v", got)
	}
	if got := f.assignments.FindByFilter(nil); len(got) != 0 {
		t.Fatalf("nil filter must yield empty, got %d", len(got))
	}

	got := f.assignments.FindAllWith(domain.AssignmentActiveOnly().Or(domain.AssignmentInactiveOnly()), domain.AssignmentsByUsername())
	if len(got) != 2 || got[0].User().Username != "alice" || got[1].User().Username != "bob" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestAssignmentStoreEmptyQueryComposition(t *testing.T) {
	f := newAssignmentFixture(t)

	got := f.assignments.FindAllWith(domain.AssignmentActiveOnly(), domain.AssignmentsByDate())
	if got == nil || len(got) != 0 {
		t.Fatalf("empty store must yield an empty non-nil sequence, got %v", got)
	}
}
