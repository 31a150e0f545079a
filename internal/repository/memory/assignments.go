package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/core/port"
	"github.com/arklim/access-core/internal/repository"
)

// AssignmentStore is the permission-resolution engine. It enforces the
// cross-entity invariants on insert (the referenced user and role must
// pre-exist, and at most one assignment per (user, role) pair may be active),
// answers authorization queries, and drives the revoke/extend transitions.
type AssignmentStore struct {
	mu          sync.RWMutex
	assignments map[string]*domain.RoleAssignment
	users       port.UserRepository
	roles       port.RoleRepository
}

// NewAssignmentStore wires the store to the canonical user and role stores it
// validates references against.
func NewAssignmentStore(users port.UserRepository, roles port.RoleRepository) *AssignmentStore {
	return &AssignmentStore{
		assignments: make(map[string]*domain.RoleAssignment),
		users:       users,
		roles:       roles,
	}
}

// Add inserts the assignment after checking, in order: non-blank unused id,
// referenced user and role present in their stores, and no currently-active
// assignment for the same (user, role) pair. Any failure leaves the store
// unmodified.
func (s *AssignmentStore) Add(assignment *domain.RoleAssignment) error {
	if assignment == nil {
		return fmt.Errorf("%w: assignment must not be nil", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(assignment.ID()) == "" {
		return fmt.Errorf("%w: assignment id must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.assignments[assignment.ID()]; exists {
		return fmt.Errorf("%w: assignment %q already exists", domain.ErrInvalidArgument, assignment.ID())
	}

	user := assignment.User()
	role := assignment.Role()
	if !s.users.Exists(user.Username) {
		return fmt.Errorf("%w: user %q must exist before assignment", repository.ErrMissingReference, user.Username)
	}
	if role == nil || !s.roles.Exists(role.Name()) {
		return fmt.Errorf("%w: role must exist before assignment", repository.ErrMissingReference)
	}

	for _, existing := range s.assignments {
		if existing.User().Username == user.Username && existing.Role().Equal(role) && existing.IsActive() {
			return fmt.Errorf("%w: user %q already holds an active assignment for role %q",
				repository.ErrConflict, user.Username, role.Name())
		}
	}

	s.assignments[assignment.ID()] = assignment
	return nil
}

// Remove deletes the assignment and reports whether it was present.
func (s *AssignmentStore) Remove(assignment *domain.RoleAssignment) bool {
	if assignment == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.assignments[assignment.ID()]; !exists {
		return false
	}
	delete(s.assignments, assignment.ID())
	return true
}

// FindByID resolves an assignment by its generated id.
func (s *AssignmentStore) FindByID(id string) (*domain.RoleAssignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.assignments[id]
	return assignment, ok
}

// FindAll returns the stored assignments in unspecified order.
func (s *AssignmentStore) FindAll() []*domain.RoleAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.RoleAssignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		out = append(out, assignment)
	}
	return out
}

// FindByUser returns every assignment granted to the user, active or not.
func (s *AssignmentStore) FindByUser(user domain.User) []*domain.RoleAssignment {
	return s.FindByFilter(domain.AssignmentByUser(user))
}

// FindByRole returns every assignment of the role, active or not.
func (s *AssignmentStore) FindByRole(role *domain.Role) []*domain.RoleAssignment {
	if role == nil {
		return []*domain.RoleAssignment{}
	}
	return s.FindByFilter(domain.AssignmentByRole(role))
}

// FindByFilter returns assignments matching the predicate. A nil predicate
// yields an empty result by policy.
func (s *AssignmentStore) FindByFilter(filter domain.AssignmentFilter) []*domain.RoleAssignment {
	if filter == nil {
		return []*domain.RoleAssignment{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.RoleAssignment, 0)
	for _, assignment := range s.assignments {
		if filter(assignment) {
			out = append(out, assignment)
		}
	}
	return out
}

// FindAllWith filters, then stable-sorts the filtered result.
func (s *AssignmentStore) FindAllWith(filter domain.AssignmentFilter, sorter domain.AssignmentSorter) []*domain.RoleAssignment {
	filtered := s.FindByFilter(filter)
	sortStable(filtered, sorter)
	return filtered
}

// ActiveAssignments returns the assignments active at this instant.
func (s *AssignmentStore) ActiveAssignments() []*domain.RoleAssignment {
	return s.FindByFilter(domain.AssignmentActiveOnly())
}

// ExpiredAssignments returns the assignments inactive at this instant.
func (s *AssignmentStore) ExpiredAssignments() []*domain.RoleAssignment {
	return s.FindByFilter(domain.AssignmentInactiveOnly())
}

// UserHasRole reports whether an active assignment exists for exactly this
// (user, role) pair.
func (s *AssignmentStore) UserHasRole(user domain.User, role *domain.Role) bool {
	if role == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assignment := range s.assignments {
		if assignment.User().Username == user.Username && assignment.Role().Equal(role) && assignment.IsActive() {
			return true
		}
	}
	return false
}

// UserHasPermission reports whether some active assignment of the user carries
// a role holding a permission matching (name, resource) by normalized equality.
func (s *AssignmentStore) UserHasPermission(user domain.User, permissionName, resource string) bool {
	if strings.TrimSpace(permissionName) == "" || strings.TrimSpace(resource) == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assignment := range s.assignments {
		if assignment.User().Username != user.Username || !assignment.IsActive() {
			continue
		}
		if assignment.Role().HasPermissionNamed(permissionName, resource) {
			return true
		}
	}
	return false
}

// UserPermissions computes the union of permissions across the user's
// currently active assignments, deduplicated by permission identity. Activity
// is time-derived for temporary assignments, so the union is recomputed
// freshly on every call and never cached.
func (s *AssignmentStore) UserPermissions(user domain.User) []domain.Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[domain.PermissionKey]struct{})
	out := make([]domain.Permission, 0)
	for _, assignment := range s.assignments {
		if assignment.User().Username != user.Username || !assignment.IsActive() {
			continue
		}
		for _, p := range assignment.Role().Permissions() {
			if _, dup := seen[p.Key()]; dup {
				continue
			}
			seen[p.Key()] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Revoke latches the permanent assignment inactive, failing with ErrNotFound
// for an unknown id and ErrInvalidState for a temporary assignment.
func (s *AssignmentStore) Revoke(assignmentID string) error {
	assignment, err := s.require(assignmentID)
	if err != nil {
		return err
	}
	return assignment.Revoke()
}

// Extend moves a temporary assignment's expiration to the given ISO-8601
// calendar date, failing with ErrNotFound for an unknown id, ErrInvalidState
// for a permanent assignment, and ErrInvalidArgument for an unparseable date.
func (s *AssignmentStore) Extend(assignmentID, newExpirationDate string) error {
	assignment, err := s.require(assignmentID)
	if err != nil {
		return err
	}
	return assignment.Extend(newExpirationDate)
}

func (s *AssignmentStore) require(assignmentID string) (*domain.RoleAssignment, error) {
	id := strings.TrimSpace(assignmentID)
	if id == "" {
		return nil, fmt.Errorf("%w: assignment id must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	assignment, ok := s.assignments[id]
	if !ok {
		return nil, fmt.Errorf("%w: assignment %q", repository.ErrNotFound, id)
	}
	return assignment, nil
}

// Count reports the number of stored assignments.
func (s *AssignmentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.assignments)
}

// Clear empties the store.
func (s *AssignmentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments = make(map[string]*domain.RoleAssignment)
}
