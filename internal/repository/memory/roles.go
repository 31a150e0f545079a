package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
)

// RoleStore is the in-memory canonical collection of roles, keyed by both the
// generated id and the unique name. Both indexes always resolve to the same
// entity.
type RoleStore struct {
	mu          sync.RWMutex
	rolesByID   map[string]*domain.Role
	rolesByName map[string]*domain.Role
}

// NewRoleStore builds an empty store.
func NewRoleStore() *RoleStore {
	return &RoleStore{
		rolesByID:   make(map[string]*domain.Role),
		rolesByName: make(map[string]*domain.Role),
	}
}

// Add inserts the role, failing with ErrDuplicateKey if either key collides.
func (s *RoleStore) Add(role *domain.Role) error {
	if role == nil {
		return fmt.Errorf("%w: role must not be nil", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rolesByID[role.ID()]; exists {
		return fmt.Errorf("%w: role id %q", repository.ErrDuplicateKey, role.ID())
	}
	if _, exists := s.rolesByName[role.Name()]; exists {
		return fmt.Errorf("%w: role name %q", repository.ErrDuplicateKey, role.Name())
	}
	s.rolesByID[role.ID()] = role
	s.rolesByName[role.Name()] = role
	return nil
}

// Remove deletes the role from both indexes. The name stays reserved in the
// process-wide registry; removal only affects this store.
func (s *RoleStore) Remove(role *domain.Role) bool {
	if role == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rolesByID[role.ID()]
	if !ok {
		return false
	}
	delete(s.rolesByID, existing.ID())
	delete(s.rolesByName, existing.Name())
	return true
}

// FindByID resolves a role by its generated id.
func (s *RoleStore) FindByID(id string) (*domain.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.rolesByID[id]
	return role, ok
}

// FindByName resolves a role by its unique name.
func (s *RoleStore) FindByName(name string) (*domain.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.rolesByName[name]
	return role, ok
}

// FindAll returns the stored roles in unspecified order.
func (s *RoleStore) FindAll() []*domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Role, 0, len(s.rolesByID))
	for _, role := range s.rolesByID {
		out = append(out, role)
	}
	return out
}

// FindByFilter returns roles matching the predicate. A nil predicate yields
// an empty result by policy.
func (s *RoleStore) FindByFilter(filter domain.RoleFilter) []*domain.Role {
	if filter == nil {
		return []*domain.Role{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Role, 0)
	for _, role := range s.rolesByID {
		if filter(role) {
			out = append(out, role)
		}
	}
	return out
}

// FindAllWith filters, then stable-sorts the filtered result.
func (s *RoleStore) FindAllWith(filter domain.RoleFilter, sorter domain.RoleSorter) []*domain.Role {
	filtered := s.FindByFilter(filter)
	sortStable(filtered, sorter)
	return filtered
}

// Exists reports whether a role with the name is present in this store.
func (s *RoleStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rolesByName[name]
	return ok
}

// AddPermissionToRole grants the permission to the named role, failing with
// ErrNotFound if the role is absent.
func (s *RoleStore) AddPermissionToRole(roleName string, permission domain.Permission) error {
	role, err := s.requireRole(roleName)
	if err != nil {
		return err
	}
	role.AddPermission(permission)
	return nil
}

// RemovePermissionFromRole removes the permission from the named role,
// failing with ErrNotFound if the role is absent.
func (s *RoleStore) RemovePermissionFromRole(roleName string, permission domain.Permission) error {
	role, err := s.requireRole(roleName)
	if err != nil {
		return err
	}
	role.RemovePermission(permission)
	return nil
}

func (s *RoleStore) requireRole(roleName string) (*domain.Role, error) {
	name := strings.TrimSpace(roleName)
	if name == "" {
		return nil, fmt.Errorf("%w: role name must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.rolesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: role %q", repository.ErrNotFound, name)
	}
	return role, nil
}

// FindRolesWithPermission linear-scans all roles' permission sets for a
// case-insensitive (name, resource) match.
func (s *RoleStore) FindRolesWithPermission(permissionName, resource string) ([]*domain.Role, error) {
	name := strings.TrimSpace(permissionName)
	if name == "" {
		return nil, fmt.Errorf("%w: permission name must be non-blank", domain.ErrInvalidArgument)
	}
	res := strings.TrimSpace(resource)
	if res == "" {
		return nil, fmt.Errorf("%w: resource must be non-blank", domain.ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Role, 0)
	for _, role := range s.rolesByID {
		if role.HasPermissionNamed(name, res) {
			out = append(out, role)
		}
	}
	return out, nil
}

// Count reports the number of stored roles.
func (s *RoleStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rolesByID)
}

// Clear empties both indexes. Reserved names remain reserved.
func (s *RoleStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rolesByID = make(map[string]*domain.Role)
	s.rolesByName = make(map[string]*domain.Role)
}
