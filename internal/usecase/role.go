package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/core/port"
	"github.com/arklim/access-core/internal/repository"
)

// PermissionInput represents an incoming permission definition.
type PermissionInput struct {
	Name        string
	Resource    string
	Description string
}

// CreateRoleInput captures the payload for creating a role.
type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []PermissionInput
}

// RoleService manages roles and their permission sets.
type RoleService struct {
	registry *domain.NameRegistry
	roles    port.RoleRepository
	logger   *zap.Logger
}

// NewRoleService constructs a RoleService over the process-wide name registry
// and the canonical role store.
func NewRoleService(registry *domain.NameRegistry, roles port.RoleRepository, logger *zap.Logger) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleService{registry: registry, roles: roles, logger: logger}
}

// CreateRole reserves the name, builds the role with any seed permissions, and
// inserts it into the store.
func (s *RoleService) CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error) {
	role, err := domain.NewRole(s.registry, strings.TrimSpace(input.Name), input.Description)
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	for _, permInput := range input.Permissions {
		permission, err := domain.NewPermission(permInput.Name, permInput.Resource, permInput.Description)
		if err != nil {
			return nil, fmt.Errorf("seed permission %q: %w", permInput.Name, err)
		}
		role.AddPermission(permission)
	}

	if err := s.roles.Add(role); err != nil {
		return nil, fmt.Errorf("add role: %w", err)
	}

	s.logger.Info("role created",
		zap.String("role_id", role.ID()),
		zap.String("name", role.Name()),
		zap.Int("permissions", role.PermissionCount()),
	)
	return role, nil
}

// GetRole resolves a role by name.
func (s *RoleService) GetRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrInvalidArgument)
	}

	role, ok := s.roles.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("get role %q: %w", name, repository.ErrNotFound)
	}
	return role, nil
}

// ListRoles returns the stored roles, optionally filtered and sorted. A nil
// filter lists everything.
func (s *RoleService) ListRoles(ctx context.Context, filter domain.RoleFilter, sorter domain.RoleSorter) []*domain.Role {
	if filter == nil {
		filter = func(*domain.Role) bool { return true }
	}
	return s.roles.FindAllWith(filter, sorter)
}

// GrantPermission adds a permission to the named role.
func (s *RoleService) GrantPermission(ctx context.Context, roleName string, input PermissionInput) (domain.Permission, error) {
	permission, err := domain.NewPermission(input.Name, input.Resource, input.Description)
	if err != nil {
		return domain.Permission{}, fmt.Errorf("build permission: %w", err)
	}

	if err := s.roles.AddPermissionToRole(strings.TrimSpace(roleName), permission); err != nil {
		return domain.Permission{}, fmt.Errorf("grant permission to %q: %w", roleName, err)
	}

	s.logger.Info("permission granted",
		zap.String("role", roleName),
		zap.String("permission", permission.Name),
		zap.String("resource", permission.Resource),
	)
	return permission, nil
}

// RevokePermission removes a permission from the named role, matched by
// identity only. Removing a permission the role does not hold is a no-op.
func (s *RoleService) RevokePermission(ctx context.Context, roleName string, input PermissionInput) error {
	permission, err := domain.PermissionRef(input.Name, input.Resource)
	if err != nil {
		return fmt.Errorf("build permission: %w", err)
	}

	if err := s.roles.RemovePermissionFromRole(strings.TrimSpace(roleName), permission); err != nil {
		return fmt.Errorf("revoke permission from %q: %w", roleName, err)
	}

	s.logger.Info("permission revoked",
		zap.String("role", roleName),
		zap.String("permission", permission.Name),
		zap.String("resource", permission.Resource),
	)
	return nil
}

// RolesWithPermission returns every role holding a permission matching the
// (name, resource) pair.
func (s *RoleService) RolesWithPermission(ctx context.Context, permissionName, resource string) ([]*domain.Role, error) {
	roles, err := s.roles.FindRolesWithPermission(permissionName, resource)
	if err != nil {
		return nil, fmt.Errorf("find roles with permission: %w", err)
	}
	return roles, nil
}
