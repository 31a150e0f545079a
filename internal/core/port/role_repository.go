package port

import "github.com/arklim/access-core/internal/core/domain"

// RoleRepository is the canonical collection of roles, keyed by both the
// generated id and the unique name; both keys resolve to the same entity.
type RoleRepository interface {
	Repository[*domain.Role]

	FindByName(name string) (*domain.Role, bool)
	FindByFilter(filter domain.RoleFilter) []*domain.Role
	FindAllWith(filter domain.RoleFilter, sorter domain.RoleSorter) []*domain.Role
	Exists(name string) bool
	AddPermissionToRole(roleName string, permission domain.Permission) error
	RemovePermissionFromRole(roleName string, permission domain.Permission) error
	FindRolesWithPermission(permissionName, resource string) ([]*domain.Role, error)
}
