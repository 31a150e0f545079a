package domain

import (
	"fmt"
	"strings"
)

// RoleFilter is a composable predicate over roles.
type RoleFilter func(*Role) bool

// And composes both predicates conjunctively.
func (f RoleFilter) And(other RoleFilter) RoleFilter {
	return func(r *Role) bool { return f(r) && other(r) }
}

// Or composes both predicates disjunctively.
func (f RoleFilter) Or(other RoleFilter) RoleFilter {
	return func(r *Role) bool { return f(r) || other(r) }
}

// RoleByName matches the exact role name.
func RoleByName(name string) (RoleFilter, error) {
	expected, err := trimmedArg(name, "name")
	if err != nil {
		return nil, err
	}
	return func(r *Role) bool { return r != nil && r.Name() == expected }, nil
}

// RoleByNameContains matches role names containing the substring, case-insensitively.
func RoleByNameContains(substring string) (RoleFilter, error) {
	part, err := trimmedArg(substring, "substring")
	if err != nil {
		return nil, err
	}
	part = strings.ToLower(part)
	return func(r *Role) bool { return r != nil && strings.Contains(strings.ToLower(r.Name()), part) }, nil
}

// RoleHasPermission matches roles whose set contains the permission identity.
func RoleHasPermission(p Permission) RoleFilter {
	return func(r *Role) bool { return r != nil && r.HasPermission(p) }
}

// RoleHasPermissionNamed matches roles holding a permission with the given
// name and resource, case-insensitively.
func RoleHasPermissionNamed(permissionName, resource string) (RoleFilter, error) {
	name, err := trimmedArg(permissionName, "permissionName")
	if err != nil {
		return nil, err
	}
	res, err := trimmedArg(resource, "resource")
	if err != nil {
		return nil, err
	}
	return func(r *Role) bool { return r != nil && r.HasPermissionNamed(name, res) }, nil
}

// RoleHasAtLeastNPermissions matches roles with a permission set of at least n.
func RoleHasAtLeastNPermissions(n int) (RoleFilter, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0", ErrInvalidArgument)
	}
	return func(r *Role) bool { return r != nil && r.PermissionCount() >= n }, nil
}
