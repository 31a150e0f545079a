package domain

import "strings"

// Sorters are total orderings used with the stores' FindAllWith queries.
// Comparisons on fields that may be absent (a nil role reference) order the
// absent value first.

// UserSorter compares two users; negative means a sorts before b.
type UserSorter func(a, b User) int

// RoleSorter compares two roles.
type RoleSorter func(a, b *Role) int

// AssignmentSorter compares two assignments.
type AssignmentSorter func(a, b *RoleAssignment) int

// UsersByUsername orders users lexicographically by username.
func UsersByUsername() UserSorter {
	return func(a, b User) int { return strings.Compare(a.Username, b.Username) }
}

// UsersByFullName orders users lexicographically by full name.
func UsersByFullName() UserSorter {
	return func(a, b User) int { return strings.Compare(a.FullName, b.FullName) }
}

// UsersByEmail orders users lexicographically by email.
func UsersByEmail() UserSorter {
	return func(a, b User) int { return strings.Compare(a.Email, b.Email) }
}

// RolesByName orders roles lexicographically by name, nil roles first.
func RolesByName() RoleSorter {
	return func(a, b *Role) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	}
}

// RolesByPermissionCount orders roles by the size of their permission set.
func RolesByPermissionCount() RoleSorter {
	return func(a, b *Role) int {
		return permissionCount(a) - permissionCount(b)
	}
}

func permissionCount(r *Role) int {
	if r == nil {
		return 0
	}
	return r.PermissionCount()
}

// AssignmentsByUsername orders assignments by the assignee's username.
func AssignmentsByUsername() AssignmentSorter {
	return func(a, b *RoleAssignment) int {
		return strings.Compare(assignmentUsername(a), assignmentUsername(b))
	}
}

// AssignmentsByRoleName orders assignments by the role name, nil roles first.
func AssignmentsByRoleName() AssignmentSorter {
	return func(a, b *RoleAssignment) int {
		return strings.Compare(assignmentRoleName(a), assignmentRoleName(b))
	}
}

// AssignmentsByDate orders assignments by when they were granted.
func AssignmentsByDate() AssignmentSorter {
	return func(a, b *RoleAssignment) int {
		at, bt := a.Metadata().AssignedAt, b.Metadata().AssignedAt
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	}
}

func assignmentUsername(a *RoleAssignment) string {
	if a == nil {
		return ""
	}
	return a.User().Username
}

func assignmentRoleName(a *RoleAssignment) string {
	if a == nil || a.Role() == nil {
		return ""
	}
	return a.Role().Name()
}
