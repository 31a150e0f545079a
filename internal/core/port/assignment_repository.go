package port

import "github.com/arklim/access-core/internal/core/domain"

// AssignmentRepository stores role assignments and answers authorization
// queries. It is the sole authorization decision surface: hosting code must
// route access checks through UserHasRole/UserHasPermission/UserPermissions
// rather than inspecting raw assignment lists, so that activity derivation
// stays centralized.
type AssignmentRepository interface {
	Repository[*domain.RoleAssignment]

	FindByUser(user domain.User) []*domain.RoleAssignment
	FindByRole(role *domain.Role) []*domain.RoleAssignment
	// FindByFilter returns assignments matching the predicate. A nil
	// predicate yields an empty result by policy.
	FindByFilter(filter domain.AssignmentFilter) []*domain.RoleAssignment
	FindAllWith(filter domain.AssignmentFilter, sorter domain.AssignmentSorter) []*domain.RoleAssignment
	ActiveAssignments() []*domain.RoleAssignment
	ExpiredAssignments() []*domain.RoleAssignment

	UserHasRole(user domain.User, role *domain.Role) bool
	UserHasPermission(user domain.User, permissionName, resource string) bool
	// UserPermissions computes the deduplicated union of permissions across
	// the user's currently active assignments, freshly on every call.
	UserPermissions(user domain.User) []domain.Permission

	Revoke(assignmentID string) error
	Extend(assignmentID, newExpirationDate string) error
}
