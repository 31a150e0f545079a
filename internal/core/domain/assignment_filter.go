package domain

import "strings"

// AssignmentFilter is a composable predicate over role assignments.
type AssignmentFilter func(*RoleAssignment) bool

// And composes both predicates conjunctively.
func (f AssignmentFilter) And(other AssignmentFilter) AssignmentFilter {
	return func(a *RoleAssignment) bool { return f(a) && other(a) }
}

// Or composes both predicates disjunctively.
func (f AssignmentFilter) Or(other AssignmentFilter) AssignmentFilter {
	return func(a *RoleAssignment) bool { return f(a) || other(a) }
}

// AssignmentByUser matches assignments granted to the user, by username identity.
func AssignmentByUser(user User) AssignmentFilter {
	return func(a *RoleAssignment) bool { return a != nil && a.User().Username == user.Username }
}

// AssignmentByUsername matches assignments granted to the exact username.
func AssignmentByUsername(username string) (AssignmentFilter, error) {
	expected, err := trimmedArg(username, "username")
	if err != nil {
		return nil, err
	}
	return func(a *RoleAssignment) bool { return a != nil && a.User().Username == expected }, nil
}

// AssignmentByRole matches assignments of the role, by id identity.
func AssignmentByRole(role *Role) AssignmentFilter {
	return func(a *RoleAssignment) bool { return a != nil && a.Role().Equal(role) }
}

// AssignmentByRoleName matches assignments of the exactly-named role.
func AssignmentByRoleName(roleName string) (AssignmentFilter, error) {
	expected, err := trimmedArg(roleName, "roleName")
	if err != nil {
		return nil, err
	}
	return func(a *RoleAssignment) bool { return a != nil && a.Role() != nil && a.Role().Name() == expected }, nil
}

// AssignmentActiveOnly matches currently active assignments. Activity is
// re-derived from the clock at evaluation time.
func AssignmentActiveOnly() AssignmentFilter {
	return func(a *RoleAssignment) bool { return a != nil && a.IsActive() }
}

// AssignmentInactiveOnly matches revoked or expired assignments.
func AssignmentInactiveOnly() AssignmentFilter {
	return func(a *RoleAssignment) bool { return a != nil && !a.IsActive() }
}

// AssignmentByKind matches the assignment variant, case-insensitively.
func AssignmentByKind(kind string) (AssignmentFilter, error) {
	raw, err := trimmedArg(kind, "kind")
	if err != nil {
		return nil, err
	}
	expected := AssignmentKind(strings.ToUpper(raw))
	return func(a *RoleAssignment) bool { return a != nil && a.Kind() == expected }, nil
}

// AssignmentAssignedBy matches assignments granted by the given principal.
func AssignmentAssignedBy(username string) (AssignmentFilter, error) {
	expected, err := trimmedArg(username, "username")
	if err != nil {
		return nil, err
	}
	return func(a *RoleAssignment) bool { return a != nil && a.Metadata().AssignedBy == expected }, nil
}

// AssignmentAssignedAfter matches assignments granted strictly after the
// ISO-8601 calendar date.
func AssignmentAssignedAfter(date string) (AssignmentFilter, error) {
	threshold, err := ParseExpirationDate(date)
	if err != nil {
		return nil, err
	}
	return func(a *RoleAssignment) bool { return a != nil && a.Metadata().AssignedAt.After(threshold) }, nil
}

// AssignmentExpiringBefore matches temporary assignments whose expiration is
// strictly before the ISO-8601 calendar date. Permanent assignments never match.
func AssignmentExpiringBefore(date string) (AssignmentFilter, error) {
	threshold, err := ParseExpirationDate(date)
	if err != nil {
		return nil, err
	}
	return func(a *RoleAssignment) bool {
		if a == nil {
			return false
		}
		expiresAt, ok := a.ExpiresAt()
		return ok && expiresAt.Before(threshold)
	}, nil
}
