package usecase

import "errors"

var (
	// ErrUserNotFound is returned when an operation names an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when an operation names an unknown role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrAssignmentNotFound is returned when an operation names an unknown assignment.
	ErrAssignmentNotFound = errors.New("assignment not found")
)
