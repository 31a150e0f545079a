package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateKey indicates an insert would collide with an existing key.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrMissingReference indicates an assignment names a user or role absent
	// from the canonical stores.
	ErrMissingReference = errors.New("repository: missing reference")
	// ErrConflict indicates an insert would violate the one-active-assignment
	// per (user, role) invariant.
	ErrConflict = errors.New("repository: conflicting active assignment")
)
