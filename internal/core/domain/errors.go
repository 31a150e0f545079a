package domain

import "errors"

var (
	// ErrInvalidArgument indicates malformed or missing input detected at a constructor or mutating call.
	ErrInvalidArgument = errors.New("domain: invalid argument")
	// ErrInvalidState indicates the operation is not valid for the entity's current variant or state.
	ErrInvalidState = errors.New("domain: invalid state")
	// ErrNameConflict indicates a role name was already reserved within this process.
	ErrNameConflict = errors.New("domain: role name already in use")
)
