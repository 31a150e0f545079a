package domain

import (
	"fmt"
	"sync"
)

// NameRegistry is the authoritative namespace for role names. A reserved name
// stays reserved for the registry's lifetime, even after the role is removed
// from every store. Check-then-insert is atomic under a single lock so that a
// race between two creations with the same name yields exactly one success.
type NameRegistry struct {
	mu   sync.Mutex
	used map[string]struct{}
}

// NewNameRegistry builds an empty registry. Production wiring shares one
// registry process-wide; tests isolate namespaces by constructing their own.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{used: make(map[string]struct{})}
}

// Reserve claims a role name or fails with ErrNameConflict if it was ever
// reserved before.
func (r *NameRegistry) Reserve(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.used[name]; taken {
		return fmt.Errorf("%w: %q", ErrNameConflict, name)
	}
	r.used[name] = struct{}{}
	return nil
}

// Reserved reports whether the name has been claimed.
func (r *NameRegistry) Reserved(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken := r.used[name]
	return taken
}
