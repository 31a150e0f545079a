package domain

import (
	"fmt"
	"strings"

	uuid "github.com/google/uuid"
)

// Role is a uniquely-named aggregate owning a mutable set of permissions.
// Identity is the generated id; the name is reserved process-wide through the
// registry passed at construction.
type Role struct {
	id          string
	name        string
	description string
	permissions map[PermissionKey]Permission
}

// NewRole validates the name, reserves it in the registry, and assigns an
// opaque generated id.
func NewRole(registry *NameRegistry, name, description string) (*Role, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: name registry is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: role name must be non-blank", ErrInvalidArgument)
	}
	if err := registry.Reserve(name); err != nil {
		return nil, err
	}

	return &Role{
		id:          "role_" + uuid.NewString(),
		name:        name,
		description: description,
		permissions: make(map[PermissionKey]Permission),
	}, nil
}

func (r *Role) ID() string          { return r.id }
func (r *Role) Name() string        { return r.name }
func (r *Role) Description() string { return r.description }

// AddPermission is an idempotent set insert.
func (r *Role) AddPermission(p Permission) {
	r.permissions[p.Key()] = p
}

// RemovePermission is an idempotent set delete.
func (r *Role) RemovePermission(p Permission) {
	delete(r.permissions, p.Key())
}

// HasPermission reports membership of the exact permission identity.
func (r *Role) HasPermission(p Permission) bool {
	_, ok := r.permissions[p.Key()]
	return ok
}

// HasPermissionNamed performs a case-insensitive match on name and resource.
func (r *Role) HasPermissionNamed(name, resource string) bool {
	key := PermissionKey{Name: strings.ToUpper(name), Resource: strings.ToUpper(resource)}
	_, ok := r.permissions[key]
	return ok
}

// Permissions returns a copy of the permission set.
func (r *Role) Permissions() []Permission {
	out := make([]Permission, 0, len(r.permissions))
	for _, p := range r.permissions {
		out = append(out, p)
	}
	return out
}

// PermissionCount reports the size of the permission set.
func (r *Role) PermissionCount() int {
	return len(r.permissions)
}

// Equal reports identity equality by generated id.
func (r *Role) Equal(other *Role) bool {
	return other != nil && r.id == other.id
}

// Format renders the role and its permission set for display.
func (r *Role) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Role: %s [ID: %s]\n", r.name, r.id)
	fmt.Fprintf(&sb, "Description: %s\n", r.description)
	fmt.Fprintf(&sb, "Permissions (%d):\n", len(r.permissions))
	for _, p := range r.permissions {
		fmt.Fprintf(&sb, " - %s\n", p.Format())
	}
	return sb.String()
}

func (r *Role) String() string {
	return fmt.Sprintf("Role{name=%q, id=%q}", r.name, r.id)
}
