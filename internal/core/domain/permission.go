package domain

import (
	"fmt"
	"strings"
)

// Permission is an immutable named capability on a resource. Name and resource
// are normalized to uppercase at construction; two permissions are equal iff
// their normalized name and resource match, regardless of description.
type Permission struct {
	Name        string
	Resource    string
	Description string
}

// PermissionKey identifies a permission. Descriptions do not participate in
// identity, so sets of permissions are keyed by this pair.
type PermissionKey struct {
	Name     string
	Resource string
}

// NewPermission validates and normalizes a permission definition.
func NewPermission(name, resource, description string) (Permission, error) {
	if strings.TrimSpace(name) == "" {
		return Permission{}, fmt.Errorf("%w: permission name must be non-blank", ErrInvalidArgument)
	}
	if strings.ContainsAny(name, " \t\n") {
		return Permission{}, fmt.Errorf("%w: permission name must not contain whitespace", ErrInvalidArgument)
	}
	if strings.TrimSpace(resource) == "" {
		return Permission{}, fmt.Errorf("%w: permission resource must be non-blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(description) == "" {
		return Permission{}, fmt.Errorf("%w: permission description must be non-blank", ErrInvalidArgument)
	}

	return Permission{
		Name:        strings.ToUpper(name),
		Resource:    strings.ToUpper(strings.TrimSpace(resource)),
		Description: description,
	}, nil
}

// PermissionRef builds a normalized permission identity for lookups and
// removals, where no description is needed. It fails on a blank name or
// resource but skips the whitespace and description rules.
func PermissionRef(name, resource string) (Permission, error) {
	if strings.TrimSpace(name) == "" {
		return Permission{}, fmt.Errorf("%w: permission name must be non-blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(resource) == "" {
		return Permission{}, fmt.Errorf("%w: permission resource must be non-blank", ErrInvalidArgument)
	}
	return Permission{
		Name:     strings.ToUpper(name),
		Resource: strings.ToUpper(strings.TrimSpace(resource)),
	}, nil
}

// Key returns the identity of the permission.
func (p Permission) Key() PermissionKey {
	return PermissionKey{Name: p.Name, Resource: p.Resource}
}

// Equal reports identity equality: name and resource match, description ignored.
func (p Permission) Equal(other Permission) bool {
	return p.Key() == other.Key()
}

// Matches performs a case-insensitive substring test against both patterns.
// An empty pattern matches anything.
func (p Permission) Matches(namePattern, resourcePattern string) bool {
	nameOK := namePattern == "" || strings.Contains(p.Name, strings.ToUpper(namePattern))
	resourceOK := resourcePattern == "" || strings.Contains(p.Resource, strings.ToUpper(resourcePattern))
	return nameOK && resourceOK
}

// Format renders the permission for display.
func (p Permission) Format() string {
	return fmt.Sprintf("%s on %s: %s", p.Name, p.Resource, p.Description)
}
