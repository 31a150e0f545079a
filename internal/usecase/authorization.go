package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/core/port"
)

// AuthorizationService is the sole authorization decision surface. Every
// access-control question a hosting application asks must route through it,
// keeping activity derivation centralized in the assignment store.
type AuthorizationService struct {
	users       port.UserRepository
	roles       port.RoleRepository
	assignments port.AssignmentRepository
	logger      *zap.Logger
}

// NewAuthorizationService constructs an AuthorizationService.
func NewAuthorizationService(users port.UserRepository, roles port.RoleRepository, assignments port.AssignmentRepository, logger *zap.Logger) *AuthorizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthorizationService{users: users, roles: roles, assignments: assignments, logger: logger}
}

// HasRole reports whether the user currently holds the role through an active
// assignment.
func (s *AuthorizationService) HasRole(ctx context.Context, username, roleName string) (bool, error) {
	user, ok := s.users.FindByUsername(strings.TrimSpace(username))
	if !ok {
		return false, fmt.Errorf("check role for %q: %w", username, ErrUserNotFound)
	}
	role, ok := s.roles.FindByName(strings.TrimSpace(roleName))
	if !ok {
		return false, fmt.Errorf("check role %q: %w", roleName, ErrRoleNotFound)
	}

	granted := s.assignments.UserHasRole(user, role)
	s.logger.Debug("role check",
		zap.String("username", user.Username),
		zap.String("role", role.Name()),
		zap.Bool("granted", granted),
	)
	return granted, nil
}

// HasPermission reports whether the user holds the (permission, resource)
// capability through any active assignment.
func (s *AuthorizationService) HasPermission(ctx context.Context, username, permissionName, resource string) (bool, error) {
	user, ok := s.users.FindByUsername(strings.TrimSpace(username))
	if !ok {
		return false, fmt.Errorf("check permission for %q: %w", username, ErrUserNotFound)
	}
	if strings.TrimSpace(permissionName) == "" {
		return false, fmt.Errorf("%w: permission name is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(resource) == "" {
		return false, fmt.Errorf("%w: resource is required", domain.ErrInvalidArgument)
	}

	granted := s.assignments.UserHasPermission(user, permissionName, resource)
	s.logger.Debug("permission check",
		zap.String("username", user.Username),
		zap.String("permission", permissionName),
		zap.String("resource", resource),
		zap.Bool("granted", granted),
	)
	return granted, nil
}

// UserPermissions returns the user's effective permission set, computed
// freshly from the currently active assignments.
func (s *AuthorizationService) UserPermissions(ctx context.Context, username string) ([]domain.Permission, error) {
	user, ok := s.users.FindByUsername(strings.TrimSpace(username))
	if !ok {
		return nil, fmt.Errorf("resolve permissions for %q: %w", username, ErrUserNotFound)
	}
	return s.assignments.UserPermissions(user), nil
}
