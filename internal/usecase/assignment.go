package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/core/port"
)

// GrantRoleInput captures the payload for granting a role to a user.
type GrantRoleInput struct {
	Username   string
	RoleName   string
	AssignedBy string
	Reason     string
	// Temporary grants expire at the end of ExpiresAt (ISO-8601 calendar
	// date); permanent grants leave it empty.
	Temporary bool
	ExpiresAt string
	AutoRenew bool
}

// AssignmentService drives the assignment lifecycle: grant, revoke, extend.
type AssignmentService struct {
	users       port.UserRepository
	roles       port.RoleRepository
	assignments port.AssignmentRepository
	clock       domain.Clock
	logger      *zap.Logger
}

// NewAssignmentService constructs an AssignmentService. A nil clock falls back
// to the system clock.
func NewAssignmentService(users port.UserRepository, roles port.RoleRepository, assignments port.AssignmentRepository, clock domain.Clock, logger *zap.Logger) *AssignmentService {
	if clock == nil {
		clock = domain.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{users: users, roles: roles, assignments: assignments, clock: clock, logger: logger}
}

// Grant links the user to the role. The store enforces referential integrity
// and the one-active-assignment-per-pair invariant.
func (s *AssignmentService) Grant(ctx context.Context, input GrantRoleInput) (*domain.RoleAssignment, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}
	assignedBy := strings.TrimSpace(input.AssignedBy)
	if assignedBy == "" {
		return nil, fmt.Errorf("%w: assigned_by is required", domain.ErrInvalidArgument)
	}

	user, ok := s.users.FindByUsername(username)
	if !ok {
		return nil, fmt.Errorf("grant to %q: %w", username, ErrUserNotFound)
	}
	role, ok := s.roles.FindByName(strings.TrimSpace(input.RoleName))
	if !ok {
		return nil, fmt.Errorf("grant role %q: %w", input.RoleName, ErrRoleNotFound)
	}

	metadata := domain.NewMetadata(assignedBy, strings.TrimSpace(input.Reason), s.clock)

	var assignment *domain.RoleAssignment
	var err error
	if input.Temporary {
		expiresAt, parseErr := domain.ParseExpirationDate(input.ExpiresAt)
		if parseErr != nil {
			return nil, fmt.Errorf("grant temporary role: %w", parseErr)
		}
		assignment, err = domain.NewTemporaryAssignment(user, role, metadata, expiresAt, input.AutoRenew, s.clock)
	} else {
		assignment, err = domain.NewPermanentAssignment(user, role, metadata, s.clock)
	}
	if err != nil {
		return nil, fmt.Errorf("build assignment: %w", err)
	}

	if err := s.assignments.Add(assignment); err != nil {
		return nil, fmt.Errorf("add assignment: %w", err)
	}

	s.logger.Info("role granted",
		zap.String("assignment_id", assignment.ID()),
		zap.String("username", username),
		zap.String("role", role.Name()),
		zap.String("kind", string(assignment.Kind())),
	)
	return assignment, nil
}

// Revoke latches a permanent assignment inactive.
func (s *AssignmentService) Revoke(ctx context.Context, assignmentID string) error {
	if err := s.assignments.Revoke(assignmentID); err != nil {
		return fmt.Errorf("revoke assignment: %w", err)
	}

	s.logger.Info("assignment revoked", zap.String("assignment_id", assignmentID))
	return nil
}

// Extend moves a temporary assignment's expiration to the given date.
func (s *AssignmentService) Extend(ctx context.Context, assignmentID, newExpirationDate string) error {
	if err := s.assignments.Extend(assignmentID, newExpirationDate); err != nil {
		return fmt.Errorf("extend assignment: %w", err)
	}

	s.logger.Info("assignment extended",
		zap.String("assignment_id", assignmentID),
		zap.String("expires_at", newExpirationDate),
	)
	return nil
}

// GetAssignment resolves an assignment by id.
func (s *AssignmentService) GetAssignment(ctx context.Context, assignmentID string) (*domain.RoleAssignment, error) {
	id := strings.TrimSpace(assignmentID)
	if id == "" {
		return nil, fmt.Errorf("%w: assignment id is required", domain.ErrInvalidArgument)
	}

	assignment, ok := s.assignments.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("get assignment %q: %w", id, ErrAssignmentNotFound)
	}
	return assignment, nil
}

// ListAssignments returns assignments, optionally filtered and sorted. A nil
// filter lists everything.
func (s *AssignmentService) ListAssignments(ctx context.Context, filter domain.AssignmentFilter, sorter domain.AssignmentSorter) []*domain.RoleAssignment {
	if filter == nil {
		filter = func(*domain.RoleAssignment) bool { return true }
	}
	return s.assignments.FindAllWith(filter, sorter)
}
