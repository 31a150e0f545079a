package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arklim/access-core/internal/core/domain"
)

// ErrorResponse represents a generic error payload with request ID for debugging.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response carrying the request id from context.
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	requestID, _ := c.Get("request_id")
	requestIDStr, _ := requestID.(string)

	return ErrorResponse{
		Error:     errorMsg,
		RequestID: requestIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserPayload describes a user returned by the API.
type UserPayload struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func newUserPayload(u domain.User) UserPayload {
	return UserPayload{Username: u.Username, FullName: u.FullName, Email: u.Email}
}

// UserCreateRequest defines the payload for registering a user.
type UserCreateRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// UserUpdateRequest defines the payload for rebinding a user's mutable attributes.
type UserUpdateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// PermissionPayload describes a permission returned by the API.
type PermissionPayload struct {
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Description string `json:"description,omitempty"`
}

func newPermissionPayload(p domain.Permission) PermissionPayload {
	return PermissionPayload{Name: p.Name, Resource: p.Resource, Description: p.Description}
}

// PermissionRequest defines an incoming permission definition.
type PermissionRequest struct {
	Name        string `json:"name" binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Description string `json:"description"`
}

// RolePayload describes a role returned by the API.
type RolePayload struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Permissions []PermissionPayload `json:"permissions"`
}

func newRolePayload(r *domain.Role) RolePayload {
	permissions := make([]PermissionPayload, 0, r.PermissionCount())
	for _, p := range r.Permissions() {
		permissions = append(permissions, newPermissionPayload(p))
	}
	return RolePayload{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Permissions: permissions,
	}
}

// RoleCreateRequest defines the payload for creating a role.
type RoleCreateRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Permissions []PermissionRequest `json:"permissions"`
}

// AssignmentPayload describes a role assignment returned by the API.
type AssignmentPayload struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Username   string     `json:"username"`
	RoleName   string     `json:"role_name"`
	AssignedBy string     `json:"assigned_by"`
	AssignedAt time.Time  `json:"assigned_at"`
	Reason     string     `json:"reason,omitempty"`
	Active     bool       `json:"active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	AutoRenew  bool       `json:"auto_renew,omitempty"`
	Summary    string     `json:"summary"`
}

func newAssignmentPayload(a *domain.RoleAssignment) AssignmentPayload {
	payload := AssignmentPayload{
		ID:         a.ID(),
		Kind:       string(a.Kind()),
		Username:   a.User().Username,
		RoleName:   a.Role().Name(),
		AssignedBy: a.Metadata().AssignedBy,
		AssignedAt: a.Metadata().AssignedAt,
		Reason:     a.Metadata().Reason,
		Active:     a.IsActive(),
		AutoRenew:  a.AutoRenew(),
		Summary:    a.Summary(),
	}
	if expiresAt, ok := a.ExpiresAt(); ok {
		payload.ExpiresAt = &expiresAt
	}
	return payload
}

// AssignmentCreateRequest defines the payload for granting a role.
type AssignmentCreateRequest struct {
	Username   string `json:"username" binding:"required"`
	RoleName   string `json:"role_name" binding:"required"`
	AssignedBy string `json:"assigned_by" binding:"required"`
	Reason     string `json:"reason"`
	Temporary  bool   `json:"temporary"`
	ExpiresAt  string `json:"expires_at"`
	AutoRenew  bool   `json:"auto_renew"`
}

// AssignmentExtendRequest defines the payload for extending a temporary assignment.
type AssignmentExtendRequest struct {
	ExpiresAt string `json:"expires_at" binding:"required"`
}

// AuthzDecision is the response of an authorization check.
type AuthzDecision struct {
	Granted bool `json:"granted"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
