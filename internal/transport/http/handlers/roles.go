package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
	"github.com/arklim/access-core/internal/usecase"
)

// RoleHandler exposes role management over HTTP.
type RoleHandler struct {
	roles *usecase.RoleService
}

// NewRoleHandler constructs a RoleHandler.
func NewRoleHandler(roles *usecase.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// RegisterRoutes mounts the role endpoints on the group.
func (h *RoleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateRole)
	r.GET("", h.ListRoles)
	r.GET("/:name", h.GetRole)
	r.POST("/:name/permissions", h.GrantPermission)
	r.DELETE("/:name/permissions", h.RevokePermission)
}

// CreateRole creates a role, optionally seeding permissions.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid role payload"))
		return
	}

	input := usecase.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: make([]usecase.PermissionInput, 0, len(req.Permissions)),
	}
	for _, perm := range req.Permissions {
		input.Permissions = append(input.Permissions, usecase.PermissionInput{
			Name:        perm.Name,
			Resource:    perm.Resource,
			Description: perm.Description,
		})
	}

	role, err := h.roles.CreateRole(c.Request.Context(), input)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: domain.ErrNameConflict, Status: http.StatusConflict, Message: "role name already in use"},
			{Err: repository.ErrDuplicateKey, Status: http.StatusConflict, Message: "role already exists"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid role attributes"},
		}, http.StatusInternalServerError, "failed to create role")
		return
	}

	c.JSON(http.StatusCreated, newRolePayload(role))
}

// ListRoles returns the stored roles ordered by name. An optional
// "with_permission" + "resource" query pair narrows to roles holding that
// capability.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	permissionName := c.Query("with_permission")
	resource := c.Query("resource")

	var (
		roles []*domain.Role
		err   error
	)
	if permissionName != "" || resource != "" {
		roles, err = h.roles.RolesWithPermission(c.Request.Context(), permissionName, resource)
		if err != nil {
			RespondWithMappedError(c, err, []ErrorCase{
				{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "both with_permission and resource are required"},
			}, http.StatusInternalServerError, "failed to list roles")
			return
		}
		slices.SortStableFunc(roles, domain.RolesByName())
	} else {
		roles = h.roles.ListRoles(c.Request.Context(), nil, domain.RolesByName())
	}

	payload := make([]RolePayload, 0, len(roles))
	for _, role := range roles {
		payload = append(payload, newRolePayload(role))
	}
	c.JSON(http.StatusOK, payload)
}

// GetRole resolves one role by name.
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roles.GetRole(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid role name"},
		}, http.StatusInternalServerError, "failed to get role")
		return
	}

	c.JSON(http.StatusOK, newRolePayload(role))
}

// GrantPermission adds a permission to the named role.
func (h *RoleHandler) GrantPermission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid permission payload"))
		return
	}

	permission, err := h.roles.GrantPermission(c.Request.Context(), c.Param("name"), usecase.PermissionInput{
		Name:        req.Name,
		Resource:    req.Resource,
		Description: req.Description,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid permission attributes"},
		}, http.StatusInternalServerError, "failed to grant permission")
		return
	}

	c.JSON(http.StatusCreated, newPermissionPayload(permission))
}

// RevokePermission removes a permission from the named role.
func (h *RoleHandler) RevokePermission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid permission payload"))
		return
	}

	err := h.roles.RevokePermission(c.Request.Context(), c.Param("name"), usecase.PermissionInput{
		Name:     req.Name,
		Resource: req.Resource,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid permission attributes"},
		}, http.StatusInternalServerError, "failed to revoke permission")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "permission revoked"})
}
