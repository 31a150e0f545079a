package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/usecase"
)

// AuthzHandler exposes the authorization decision surface over HTTP.
type AuthzHandler struct {
	authz *usecase.AuthorizationService
}

// NewAuthzHandler constructs an AuthzHandler.
func NewAuthzHandler(authz *usecase.AuthorizationService) *AuthzHandler {
	return &AuthzHandler{authz: authz}
}

// RegisterRoutes mounts the authorization endpoints on the group.
func (h *AuthzHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/check-role", h.CheckRole)
	r.GET("/check-permission", h.CheckPermission)
	r.GET("/users/:username/permissions", h.UserPermissions)
}

// CheckRole answers "does user U hold role R right now?".
func (h *AuthzHandler) CheckRole(c *gin.Context) {
	granted, err := h.authz.HasRole(c.Request.Context(), c.Query("username"), c.Query("role"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "failed to check role")
		return
	}

	c.JSON(http.StatusOK, AuthzDecision{Granted: granted})
}

// CheckPermission answers "does user U hold permission P on resource R right now?".
func (h *AuthzHandler) CheckPermission(c *gin.Context) {
	granted, err := h.authz.HasPermission(c.Request.Context(), c.Query("username"), c.Query("permission"), c.Query("resource"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "permission and resource are required"},
		}, http.StatusInternalServerError, "failed to check permission")
		return
	}

	c.JSON(http.StatusOK, AuthzDecision{Granted: granted})
}

// UserPermissions returns the user's effective permission set.
func (h *AuthzHandler) UserPermissions(c *gin.Context) {
	permissions, err := h.authz.UserPermissions(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to resolve permissions")
		return
	}

	payload := make([]PermissionPayload, 0, len(permissions))
	for _, permission := range permissions {
		payload = append(payload, newPermissionPayload(permission))
	}
	c.JSON(http.StatusOK, payload)
}
