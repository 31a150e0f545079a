package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
	"github.com/arklim/access-core/internal/usecase"
)

// AssignmentHandler exposes the assignment lifecycle over HTTP.
type AssignmentHandler struct {
	assignments *usecase.AssignmentService
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(assignments *usecase.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// RegisterRoutes mounts the assignment endpoints on the group.
func (h *AssignmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Grant)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.POST("/:id/revoke", h.Revoke)
	r.POST("/:id/extend", h.Extend)
}

// Grant creates a permanent or temporary assignment.
func (h *AssignmentHandler) Grant(c *gin.Context) {
	var req AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid assignment payload"))
		return
	}

	assignment, err := h.assignments.Grant(c.Request.Context(), usecase.GrantRoleInput{
		Username:   req.Username,
		RoleName:   req.RoleName,
		AssignedBy: req.AssignedBy,
		Reason:     req.Reason,
		Temporary:  req.Temporary,
		ExpiresAt:  req.ExpiresAt,
		AutoRenew:  req.AutoRenew,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusBadRequest, Message: "user not found"},
			{Err: usecase.ErrRoleNotFound, Status: http.StatusBadRequest, Message: "role not found"},
			{Err: repository.ErrMissingReference, Status: http.StatusBadRequest, Message: "user and role must exist before assignment"},
			{Err: repository.ErrConflict, Status: http.StatusConflict, Message: "user already holds an active assignment for this role"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid assignment attributes"},
		}, http.StatusInternalServerError, "failed to grant role")
		return
	}

	c.JSON(http.StatusCreated, newAssignmentPayload(assignment))
}

// List returns assignments sorted by grant date. The optional "status" query
// narrows to active or inactive, and "username" to one assignee.
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter domain.AssignmentFilter

	switch c.Query("status") {
	case "active":
		filter = domain.AssignmentActiveOnly()
	case "inactive":
		filter = domain.AssignmentInactiveOnly()
	case "":
		filter = func(*domain.RoleAssignment) bool { return true }
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "status must be active or inactive"))
		return
	}

	if username := c.Query("username"); username != "" {
		byUser, err := domain.AssignmentByUsername(username)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid username filter"))
			return
		}
		filter = filter.And(byUser)
	}

	assignments := h.assignments.ListAssignments(c.Request.Context(), filter, domain.AssignmentsByDate())

	payload := make([]AssignmentPayload, 0, len(assignments))
	for _, assignment := range assignments {
		payload = append(payload, newAssignmentPayload(assignment))
	}
	c.JSON(http.StatusOK, payload)
}

// Get resolves one assignment by id.
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignments.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrAssignmentNotFound, Status: http.StatusNotFound, Message: "assignment not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid assignment id"},
		}, http.StatusInternalServerError, "failed to get assignment")
		return
	}

	c.JSON(http.StatusOK, newAssignmentPayload(assignment))
}

// Revoke latches a permanent assignment inactive.
func (h *AssignmentHandler) Revoke(c *gin.Context) {
	if err := h.assignments.Revoke(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "assignment not found"},
			{Err: domain.ErrInvalidState, Status: http.StatusConflict, Message: "only permanent assignments can be revoked"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid assignment id"},
		}, http.StatusInternalServerError, "failed to revoke assignment")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "assignment revoked"})
}

// Extend moves a temporary assignment's expiration forward.
func (h *AssignmentHandler) Extend(c *gin.Context) {
	var req AssignmentExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid extend payload"))
		return
	}

	if err := h.assignments.Extend(c.Request.Context(), c.Param("id"), req.ExpiresAt); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "assignment not found"},
			{Err: domain.ErrInvalidState, Status: http.StatusConflict, Message: "only temporary assignments can be extended"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "expiration must be an ISO-8601 date"},
		}, http.StatusInternalServerError, "failed to extend assignment")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "assignment extended"})
}
