package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/repository"
	"github.com/arklim/access-core/internal/usecase"
)

// UserHandler exposes the user directory over HTTP.
type UserHandler struct {
	directory *usecase.DirectoryService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(directory *usecase.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// RegisterRoutes mounts the user endpoints on the group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateUser)
	r.GET("", h.ListUsers)
	r.GET("/:username", h.GetUser)
	r.PUT("/:username", h.UpdateUser)
	r.DELETE("/:username", h.DeleteUser)
}

// CreateUser registers a validated user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	user, err := h.directory.RegisterUser(c.Request.Context(), usecase.RegisterUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid user attributes"},
			{Err: repository.ErrDuplicateKey, Status: http.StatusConflict, Message: "username already taken"},
		}, http.StatusInternalServerError, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, newUserPayload(user))
}

// ListUsers returns the directory ordered by username.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.directory.ListUsers(c.Request.Context(), nil, domain.UsersByUsername())

	payload := make([]UserPayload, 0, len(users))
	for _, user := range users {
		payload = append(payload, newUserPayload(user))
	}
	c.JSON(http.StatusOK, payload)
}

// GetUser resolves one user by username.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.directory.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid username"},
		}, http.StatusInternalServerError, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, newUserPayload(user))
}

// UpdateUser rebinds the stored user's full name and email.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid update payload"))
		return
	}

	user, err := h.directory.UpdateUser(c.Request.Context(), c.Param("username"), usecase.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid user attributes"},
		}, http.StatusInternalServerError, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, newUserPayload(user))
}

// DeleteUser removes the user from the directory.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.directory.RemoveUser(c.Request.Context(), c.Param("username")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: domain.ErrInvalidArgument, Status: http.StatusBadRequest, Message: "invalid username"},
		}, http.StatusInternalServerError, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user removed"})
}
