package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeep-atiya/Ameyo-crm/internal/respond"
	"github.com/sandeep-atiya/Ameyo-crm/internal/service"
)

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// UpdateUserRequest represents the admin user update payload.
type UpdateUserRequest struct {
	Username   *string `json:"username" binding:"omitempty,min=3,max=50"`
	ProPicture *string `json:"pro_picture" binding:"omitempty,url,max=200"`
	UserTypeID *int64  `json:"user_type_id"`
}

// List godoc
// @Summary List users
// @Description Get all users with pagination
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Records per page" default(10)
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.userService.List(c.Request.Context(), page, limit)
	if err != nil {
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusOK, "Users retrieved successfully", result)
}

// GetByID godoc
// @Summary Get user by ID
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /api/users/{userId} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// Update godoc
// @Summary Update user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body UpdateUserRequest true "User fields"
// @Success 200 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /api/users/{userId} [put]
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", bindingErrors(err))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, service.UpdateUserInput{
		Username:   req.Username,
		ProPicture: req.ProPicture,
		UserTypeID: req.UserTypeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "Username already exists")
		default:
			respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		}
		return
	}

	respond.Success(c, http.StatusOK, "User updated successfully", gin.H{"user": user})
}

// Delete godoc
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /api/users/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func pathUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID < 1 {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", []respond.FieldError{
			{Field: "userId", Message: "userId must be a positive integer"},
		})
		return 0, false
	}
	return userID, true
}
