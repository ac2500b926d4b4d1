// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeep-atiya/Ameyo-crm/internal/middleware"
	"github.com/sandeep-atiya/Ameyo-crm/internal/respond"
	"github.com/sandeep-atiya/Ameyo-crm/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=50"`
	Password   string  `json:"password" binding:"required,min=8"`
	ProPicture *string `json:"pro_picture" binding:"omitempty,url,max=200"`
	UserTypeID *int64  `json:"user_type_id"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the profile update payload. Only the
// allow-listed fields are present; role and credentials are not mutable
// through this endpoint.
type UpdateProfileRequest struct {
	Username   *string `json:"username" binding:"omitempty,min=3,max=50"`
	ProPicture *string `json:"pro_picture" binding:"omitempty,url,max=200"`
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Failure 409 {object} respond.Envelope
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", bindingErrors(err))
		return
	}
	if fieldErrs := validatePassword(req.Password); len(fieldErrs) > 0 {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", fieldErrs)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		ProPicture: req.ProPicture,
		UserTypeID: req.UserTypeID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			respond.Error(c, http.StatusConflict, "Username already exists")
			return
		}
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusCreated, "User registered successfully", gin.H{"user": user})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return a JWT bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", bindingErrors(err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown user and wrong password.
			respond.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// GetProfile godoc
// @Summary Get authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, middleware.MsgNoToken)
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.LogAndError(c, h.logger, http.StatusInternalServerError, err, "Something went wrong")
		return
	}

	respond.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateProfile godoc
// @Summary Update authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} respond.Envelope
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, middleware.MsgNoToken)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, http.StatusBadRequest, "Validation failed", bindingErrors(err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Username:   req.Username,
		ProPicture: req.ProPicture,
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

	respond.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}
