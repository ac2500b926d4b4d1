package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeep-atiya/Ameyo-crm/internal/models"
	"github.com/sandeep-atiya/Ameyo-crm/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering or renaming to a
	// username that already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// SanitizedUser is the user representation allowed to leave the service
// boundary. It never carries credential material.
type SanitizedUser struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	UserTypeID *int64    `json:"user_type_id"`
	UserType   string    `json:"user_type,omitempty"`
	ProPicture *string   `json:"pro_picture,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Username   string
	Password   string
	ProPicture *string
	UserTypeID *int64
}

// UpdateProfileInput carries the caller-mutable profile fields. Identity,
// role and credential are deliberately absent.
type UpdateProfileInput struct {
	Username   *string
	ProPicture *string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string         `json:"token"`
	User  *SanitizedUser `json:"user"`
}

// AuthService orchestrates registration, login and profile flows.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*SanitizedUser, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, userID int64) (*SanitizedUser, error)
	UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*SanitizedUser, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*SanitizedUser, error) {
	// Advisory lookup for a fast, friendly conflict. The unique index on
	// username is what actually prevents duplicates under concurrency.
	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		ProPicture:   input.ProPicture,
		UserTypeID:   input.UserTypeID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username, "user_id", user.ID)
	return sanitizeUser(user), nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Best-effort telemetry only; nothing security-relevant reads this.
	now := time.Now().UTC()
	if _, err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"password_updated_at": now,
	}); err != nil {
		s.logger.Warn("failed to update login timestamp", "user_id", user.ID, "error", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.UserTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "username", user.Username, "user_id", user.ID)
	return &LoginResult{
		Token: token,
		User:  sanitizeUser(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID int64) (*SanitizedUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*SanitizedUser, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.ProPicture != nil {
		fields["pro_picture"] = *input.ProPicture
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return sanitizeUser(user), nil
}

// sanitizeUser strips credential material before a user leaves the service
// boundary. Every public return path goes through it.
func sanitizeUser(user *models.User) *SanitizedUser {
	if user == nil {
		return nil
	}
	out := &SanitizedUser{
		ID:         user.ID,
		Username:   user.Username,
		UserTypeID: user.UserTypeID,
		ProPicture: user.ProPicture,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
	if user.UserType != nil {
		out.UserType = user.UserType.Name
	}
	return out
}
