package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sandeep-atiya/Ameyo-crm/internal/repository"
)

// Pagination defaults and bounds for user listings.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// UserList is a paginated page of sanitized users.
type UserList struct {
	Users      []*SanitizedUser `json:"users"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"total_pages"`
}

// UpdateUserInput carries admin-mutable fields. Credentials are not
// updatable through this path.
type UpdateUserInput struct {
	Username   *string
	ProPicture *string
	UserTypeID *int64
}

// UserService handles user management operations.
type UserService interface {
	List(ctx context.Context, page, limit int) (*UserList, error)
	GetByID(ctx context.Context, userID int64) (*SanitizedUser, error)
	Update(ctx context.Context, userID int64, input UpdateUserInput) (*SanitizedUser, error)
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) List(ctx context.Context, page, limit int) (*UserList, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	users, total, err := s.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	sanitized := make([]*SanitizedUser, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, sanitizeUser(&users[i]))
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &UserList{
		Users:      sanitized,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, userID int64) (*SanitizedUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, userID int64, input UpdateUserInput) (*SanitizedUser, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.ProPicture != nil {
		fields["pro_picture"] = *input.ProPicture
	}
	if input.UserTypeID != nil {
		fields["user_type_id"] = *input.UserTypeID
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, userID)
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

	s.logger.Info("user updated", "user_id", userID)
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
