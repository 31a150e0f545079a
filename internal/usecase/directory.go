package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/access-core/internal/core/domain"
	"github.com/arklim/access-core/internal/core/port"
	"github.com/arklim/access-core/internal/repository"
)

// RegisterUserInput captures the payload for registering a user.
type RegisterUserInput struct {
	Username string
	FullName string
	Email    string
}

// UpdateUserInput captures the mutable attributes rebound by an update.
type UpdateUserInput struct {
	FullName string
	Email    string
}

// DirectoryService manages the user directory.
type DirectoryService struct {
	users  port.UserRepository
	logger *zap.Logger
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(users port.UserRepository, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{users: users, logger: logger}
}

// RegisterUser validates the identity triple and inserts it into the store.
func (s *DirectoryService) RegisterUser(ctx context.Context, input RegisterUserInput) (domain.User, error) {
	user, err := domain.ValidateUser(input.Username, input.FullName, input.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("validate user: %w", err)
	}

	if err := s.users.Add(user); err != nil {
		return domain.User{}, fmt.Errorf("add user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// GetUser resolves a user by username.
func (s *DirectoryService) GetUser(ctx context.Context, username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}

	user, ok := s.users.FindByUsername(username)
	if !ok {
		return domain.User{}, fmt.Errorf("get user %q: %w", username, repository.ErrNotFound)
	}
	return user, nil
}

// UpdateUser rebinds the stored user's full name and email. The new email must
// pass the same format rule as registration.
func (s *DirectoryService) UpdateUser(ctx context.Context, username string, input UpdateUserInput) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrInvalidArgument)
	}
	if _, err := domain.ValidateUser(username, input.FullName, input.Email); err != nil {
		return domain.User{}, fmt.Errorf("validate update: %w", err)
	}

	if err := s.users.Update(username, input.FullName, input.Email); err != nil {
		return domain.User{}, fmt.Errorf("update user %q: %w", username, err)
	}

	s.logger.Info("user updated", zap.String("username", username))
	user, _ := s.users.FindByUsername(username)
	return user, nil
}

// RemoveUser deletes the user from the directory.
func (s *DirectoryService) RemoveUser(ctx context.Context, username string) error {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}

	if !s.users.Remove(user) {
		return fmt.Errorf("remove user %q: %w", username, repository.ErrNotFound)
	}

	s.logger.Info("user removed", zap.String("username", username))
	return nil
}

// ListUsers returns the directory, optionally filtered and sorted. A nil
// filter lists everything.
func (s *DirectoryService) ListUsers(ctx context.Context, filter domain.UserFilter, sorter domain.UserSorter) []domain.User {
	if filter == nil {
		filter = func(domain.User) bool { return true }
	}
	return s.users.FindAllWith(filter, sorter)
}
