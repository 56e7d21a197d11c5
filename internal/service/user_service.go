package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
)

// UserInput carries the fields for a new account.
type UserInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     string
}

// UserUpdate carries the admin-editable fields of an existing account.
type UserUpdate struct {
	Email    string
	FullName string
	Role     string
	IsActive bool
}

// UserService exposes account management operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, in UserInput) (*model.User, error)
	Update(ctx context.Context, id uint, in UserUpdate) error
	Delete(ctx context.Context, actorID, id uint) error
	ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm string) error
}

type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

// NewUserService creates a user management service.
func NewUserService(users repository.UserRepository, log zerolog.Logger) UserService {
	return &userService{users: users, log: log}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, errs.NewValidation("username and password are required")
	}
	role := in.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	user := &model.User{
		Username:     in.Username,
		PasswordHash: auth.HashPassword(in.Password),
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user added")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, in UserUpdate) error {
	role := in.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	if err := s.users.UpdateDetails(ctx, id, in.Email, in.FullName, role, in.IsActive); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Msg("user updated")
	return nil
}

// Delete removes an account. Deleting your own account is forbidden.
func (s *userService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return errs.ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}

// ChangePassword verifies the current password server-side before storing a
// new digest. A confirmation mismatch fails without touching storage.
func (s *userService) ChangePassword(ctx context.Context, userID uint, current, newPassword, confirm string) error {
	if newPassword == "" {
		return errs.NewValidation("new password is required")
	}
	if newPassword != confirm {
		return errs.ErrPasswordMismatch
	}

	ok, err := s.users.MatchesPassword(ctx, userID, auth.HashPassword(current))
	if err != nil {
		return fmt.Errorf("verify current password: %w", err)
	}
	if !ok {
		return errs.NewValidation("current password is incorrect")
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, auth.HashPassword(newPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.log.Info().Uint("user_id", userID).Msg("password changed")
	return nil
}
