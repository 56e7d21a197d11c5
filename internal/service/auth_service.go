package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/model"
	"clientdesk/internal/repository"
)

// AuthService handles credential checks.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

// NewAuthService creates an authentication service.
func NewAuthService(users repository.UserRepository, log zerolog.Logger) AuthService {
	return &authService{users: users, log: log}
}

// Login verifies username and password against the stored digest. Failures
// never reveal whether the username existed. On success last_login is
// updated before the user record is returned.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.users.FindByCredentials(ctx, username, auth.HashPassword(password))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn().Str("username", username).Msg("failed login attempt")
			return nil, errs.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up credentials: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Stale last_login is not worth failing an otherwise valid login.
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to update last_login")
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in successfully")
	return user, nil
}
