package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/refindhq/refind/internal/models"
	"github.com/refindhq/refind/pkg/auth"
	"github.com/refindhq/refind/pkg/logger"
)

// TokenGenerator defines the interface for issuing session tokens
type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, error)
}

// AuthService handles registration and login
type AuthService struct {
	users  UserRepository
	tokens TokenGenerator
	logger *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserRepository, tokens TokenGenerator, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		s.logger.Info("registration rejected: email in use",
			slog.String("email", logger.SanitizedEmail(user.Email)))
		return nil, models.ErrConflict
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing user", slog.Any("error", err))
		return nil, err
	}

	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	user.PasswordHash = hashed

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", created.ID))
	return created, nil
}

// Login verifies credentials, stamps last_login, and issues a token.
// The previous last_login is returned to the caller through the user
// record so the dashboard can summarize what changed since then.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to load user for login", slog.Any("error", err))
		return "", nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected: bad credentials", slog.String("user_id", user.ID))
		return "", nil, models.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return "", nil, models.ErrInternalServer
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Error("failed to update last login", slog.String("user_id", user.ID), slog.Any("error", err))
		return "", nil, err
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	return token, user, nil
}
