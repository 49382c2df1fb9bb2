package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/cmd/dam/repository"
	"github.com/assetbay/assetbay/cmd/dam/token"
	"github.com/assetbay/assetbay/common/logger"
)

// AuthService issues identity tokens for registered users
type AuthService struct {
	users       UserStore
	jwtSecret   []byte
	tokenExpiry time.Duration
	log         *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwtSecret []byte, tokenExpiry time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:       users,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		log:         log,
	}
}

// Register creates a user with a bcrypt password hash.
// Returns ErrConflict when the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "email", email)
	return user, nil
}

// Login verifies credentials and issues a bearer token.
// An unknown email and a wrong password both map to ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	signed, err := token.Sign(user.ID, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return signed, nil
}

// Me returns the profile behind an authenticated user id
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
