package service

import (
	"fmt"
	"time"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/internal/utils"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService owns signup, login and token issuance. The signing key and
// token lifetime are injected at construction and read-only afterwards.
type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	tokenLifetime time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, tokenLifetime time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		tokenLifetime: tokenLifetime,
	}
}

// Signup creates a user and issues a session token. The role defaults to
// "user"; only the two recognized roles are accepted. A taken username is a
// Conflict.
func (s *AuthService) Signup(username, password string, role models.Role) (*models.User, string, error) {
	logger.Log.Debug("Processing signup",
		zap.String("username", username),
	)

	if err := s.validateSignupInput(username, password); err != nil {
		logger.Log.Warn("Signup validation failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}

	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperr.ErrInvalidInput, role)
	}

	existing, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if existing != nil {
		logger.Log.Warn("Username already exists",
			zap.String("username", username),
		)
		return nil, "", fmt.Errorf("%w: username already exists", apperr.ErrConflict)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.tokenLifetime)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User signed up",
		zap.String("username", username),
		zap.String("role", string(role)),
	)

	return user, token, nil
}

// Login verifies credentials and issues a fresh token. User not found and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	logger.Log.Debug("Processing login",
		zap.String("username", username),
	)

	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
		)
		return nil, "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.tokenLifetime)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return user, token, nil
}

func (s *AuthService) validateSignupInput(username, password string) error {
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", apperr.ErrInvalidInput)
	}
	if len(username) > 50 {
		return fmt.Errorf("%w: username must be at most 50 characters", apperr.ErrInvalidInput)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperr.ErrInvalidInput)
	}
	if len(password) > 128 {
		return fmt.Errorf("%w: password too long", apperr.ErrInvalidInput)
	}

	return nil
}
