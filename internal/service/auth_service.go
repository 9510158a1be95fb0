package service

import (
	"errors"
	"fmt"

	"product-tracker/internal/model"
	"product-tracker/internal/repository"
	"product-tracker/pkg/jwt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(username, password string) (*TokenResponse, error)
	SeedAdmin(username, password string) error
	ResetPassword(username, newPassword string) error
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.Named("auth"),
	}
}

func (s *authService) Login(username, password string) (*TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.log.Warn("failed to record last login", zap.String("username", username), zap.Error(err))
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// SeedAdmin creates the operator account on first start. An existing user
// with the same name is left untouched.
func (s *authService) SeedAdmin(username, password string) error {
	if username == "" || password == "" {
		s.log.Warn("admin credentials not configured, skipping seed")
		return nil
	}

	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &model.User{Username: username, IsActive: true}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(password); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	s.log.Info("admin user created", zap.String("username", username))
	return nil
}

func (s *authService) ResetPassword(username, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}
