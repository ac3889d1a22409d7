package services

import (
	"errors"
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/pkg/auth"
	"github.com/ordena/ordena/pkg/logger"
	"gorm.io/gorm"
)

// Tokens is the pair issued on a successful login.
type Tokens struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// AuthService verifies credentials and issues JWTs.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Login checks email + password and returns fresh tokens. Unknown emails
// and wrong passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (Tokens, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Tokens{}, ErrInvalidCredentials
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("auth: lookup user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		logger.Warn("failed login attempt", "email", email)
		return Tokens{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The user
// is reloaded so role changes and deletions take effect immediately.
func (s *AuthService) Refresh(refreshToken string) (Tokens, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return Tokens{}, ErrInvalidCredentials
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return Tokens{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Tokens{}, ErrInvalidCredentials
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("auth: reload user: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user models.User) (Tokens, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return Tokens{}, fmt.Errorf("auth: sign access token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return Tokens{}, fmt.Errorf("auth: sign refresh token: %w", err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh, User: user}, nil
}
