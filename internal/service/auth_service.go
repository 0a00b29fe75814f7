package service

import (
	"context"
	"fmt"

	"admin-console/internal/httperr"
	"admin-console/internal/models"
	"admin-console/internal/repository"
	"admin-console/internal/token"
)

// AuthService implements login and identity flows over the user store.
type AuthService struct {
	users  repository.Users
	tokens *token.Manager
}

var _ Authorization = (*AuthService)(nil)

func NewAuthService(users repository.Users, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the plain-text demo credentials and issues an access token.
// The username lookup is exact (case-sensitive), matching the stored data.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.SafeUser, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", models.SafeUser{}, err
	}
	if u == nil || u.Password != password {
		return "", models.SafeUser{}, httperr.Unauthorized("Invalid username or password")
	}

	safe := u.Safe()
	accessToken, err := s.tokens.Sign(safe)
	if err != nil {
		return "", models.SafeUser{}, fmt.Errorf("sign access token: %w", err)
	}
	return accessToken, safe, nil
}

// ParseToken verifies a bearer token and returns its claims.
func (s *AuthService) ParseToken(raw string) (*token.Claims, error) {
	return s.tokens.Verify(raw)
}

// CurrentUser resolves a verified claim subject to a live account. A token
// whose subject no longer exists is treated as unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (models.SafeUser, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.SafeUser{}, err
	}
	if u == nil {
		return models.SafeUser{}, httperr.Unauthorized("User does not exist")
	}
	return u.Safe(), nil
}
