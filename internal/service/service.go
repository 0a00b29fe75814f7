package service

import (
	"context"

	"admin-console/internal/models"
	"admin-console/internal/repository"
	"admin-console/internal/token"
)

// Authorization covers login, token parsing and identity lookups.
type Authorization interface {
	Login(ctx context.Context, username, password string) (string, models.SafeUser, error)
	ParseToken(raw string) (*token.Claims, error)
	CurrentUser(ctx context.Context, userID string) (models.SafeUser, error)
}

// Users covers the admin-facing user management operations.
type Users interface {
	List(ctx context.Context) ([]models.SafeUser, error)
	Create(ctx context.Context, in repository.CreateInput) (models.SafeUser, error)
	Update(ctx context.Context, id string, patch repository.UpdatePatch) (models.SafeUser, error)
	Delete(ctx context.Context, id string) (models.SafeUser, error)
}

// Service aggregates all sub-services consumed by the HTTP layer.
type Service struct {
	Authorization
	Users
}

func NewService(repos *repository.Repository, tokens *token.Manager) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Users:         NewUserService(repos.Users),
	}
}
