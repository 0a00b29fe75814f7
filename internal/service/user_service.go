package service

import (
	"context"

	"admin-console/internal/models"
	"admin-console/internal/repository"
)

// UserService exposes user management backed by the repository. Validation
// and invariants (uniqueness, last admin) live in the store itself.
type UserService struct {
	users repository.Users
}

var _ Users = (*UserService)(nil)

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.SafeUser, error) {
	return s.users.List(ctx)
}

func (s *UserService) Create(ctx context.Context, in repository.CreateInput) (models.SafeUser, error) {
	return s.users.Create(ctx, in)
}

func (s *UserService) Update(ctx context.Context, id string, patch repository.UpdatePatch) (models.SafeUser, error) {
	return s.users.Update(ctx, id, patch)
}

func (s *UserService) Delete(ctx context.Context, id string) (models.SafeUser, error) {
	return s.users.Delete(ctx, id)
}
