package repository

import (
	"context"

	"admin-console/internal/blobstore"
	"admin-console/internal/logger"
	"admin-console/internal/models"
)

// CreateInput carries the fields required to create a user.
type CreateInput struct {
	Username string
	Password string
	Role     string
}

// UpdatePatch carries optional replacement fields; nil means "leave as is".
type UpdatePatch struct {
	Username *string
	Password *string
	Role     *string
}

// Empty reports whether the patch supplies no fields at all.
func (p UpdatePatch) Empty() bool {
	return p.Username == nil && p.Password == nil && p.Role == nil
}

// Users is the repository surface over the user list.
type Users interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.SafeUser, error)
	Create(ctx context.Context, in CreateInput) (models.SafeUser, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (models.SafeUser, error)
	Delete(ctx context.Context, id string) (models.SafeUser, error)
}

// Repository aggregates the data-access implementations.
type Repository struct {
	Users Users
}

// NewRepository wires the user store against the (possibly nil) blob store.
func NewRepository(blob blobstore.Store, log *logger.Logger) *Repository {
	return &Repository{Users: NewUserStore(blob, log)}
}
