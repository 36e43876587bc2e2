package users

import (
	"context"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
)

// Repository describes storage operations for User records.
type Repository interface {
	// Create inserts u. A taken email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, u *models.User) error

	// GetByEmail returns the user with exactly this email, including the
	// password hash, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Exists reports whether a user with id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes the user and, by cascade, its favorites.
	// A missing user yields common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
