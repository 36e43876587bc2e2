package favorites

import (
	"context"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
)

// Repository describes storage operations for Favorite records.
type Repository interface {
	// Insert stores f. A duplicate (user, item) pair yields
	// common.ErrorAlreadyExists; an unknown user yields
	// common.ErrorMissingReference.
	Insert(ctx context.Context, f *models.Favorite) error

	// Delete removes the (user, item) favorite or returns common.ErrorNotFound.
	Delete(ctx context.Context, userID string, itemID int) error

	// Exists reports whether the (user, item) favorite is stored.
	Exists(ctx context.Context, userID string, itemID int) (bool, error)

	// ListByUser returns the user's favorites, most recently added first.
	ListByUser(ctx context.Context, userID string) ([]models.Favorite, error)
}
