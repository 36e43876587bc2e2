package client

import (
	"context"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
)

// Client reads the remote catalog.
type Client interface {
	ListPokemon(ctx context.Context, offset, limit int) (*models.Page, error)
	// GetPokemon accepts a numeric id or a name; names are lowercased.
	GetPokemon(ctx context.Context, idOrName string) (*models.Pokemon, error)
}
