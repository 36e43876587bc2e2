package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/client/repositories/favorites"
	"github.com/dmitrijs2005/pokekeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/pokekeeper/internal/common"
	"github.com/dmitrijs2005/pokekeeper/internal/dbx"
	"github.com/dmitrijs2005/pokekeeper/internal/logging"
	"github.com/dmitrijs2005/pokekeeper/internal/notify"
	"github.com/google/uuid"
)

var (
	ErrFavoriteExists   = errors.New("item is already a favorite")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFetchFailed      = errors.New("failed to fetch favorites")
	ErrAddFailed        = errors.New("failed to add favorite")
	ErrRemoveFailed     = errors.New("failed to remove favorite")
	ErrCheckFailed      = errors.New("failed to check favorite")
)

// FavoritesService is the per-user favorites store.
//
// Every successful Add or Remove emits one signal to all subscribers.
type FavoritesService interface {
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	Add(ctx context.Context, userID string, item models.CatalogItem) error
	Remove(ctx context.Context, userID string, itemID int) error
	IsFavorite(ctx context.Context, userID string, itemID int) (bool, error)
	Subscribe() (<-chan struct{}, func())
}

type FavoritesOption func(*favoritesService)

// WithClock overrides the time source used for AddedAt.
func WithClock(now func() time.Time) FavoritesOption {
	return func(s *favoritesService) {
		if now != nil {
			s.now = now
		}
	}
}

type favoritesService struct {
	db      *sql.DB
	log     logging.Logger
	now     func() time.Time
	changes *notify.Broadcaster[struct{}]
}

func NewFavoritesService(db *sql.DB, log logging.Logger, opts ...FavoritesOption) FavoritesService {
	if log == nil {
		log = logging.NewNop()
	}
	s := &favoritesService{
		db:      db,
		log:     log,
		now:     time.Now,
		changes: notify.New[struct{}](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the user's favorites, most recent first. An unknown user has
// no favorites.
func (s *favoritesService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	if s.db == nil {
		return nil, ErrUnknown
	}
	list, err := favorites.NewSQLiteRepository(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "list favorites failed", "user_id", userID, "error", err)
		return nil, errors.Join(ErrFetchFailed, err)
	}
	return list, nil
}

func (s *favoritesService) Add(ctx context.Context, userID string, item models.CatalogItem) error {
	if s.db == nil {
		return ErrUnknown
	}

	f := &models.Favorite{
		ID:       uuid.NewString(),
		UserID:   userID,
		ItemID:   item.ID,
		ItemName: item.Name,
		ImageURL: item.ImageURL,
		AddedAt:  s.now().UTC(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := favorites.NewSQLiteRepository(tx)

		exists, err := repo.Exists(ctx, userID, item.ID)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		ok, err := users.NewSQLiteRepository(tx).Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorMissingReference
		}

		return repo.Insert(ctx, f)
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrorAlreadyExists):
		return ErrFavoriteExists
	case errors.Is(err, common.ErrorMissingReference):
		return ErrUserNotFound
	default:
		s.log.Error(ctx, "add favorite failed", "user_id", userID, "item_id", item.ID, "error", err)
		return errors.Join(ErrAddFailed, err)
	}

	s.log.Info(ctx, "favorite added", "user_id", userID, "item_id", item.ID)
	s.changes.Notify(struct{}{})
	return nil
}

func (s *favoritesService) Remove(ctx context.Context, userID string, itemID int) error {
	if s.db == nil {
		return ErrUnknown
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return favorites.NewSQLiteRepository(tx).Delete(ctx, userID, itemID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrFavoriteNotFound
		}
		s.log.Error(ctx, "remove favorite failed", "user_id", userID, "item_id", itemID, "error", err)
		return errors.Join(ErrRemoveFailed, err)
	}

	s.log.Info(ctx, "favorite removed", "user_id", userID, "item_id", itemID)
	s.changes.Notify(struct{}{})
	return nil
}

func (s *favoritesService) IsFavorite(ctx context.Context, userID string, itemID int) (bool, error) {
	if s.db == nil {
		return false, ErrUnknown
	}
	ok, err := favorites.NewSQLiteRepository(s.db).Exists(ctx, userID, itemID)
	if err != nil {
		s.log.Error(ctx, "check favorite failed", "user_id", userID, "item_id", itemID, "error", err)
		return false, errors.Join(ErrCheckFailed, err)
	}
	return ok, nil
}

// Subscribe registers for "favorites changed" signals. Signals carry no
// payload; observers re-read with List.
func (s *favoritesService) Subscribe() (<-chan struct{}, func()) {
	return s.changes.Subscribe()
}
