package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Fav looks the record up in the catalog and adds it to the current user's
// favorites.
func (a *App) Fav(ctx context.Context, args []string) error {
	u := a.authService.CurrentUser()
	if u == nil {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fav <id|name>", errUsage)
	}

	p, err := a.catalog.GetPokemon(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.favService.Add(ctx, u.ID, p.Item()); err != nil {
		return err
	}

	a.printf("Added %s to favorites\n", p.Name)
	return nil
}

func (a *App) Unfav(ctx context.Context, args []string) error {
	u := a.authService.CurrentUser()
	if u == nil {
		return errNotLoggedIn
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: unfav <id>", errUsage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: unfav <id>", errUsage)
	}

	if err := a.favService.Remove(ctx, u.ID, id); err != nil {
		return err
	}

	a.printf("Removed #%d from favorites\n", id)
	return nil
}

// Favs lists the current user's favorites, newest first, and warms the
// asset cache with their artwork.
func (a *App) Favs(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		return errNotLoggedIn
	}

	list, err := a.favService.List(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No favorites yet. Use 'fav <id|name>' to add one.")
		return nil
	}

	urls := make([]string, 0, len(list))
	for _, f := range list {
		a.printf("%5d  %-20s added %s\n", f.ItemID, f.ItemName, f.AddedAt.Local().Format("2006-01-02 15:04"))
		if f.ImageURL != "" {
			urls = append(urls, f.ImageURL)
		}
	}

	a.assets.Prefetch(ctx, urls...)
	a.printf("%d favorites, %d artworks cached (%d bytes)\n", len(list), a.assets.Len(), a.assets.Size())
	return nil
}
