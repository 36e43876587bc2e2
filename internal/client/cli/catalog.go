package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pokekeeper/internal/assetcache"
	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
)

// Browse prints one page of the catalog starting at the optional offset.
func (a *App) Browse(ctx context.Context, args []string) error {
	offset := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: browse [offset]", errUsage)
		}
		offset = n
	}

	page, err := a.catalog.ListPokemon(ctx, offset, browsePageSize)
	if err != nil {
		return err
	}

	a.printf("Showing %d-%d of %d\n", offset+1, offset+len(page.Results), page.Count)
	for _, it := range page.Results {
		a.printf("%5d  %s\n", it.ID(), it.Name)
	}
	if page.Next != nil {
		a.printf("Next: browse %d\n", offset+browsePageSize)
	}
	return nil
}

// Search pages through the catalog from the optional offset and prints
// records whose name contains text, ignoring case. It stops after one
// screen of matches or at the end of the catalog.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("%w: search <text> [offset]", errUsage)
	}
	q := strings.ToLower(args[0])

	offset := 0
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: search <text> [offset]", errUsage)
		}
		offset = n
	}

	var matches []models.ListItem
	more := true
	for more && len(matches) < browsePageSize {
		page, err := a.catalog.ListPokemon(ctx, offset, searchPageSize)
		if err != nil {
			return err
		}
		for _, it := range page.Results {
			offset++
			if matchesName(it.Name, q) {
				matches = append(matches, it)
				if len(matches) == browsePageSize {
					break
				}
			}
		}
		more = page.Next != nil || offset < page.Count
		if len(page.Results) == 0 {
			more = false
		}
	}

	if len(matches) == 0 {
		a.printf("No pokemon matching %q\n", args[0])
		return nil
	}
	for _, it := range matches {
		a.printf("%5d  %s\n", it.ID(), it.Name)
	}
	if more {
		a.printf("More: search %s %d\n", args[0], offset)
	}
	return nil
}

func matchesName(name, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(name), lowerQuery)
}

// Show prints a catalog record with its artwork details. When logged in it
// also tells whether the record is a favorite.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <id|name>", errUsage)
	}

	p, err := a.catalog.GetPokemon(ctx, args[0])
	if err != nil {
		return err
	}

	// artwork is fetched while the details are printed
	var artwork <-chan *assetcache.Image
	if u := p.MainImageURL(); u != "" {
		artwork = a.assets.LoadAsync(ctx, u)
	}

	a.printf("#%d %s\n", p.ID, p.Name)
	a.printf("  height: %.1f m  weight: %.1f kg\n", p.HeightMeters(), p.WeightKilograms())
	if p.BaseExperience != nil {
		a.printf("  base experience: %d\n", *p.BaseExperience)
	}
	a.printf("  types: %s\n", joinTypes(p.Types))
	a.printf("  abilities: %s\n", joinAbilities(p.Abilities))
	for _, s := range p.Stats {
		a.printf("  %-16s %d\n", s.Stat.Name+":", s.BaseStat)
	}

	if u := a.authService.CurrentUser(); u != nil {
		fav, err := a.favService.IsFavorite(ctx, u.ID, p.ID)
		if err == nil && fav {
			a.println("  ★ in your favorites")
		}
	}

	if artwork != nil {
		if img := <-artwork; img != nil {
			a.printf("  artwork: %dx%d %s (%d bytes)\n", img.Width, img.Height, img.Format, len(img.Data))
		} else {
			a.println("  artwork: unavailable")
		}
	}
	return nil
}

func joinTypes(ts []models.Type) string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Type.Name)
	}
	return strings.Join(names, ", ")
}

func joinAbilities(as []models.Ability) string {
	names := make([]string, 0, len(as))
	for _, ab := range as {
		n := ab.Ability.Name
		if ab.IsHidden {
			n += " (hidden)"
		}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}
