package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/pokekeeper/internal/assetcache"
	"github.com/dmitrijs2005/pokekeeper/internal/client/client"
	"github.com/dmitrijs2005/pokekeeper/internal/client/config"
	"github.com/dmitrijs2005/pokekeeper/internal/client/services"
	"github.com/dmitrijs2005/pokekeeper/internal/client/session"
	"github.com/dmitrijs2005/pokekeeper/internal/filex"
	"github.com/dmitrijs2005/pokekeeper/internal/logging"
)

const (
	// browsePageSize is the number of rows browse and search print.
	browsePageSize = 20

	// searchPageSize is the catalog page size search scans with.
	searchPageSize = 200
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	session     *session.Session
	authService services.AuthService
	favService  services.FavoritesService
	catalog     client.Client
	assets      *assetcache.Cache
	reader      *bufio.Reader

	outMu sync.Mutex
	out   io.Writer
}

// NewApp opens the local database, restores the persisted session and
// builds the services the REPL uses.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if c.UsesDefaultSessionSecret() {
		log.Warn(ctx, "session secret is the built-in development value; set POKEKEEPER_SESSION_SECRET")
	}

	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	fetcher, err := newAssetFetcher(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New()
	as := services.NewAuthService(db, sess, []byte(c.SessionSecret), log.With("component", "auth"))
	if err := as.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err)
	}

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		session:     sess,
		authService: as,
		favService:  services.NewFavoritesService(db, log.With("component", "favorites")),
		catalog:     client.NewHTTPClient(c.CatalogBaseURL, c.RequestTimeout),
		assets: assetcache.New(assetcache.Options{
			MaxEntries: c.CacheMaxEntries,
			MaxBytes:   c.CacheMaxBytes,
			Fetcher:    fetcher,
			Logger:     log.With("component", "assets"),
		}),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	return a, nil
}

func newAssetFetcher(ctx context.Context, c *config.Config) (assetcache.Fetcher, error) {
	if c.S3Endpoint == "" {
		return assetcache.NewDefaultFetcher(nil), nil
	}
	s3f, err := assetcache.NewS3Fetcher(ctx, assetcache.S3Options{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	return assetcache.NewDefaultFetcher(s3f), nil
}

// Run starts the favorites watcher and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartFavoritesWatcher(ctx)
	}()

	a.println("Welcome to pokekeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.println)

	cancel()
	wg.Wait()
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsLoggedIn()
}

func (a *App) getStatus() string {
	if u := a.authService.CurrentUser(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}

// StartFavoritesWatcher prints a note whenever the favorites store reports a
// change for the signed-in user, until ctx is done. On logout the artwork
// cache is dropped and notes stop until the next login.
func (a *App) StartFavoritesWatcher(ctx context.Context) {
	changes, cancelFavs := a.favService.Subscribe()
	defer cancelFavs()
	sessions, cancelSession := a.session.Subscribe()
	defer cancelSession()

	var userID string
	if u := a.session.Current(); u != nil {
		userID = u.ID
	}

	for {
		select {
		case u, ok := <-sessions:
			if !ok {
				return
			}
			if u == nil {
				userID = ""
				a.assets.Clear()
				continue
			}
			userID = u.ID

		case _, ok := <-changes:
			if !ok {
				return
			}
			if userID == "" {
				continue
			}
			list, err := a.favService.List(ctx, userID)
			if err != nil {
				a.log.Warn(ctx, "favorites refresh failed", "error", err)
				continue
			}
			a.printf("[favorites updated: %d saved]\n", len(list))

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}
