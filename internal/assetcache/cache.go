package assetcache

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/dmitrijs2005/pokekeeper/internal/logging"
	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxEntries  = 100
	DefaultMaxBytes    = 50 << 20
	DefaultParallelism = 4
)

// Image is a decoded cache entry. Data holds the raw blob and is what the
// byte bound accounts for.
type Image struct {
	URL     string
	Format  string
	Data    []byte
	Width   int
	Height  int
	Decoded image.Image
}

// Options configure a Cache. Zero values select the defaults.
type Options struct {
	MaxEntries int
	MaxBytes   int64

	// Parallelism bounds concurrent fetches in Prefetch.
	Parallelism int

	// Fetcher retrieves blobs. Defaults to NewDefaultFetcher(nil).
	Fetcher Fetcher

	Logger logging.Logger
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	lru      *lru.Cache
	size     int64
	maxBytes int64

	parallelism int
	fetcher     Fetcher
	log         logging.Logger
}

func New(opts Options) *Cache {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewDefaultFetcher(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	c := &Cache{
		lru:         lru.New(opts.MaxEntries),
		maxBytes:    opts.MaxBytes,
		parallelism: opts.Parallelism,
		fetcher:     opts.Fetcher,
		log:         opts.Logger,
	}
	// called with c.mu held
	c.lru.OnEvicted = func(_ lru.Key, v interface{}) {
		c.size -= int64(len(v.(*Image).Data))
	}
	return c
}

// Get returns the cached image for url without fetching. A hit marks the
// entry as recently used.
func (c *Cache) Get(url string) *Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(url); ok {
		return v.(*Image)
	}
	return nil
}

// Load returns the image for url, fetching and decoding it on a miss.
// It returns nil on any failure.
func (c *Cache) Load(ctx context.Context, url string) *Image {
	if img := c.Get(url); img != nil {
		return img
	}
	if url == "" {
		return nil
	}

	data, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.log.Debug(ctx, "asset fetch failed", "url", url, "error", err)
		return nil
	}

	img, err := decode(url, data)
	if err != nil {
		c.log.Debug(ctx, "asset decode failed", "url", url, "error", err)
		return nil
	}

	c.add(img)
	return img
}

// LoadAsync runs Load in the background. The returned channel yields exactly
// one value (possibly nil) and is then closed.
func (c *Cache) LoadAsync(ctx context.Context, url string) <-chan *Image {
	out := make(chan *Image, 1)
	go func() {
		defer close(out)
		out <- c.Load(ctx, url)
	}()
	return out
}

// Prefetch loads urls concurrently and waits for all of them. Failures are
// ignored.
func (c *Cache) Prefetch(ctx context.Context, urls ...string) {
	g := new(errgroup.Group)
	g.SetLimit(c.parallelism)

	for _, u := range urls {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			c.Load(ctx, u)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Size returns the total bytes of cached blobs.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.size = 0
}

// add inserts img, replacing any entry for the same URL. A blob larger than
// the byte bound is not stored.
func (c *Cache) add(img *Image) {
	cost := int64(len(img.Data))
	if cost > c.maxBytes {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(img.URL)
	c.lru.Add(img.URL, img)
	c.size += cost

	for c.size > c.maxBytes && c.lru.Len() > 0 {
		c.lru.RemoveOldest()
	}
}

func decode(url string, data []byte) (*Image, error) {
	m, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	return &Image{
		URL:     url,
		Format:  format,
		Data:    data,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Decoded: m,
	}, nil
}
