package assetcache

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/netx"
)

// MaxBlobBytes caps a single fetched blob.
const MaxBlobBytes = 16 << 20

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// HTTPFetcher fetches http and https URLs.
type HTTPFetcher struct {
	Client *http.Client
	Limit  int64
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}, Limit: MaxBlobBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	hc := f.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	return netx.GetBytes(ctx, hc, rawURL, f.Limit)
}

// SchemeFetcher routes by URL scheme. Unknown schemes are an error.
type SchemeFetcher map[string]Fetcher

// NewDefaultFetcher handles http and https, and s3 when s3f is not nil.
func NewDefaultFetcher(s3f Fetcher) SchemeFetcher {
	hf := NewHTTPFetcher(30 * time.Second)
	sf := SchemeFetcher{"http": hf, "https": hf}
	if s3f != nil {
		sf["s3"] = s3f
	}
	return sf
}

func (s SchemeFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	f, ok := s[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return f.Fetch(ctx, rawURL)
}
