package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/netx"
)

// maxResponseBytes caps catalog bodies; detail records are ~300 KiB.
const maxResponseBytes = 8 << 20

type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient returns a catalog client for baseURL
// (e.g. "https://pokeapi.co/api/v2"). A zero timeout means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) ListPokemon(ctx context.Context, offset, limit int) (*models.Page, error) {
	q := url.Values{}
	q.Set("offset", fmt.Sprint(offset))
	q.Set("limit", fmt.Sprint(limit))

	var page models.Page
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetPokemon(ctx context.Context, idOrName string) (*models.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return nil, ErrNotFound
	}

	var p models.Pokemon
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, u string, v any) error {
	body, err := netx.GetBytes(ctx, c.hc, u, maxResponseBytes)
	if err != nil {
		return c.mapError(err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	var se *netx.StatusError
	if errors.As(err, &se) {
		if se.Code == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, se.Status)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
