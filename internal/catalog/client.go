package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/rogerio-castellano/catalog-validator/internal/models"
)

// DefaultURL is the public Fake Store API product listing.
const DefaultURL = "https://fakestoreapi.com/products"

// Config holds catalog endpoint settings.
type Config struct {
	URL     string
	Timeout time.Duration // 0 keeps the transport default
}

// Cache stores raw catalog bodies keyed by URL.
type Cache interface {
	Get(ctx context.Context, url string) ([]byte, bool, error)
	Set(ctx context.Context, url string, body []byte) error
}

// Client fetches the product catalog with a single GET request.
type Client struct {
	HTTPClient *http.Client
	Config     Config
	Cache      Cache

	logger *slog.Logger
}

// NewClient returns a client for cfg. An empty URL falls back to DefaultURL.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	httpClient := http.DefaultClient
	if cfg.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		HTTPClient: httpClient,
		Config:     cfg,
		logger:     logging.New("catalog"),
	}
}

// Fetch downloads and decodes the catalog. Failures are returned as *FetchError,
// except for entries that are not objects, which wrap models.ErrNotObject.
// Only bodies that decode into a product list are written to the cache.
func (c *Client) Fetch(ctx context.Context) ([]models.Product, error) {
	if body, ok := c.cached(ctx); ok {
		return Decode(body)
	}

	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	products, err := Decode(body)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, c.Config.URL, body); err != nil {
			c.logger.Warn("catalog cache write failed", "url", c.Config.URL, "error", err)
		}
	}
	return products, nil
}

func (c *Client) cached(ctx context.Context) ([]byte, bool) {
	if c.Cache == nil {
		return nil, false
	}
	body, ok, err := c.Cache.Get(ctx, c.Config.URL)
	if err != nil {
		c.logger.Warn("catalog cache read failed", "url", c.Config.URL, "error", err)
		return nil, false
	}
	if ok {
		c.logger.Debug("catalog served from cache", "url", c.Config.URL)
	}
	return body, ok
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Config.URL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("new request: %w", err)}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Debug("catalog fetched", "url", c.Config.URL, "bytes", len(body))
	return body, nil
}

// Decode parses a catalog body: a JSON array of product objects.
func Decode(body []byte) ([]models.Product, error) {
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: err}
	}
	if models.FieldOf(payload).Kind() != models.Array {
		return nil, &FetchError{Kind: KindNotList}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: err}
	}

	products := make([]models.Product, 0, len(items))
	for i, item := range items {
		p, err := models.ParseProduct(item)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
