// Package quotes looks up quotations by category.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/justestif/go-mindcanvas/internal/httpclient"
	"github.com/justestif/go-mindcanvas/internal/normalize"
)

const (
	defaultBaseURL = "https://api.api-ninjas.com/v1/quotes"
	defaultTimeout = 10 * time.Second
)

// DefaultCategories is the probe order when none is configured.
var DefaultCategories = []string{"dreams", "inspirational", "life", "hope", "happiness"}

// ErrMissingAPIKey is returned when QUOTES_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing QUOTES_API_KEY")

// Config holds quotes API configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a quotes API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new quotes client from the provided configuration.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpclient.New(defaultTimeout),
		baseURL:    defaultBaseURL,
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	return c
}

// Fetch retrieves quotes for a single category and returns the raw reply.
func (c *Client) Fetch(ctx context.Context, category string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{"category": {category}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	body, err := httpclient.Do(c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s quotes: %w", category, err)
	}
	return body, nil
}

// Probe tries categories in order and stops at the first one that yields a
// quote. A request or decoding failure stops probing with a provider error.
// If every category is empty the result is StatusNotFound. The second return
// value is the number of requests made.
func (c *Client) Probe(ctx context.Context, categories []string) (normalize.Result[normalize.Quote], int) {
	if c.apiKey == "" {
		return normalize.NotConfigured[normalize.Quote](), 0
	}
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	requests := 0
	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return normalize.Failed[normalize.Quote](err), requests
		}

		requests++
		body, err := c.Fetch(ctx, category)
		if err != nil {
			return normalize.Failed[normalize.Quote](err), requests
		}

		result := normalize.Quotes(body)
		switch result.Status {
		case normalize.StatusOK:
			if result.Value.Category == "" {
				result.Value.Category = category
			}
			return result, requests
		case normalize.StatusNotFound:
			continue
		default:
			return result, requests
		}
	}

	return normalize.NotFound[normalize.Quote](), requests
}
