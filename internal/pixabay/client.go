// Package pixabay searches Pixabay for mood images and ambient audio.
package pixabay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/justestif/go-mindcanvas/internal/httpclient"
)

const (
	defaultImageURL = "https://pixabay.com/api/"
	defaultAudioURL = "https://pixabay.com/api/audio/"
	defaultTimeout  = 10 * time.Second
	perPage         = 3
)

// ErrMissingAPIKey is returned when PIXABAY_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing PIXABAY_API_KEY")

// Config holds media search configuration.
type Config struct {
	APIKey   string
	ImageURL string
	AudioURL string
	Timeout  time.Duration
}

// Client is a Pixabay search client. Replies are returned raw for the normalizer.
type Client struct {
	apiKey     string
	httpClient *http.Client
	imageURL   string
	audioURL   string
}

// NewClient creates a new search client from the provided configuration.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpclient.New(defaultTimeout),
		imageURL:   defaultImageURL,
		audioURL:   defaultAudioURL,
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.ImageURL != "" {
		c.imageURL = cfg.ImageURL
	}
	if cfg.AudioURL != "" {
		c.audioURL = cfg.AudioURL
	}
	return c
}

// SearchImages runs a photo search for keyword.
func (c *Client) SearchImages(ctx context.Context, keyword string) ([]byte, error) {
	params := url.Values{
		"q":          {keyword},
		"image_type": {"photo"},
		"safesearch": {"true"},
		"per_page":   {fmt.Sprint(perPage)},
	}

	body, err := c.search(ctx, c.imageURL, params)
	if err != nil {
		return nil, fmt.Errorf("searching images: %w", err)
	}
	return body, nil
}

// SearchAudio runs an ambient audio search for keyword.
func (c *Client) SearchAudio(ctx context.Context, keyword string) ([]byte, error) {
	params := url.Values{
		"q":          {keyword + " ambient"},
		"safesearch": {"true"},
		"per_page":   {fmt.Sprint(perPage)},
	}

	body, err := c.search(ctx, c.audioURL, params)
	if err != nil {
		return nil, fmt.Errorf("searching audio: %w", err)
	}
	return body, nil
}

func (c *Client) search(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return httpclient.Do(c.httpClient, req)
}
