// Package spotify finds preview clips through the Spotify Web API, as an
// alternate audio source for the canvas.
package spotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/go-mindcanvas/internal/httpclient"
	"github.com/justestif/go-mindcanvas/internal/normalize"
)

const (
	defaultTimeout = 10 * time.Second
	searchLimit    = 10
)

// Config holds Spotify client-credentials configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	APIURL       string
	TokenURL     string
	Timeout      time.Duration
}

// Searcher looks up track previews through the Spotify API.
type Searcher struct {
	api *spotify.Client
}

// NewSearcher creates a Spotify searcher using the client-credentials flow. The
// returned searcher reports StatusNotConfigured if credentials are missing.
// ctx scopes token refreshes and should outlive the searcher.
func NewSearcher(ctx context.Context, cfg Config) *Searcher {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return &Searcher{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// Token requests go through the same timeout-bounded client.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpclient.New(timeout))
	httpClient := creds.Client(ctx)
	httpClient.Timeout = timeout

	var opts []spotify.ClientOption
	if cfg.APIURL != "" {
		opts = append(opts, spotify.WithBaseURL(strings.TrimRight(cfg.APIURL, "/")+"/"))
	}

	return &Searcher{api: spotify.New(httpClient, opts...)}
}

// Configured reports whether credentials were supplied.
func (s *Searcher) Configured() bool {
	return s.api != nil
}

// FindPreview searches tracks for keyword and returns the first one that has
// a preview clip.
func (s *Searcher) FindPreview(ctx context.Context, keyword string) normalize.Result[normalize.MediaReference] {
	if s.api == nil {
		return normalize.NotConfigured[normalize.MediaReference]()
	}

	results, err := s.api.Search(ctx, keyword, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		return normalize.Failed[normalize.MediaReference](fmt.Errorf("searching tracks: %w", err))
	}

	if results.Tracks == nil {
		return normalize.NotFound[normalize.MediaReference]()
	}

	for _, track := range results.Tracks.Tracks {
		if track.PreviewURL == "" {
			continue
		}
		return normalize.OK(normalize.MediaReference{
			Kind:        normalize.MediaAudio,
			URL:         track.PreviewURL,
			Keyword:     keyword,
			Attribution: describeTrack(track),
		})
	}

	return normalize.NotFound[normalize.MediaReference]()
}

// describeTrack formats a track as `"Name" - Artist A, Artist B`.
func describeTrack(track spotify.FullTrack) string {
	names := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		names[i] = a.Name
	}
	if len(names) == 0 {
		return fmt.Sprintf("%q", track.Name)
	}
	return fmt.Sprintf("%q - %s", track.Name, strings.Join(names, ", "))
}
