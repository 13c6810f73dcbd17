// Package config loads MindCanvas configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider selectors.
const (
	AudioProviderPixabay = "pixabay"
	AudioProviderSpotify = "spotify"

	ReflectionProviderHuggingFace = "huggingface"
	ReflectionProviderOpenAI      = "openai"
)

// Credential environment variable names.
const (
	EnvHuggingFaceToken = "HF_API_TOKEN"
	EnvPixabayKey       = "PIXABAY_API_KEY"
	EnvQuotesKey        = "QUOTES_API_KEY"
	EnvSpotifyID        = "SPOTIFY_ID"
	EnvSpotifySecret    = "SPOTIFY_SECRET"
	EnvOpenAIKey        = "OPENAI_API_KEY"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:8080"

var (
	// ErrUnknownProvider is returned when a provider selector has an unsupported value.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidTimeout is returned when a configured timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidConcurrency is returned when the section concurrency is below one.
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
)

// Config is the complete application configuration.
type Config struct {
	Addr     string
	LogLevel string

	Credentials Credentials
	Endpoints   Endpoints
	Timeouts    Timeouts

	AudioProvider      string
	ReflectionProvider string

	// SimulateEmotions enables the simulated distribution when the
	// emotion classifier cannot be used.
	SimulateEmotions bool

	// QuoteCategories is probed in order until one yields a quote.
	QuoteCategories []string

	// Concurrency is how many canvas sections are composed at once. The
	// default of 1 composes them one after another.
	Concurrency int
}

// Credentials enumerates every provider credential. An empty field means
// the provider is not configured.
type Credentials struct {
	HuggingFaceToken string
	PixabayKey       string
	QuotesKey        string
	SpotifyID        string
	SpotifySecret    string
	OpenAIKey        string
}

// HasHuggingFace reports whether the inference token is present.
func (c Credentials) HasHuggingFace() bool { return c.HuggingFaceToken != "" }

// HasPixabay reports whether the media search key is present.
func (c Credentials) HasPixabay() bool { return c.PixabayKey != "" }

// HasQuotes reports whether the quotes API key is present.
func (c Credentials) HasQuotes() bool { return c.QuotesKey != "" }

// HasSpotify reports whether both Spotify client credentials are present.
func (c Credentials) HasSpotify() bool { return c.SpotifyID != "" && c.SpotifySecret != "" }

// HasOpenAI reports whether the OpenAI key is present.
func (c Credentials) HasOpenAI() bool { return c.OpenAIKey != "" }

// Endpoints holds provider base URLs and model identifiers.
type Endpoints struct {
	HuggingFaceURL  string
	EmotionModel    string
	TextModel       string
	PixabayImageURL string
	PixabayAudioURL string
	QuotesURL       string
	SpotifyAPIURL   string
	SpotifyTokenURL string
	OpenAIURL       string
	OpenAIModel     string
}

// Timeouts holds per-call timeouts for each provider family.
type Timeouts struct {
	Inference time.Duration
	Media     time.Duration
	Quotes    time.Duration
}

// Load reads configuration from an optional .env file and the environment.
// Missing credentials are not an error; the affected sections fall back.
func Load() (*Config, error) {
	_ = godotenv.Load()

	inference, err := getEnvDuration("MINDCANVAS_INFERENCE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	media, err := getEnvDuration("MINDCANVAS_MEDIA_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	quotes, err := getEnvDuration("MINDCANVAS_QUOTES_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("MINDCANVAS_CONCURRENCY", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:     getEnv("MINDCANVAS_ADDR", DefaultAddr),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Credentials: Credentials{
			HuggingFaceToken: os.Getenv(EnvHuggingFaceToken),
			PixabayKey:       os.Getenv(EnvPixabayKey),
			QuotesKey:        os.Getenv(EnvQuotesKey),
			SpotifyID:        os.Getenv(EnvSpotifyID),
			SpotifySecret:    os.Getenv(EnvSpotifySecret),
			OpenAIKey:        os.Getenv(EnvOpenAIKey),
		},
		Endpoints: Endpoints{
			HuggingFaceURL:  getEnv("HF_BASE_URL", "https://router.huggingface.co/hf-inference/models/"),
			EmotionModel:    getEnv("HF_EMOTION_MODEL", "j-hartmann/emotion-english-distilroberta-base"),
			TextModel:       getEnv("HF_TEXT_MODEL", "gpt2"),
			PixabayImageURL: getEnv("PIXABAY_IMAGE_URL", "https://pixabay.com/api/"),
			PixabayAudioURL: getEnv("PIXABAY_AUDIO_URL", "https://pixabay.com/api/audio/"),
			QuotesURL:       getEnv("QUOTES_BASE_URL", "https://api.api-ninjas.com/v1/quotes"),
			SpotifyAPIURL:   getEnv("SPOTIFY_API_URL", "https://api.spotify.com/v1/"),
			SpotifyTokenURL: getEnv("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
			OpenAIURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/"),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Timeouts: Timeouts{
			Inference: inference,
			Media:     media,
			Quotes:    quotes,
		},
		AudioProvider:      strings.ToLower(getEnv("MINDCANVAS_AUDIO_PROVIDER", AudioProviderPixabay)),
		ReflectionProvider: strings.ToLower(getEnv("MINDCANVAS_REFLECTION_PROVIDER", ReflectionProviderHuggingFace)),
		SimulateEmotions:   getEnvBool("MINDCANVAS_SIMULATE_EMOTIONS", true),
		QuoteCategories:    parseCommaSeparated(getEnv("MINDCANVAS_QUOTE_CATEGORIES", "dreams,inspirational,life,hope,happiness")),
		Concurrency:        concurrency,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks provider selectors, timeouts and concurrency.
func (c *Config) Validate() error {
	switch c.AudioProvider {
	case AudioProviderPixabay, AudioProviderSpotify:
	default:
		return fmt.Errorf("%w: audio provider %q", ErrUnknownProvider, c.AudioProvider)
	}

	switch c.ReflectionProvider {
	case ReflectionProviderHuggingFace, ReflectionProviderOpenAI:
	default:
		return fmt.Errorf("%w: reflection provider %q", ErrUnknownProvider, c.ReflectionProvider)
	}

	if c.Timeouts.Inference <= 0 || c.Timeouts.Media <= 0 || c.Timeouts.Quotes <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Concurrency)
	}

	return nil
}

// ConfiguredProviders reports which sections can reach a live provider.
func (c *Config) ConfiguredProviders() map[string]bool {
	audio := c.Credentials.HasPixabay()
	if c.AudioProvider == AudioProviderSpotify {
		audio = c.Credentials.HasSpotify()
	}
	reflection := c.Credentials.HasHuggingFace()
	if c.ReflectionProvider == ReflectionProviderOpenAI {
		reflection = c.Credentials.HasOpenAI()
	}

	return map[string]bool{
		"emotion":    c.Credentials.HasHuggingFace(),
		"image":      c.Credentials.HasPixabay(),
		"audio":      audio,
		"quote":      c.Credentials.HasQuotes(),
		"reflection": reflection,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func parseCommaSeparated(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
