package canvas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/justestif/go-mindcanvas/internal/config"
	"github.com/justestif/go-mindcanvas/internal/fallback"
	"github.com/justestif/go-mindcanvas/internal/httpclient"
	"github.com/justestif/go-mindcanvas/internal/huggingface"
	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// DefaultConcurrency composes sections one at a time.
const DefaultConcurrency = 1

// Inference abstracts the hosted model client for testing.
type Inference interface {
	ClassifyEmotion(ctx context.Context, text string) ([]byte, error)
	GenerateText(ctx context.Context, prompt string) ([]byte, error)
}

// MediaSearcher abstracts the image and audio search client for testing.
type MediaSearcher interface {
	SearchImages(ctx context.Context, keyword string) ([]byte, error)
	SearchAudio(ctx context.Context, keyword string) ([]byte, error)
}

// QuoteProber abstracts the quotes client for testing.
type QuoteProber interface {
	Probe(ctx context.Context, categories []string) (normalize.Result[normalize.Quote], int)
}

// PreviewFinder is an alternate audio source.
type PreviewFinder interface {
	FindPreview(ctx context.Context, keyword string) normalize.Result[normalize.MediaReference]
}

// Reflector is an alternate reflection source.
type Reflector interface {
	Reflect(ctx context.Context, keyword string) normalize.Result[normalize.Reflection]
}

// Providers are the clients the service composes from. Previews and
// Reflector are only used when selected in the configuration.
type Providers struct {
	Inference Inference
	Media     MediaSearcher
	Quotes    QuoteProber
	Previews  PreviewFinder
	Reflector Reflector
}

// Service composes canvases.
type Service struct {
	cfg         config.Config
	providers   Providers
	tables      *fallback.Tables
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for section outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTables sets the fallback tables.
func WithTables(tables *fallback.Tables) Option {
	return func(s *Service) {
		if tables != nil {
			s.tables = tables
		}
	}
}

// WithConcurrency sets the number of sections composed at the same time.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock sets the source of canvas creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new canvas service.
func NewService(cfg config.Config, providers Providers, opts ...Option) *Service {
	s := &Service{
		cfg:         cfg,
		providers:   providers,
		tables:      fallback.New(nil),
		logger:      zap.NewNop(),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compose builds every section for keyword. Sections are independent: each
// writes only its own field and a failure in one never affects another. With
// the default concurrency they run in order; a wider pool runs them at once.
func (s *Service) Compose(ctx context.Context, keyword string) *Canvas {
	start := time.Now()
	c := &Canvas{
		ID:        uuid.New(),
		Keyword:   NormalizeKeyword(keyword),
		CreatedAt: s.now(),
		Notes:     make(map[Section]Note, len(Sections)),
	}

	p := pool.New().WithMaxGoroutines(s.concurrency)
	p.Go(func() { c.Emotion = s.emotion(ctx, c.Keyword) })
	p.Go(func() { c.Image = s.image(ctx, c.Keyword) })
	p.Go(func() { c.Audio = s.audio(ctx, c.Keyword) })
	p.Go(func() { c.Quote, c.QuoteRequests = s.quote(ctx) })
	p.Go(func() { c.Reflection = s.reflection(ctx, c.Keyword) })
	p.Wait()

	if c.Emotion.Usable() {
		c.Mood = MoodOf(c.Emotion.Value)
		c.Tiers = TiersOf(c.Emotion.Value)
	}

	for _, section := range Sections {
		s.annotate(c, section)
	}

	s.logger.Info("canvas composed",
		zap.String("canvas_id", c.ID.String()),
		zap.String("keyword", c.Keyword),
		zap.String("mood", c.Mood.Name),
		zap.Duration("elapsed", time.Since(start)),
	)

	return c
}

func (s *Service) emotion(ctx context.Context, keyword string) normalize.Result[normalize.EmotionDistribution] {
	var result normalize.Result[normalize.EmotionDistribution]
	switch {
	case !s.cfg.Credentials.HasHuggingFace() || s.providers.Inference == nil:
		result = normalize.NotConfigured[normalize.EmotionDistribution]()
	default:
		body, err := s.providers.Inference.ClassifyEmotion(ctx, keyword)
		if err != nil {
			result = normalize.Failed[normalize.EmotionDistribution](err)
		} else {
			result = normalize.Emotion(body)
		}
	}

	if result.Usable() || !s.cfg.SimulateEmotions {
		return result
	}
	return result.WithFallback(s.tables.Emotions())
}

func (s *Service) image(ctx context.Context, keyword string) normalize.Result[normalize.MediaReference] {
	var result normalize.Result[normalize.MediaReference]
	switch {
	case !s.cfg.Credentials.HasPixabay() || s.providers.Media == nil:
		result = normalize.NotConfigured[normalize.MediaReference]()
	default:
		body, err := s.providers.Media.SearchImages(ctx, keyword)
		result = mediaResult(body, err, normalize.MediaImage, keyword, normalize.ImageFields)
	}

	if result.Usable() {
		return result
	}
	return result.WithFallback(s.tables.Image(keyword))
}

func (s *Service) audio(ctx context.Context, keyword string) normalize.Result[normalize.MediaReference] {
	var result normalize.Result[normalize.MediaReference]
	switch {
	case s.cfg.AudioProvider == config.AudioProviderSpotify:
		if !s.cfg.Credentials.HasSpotify() || s.providers.Previews == nil {
			result = normalize.NotConfigured[normalize.MediaReference]()
		} else {
			result = s.providers.Previews.FindPreview(ctx, keyword)
		}
	case !s.cfg.Credentials.HasPixabay() || s.providers.Media == nil:
		result = normalize.NotConfigured[normalize.MediaReference]()
	default:
		body, err := s.providers.Media.SearchAudio(ctx, keyword)
		result = mediaResult(body, err, normalize.MediaAudio, keyword, normalize.AudioFields)
	}

	switch {
	case result.Usable():
		return result
	case result.Status == normalize.StatusUnavailable:
		return result.WithFallback(s.tables.DefaultSoundFor(keyword))
	default:
		return result.WithFallback(s.tables.Sound(keyword))
	}
}

// mediaResult classifies a media search. An error page that is not JSON
// counts as an unavailable provider whatever its HTTP status.
func mediaResult(body []byte, err error, kind normalize.MediaKind, keyword string, fields []string) normalize.Result[normalize.MediaReference] {
	switch {
	case errors.Is(err, httpclient.ErrNotJSON):
		return normalize.Unavailable[normalize.MediaReference](err)
	case err != nil:
		return normalize.Failed[normalize.MediaReference](err)
	default:
		return normalize.Media(body, kind, keyword, fields...)
	}
}

func (s *Service) quote(ctx context.Context) (normalize.Result[normalize.Quote], int) {
	if !s.cfg.Credentials.HasQuotes() || s.providers.Quotes == nil {
		return normalize.NotConfigured[normalize.Quote]().WithFallback(s.tables.Quote()), 0
	}

	result, requests := s.providers.Quotes.Probe(ctx, s.cfg.QuoteCategories)
	if result.Usable() {
		return result, requests
	}
	return result.WithFallback(s.tables.Quote()), requests
}

func (s *Service) reflection(ctx context.Context, keyword string) normalize.Result[normalize.Reflection] {
	var result normalize.Result[normalize.Reflection]
	switch {
	case s.cfg.ReflectionProvider == config.ReflectionProviderOpenAI:
		if !s.cfg.Credentials.HasOpenAI() || s.providers.Reflector == nil {
			result = normalize.NotConfigured[normalize.Reflection]()
		} else {
			result = s.providers.Reflector.Reflect(ctx, keyword)
		}
	case !s.cfg.Credentials.HasHuggingFace() || s.providers.Inference == nil:
		result = normalize.NotConfigured[normalize.Reflection]()
	default:
		body, err := s.providers.Inference.GenerateText(ctx, huggingface.ReflectionPrompt(keyword))
		if err != nil {
			result = normalize.Failed[normalize.Reflection](err)
		} else {
			result = normalize.GeneratedReflection(body)
		}
	}

	// A reply without text already carries the placeholder.
	if result.Usable() {
		return result
	}
	return result.WithFallback(s.tables.Reflection(keyword))
}

// annotate records the note for a section and logs its outcome.
func (s *Service) annotate(c *Canvas, section Section) {
	status := c.Status(section)
	err := c.Err(section)

	if note, ok := noteFor(section, status, err, c.Keyword, s.credentialEnv(section)); ok {
		if section == SectionEmotion && !c.Emotion.Usable() {
			note.Level = LevelWarning
			note.Text += " (emotion simulation is disabled)"
		}
		c.Notes[section] = note
	}

	fields := []zap.Field{
		zap.String("canvas_id", c.ID.String()),
		zap.String("section", string(section)),
		zap.String("status", string(status)),
		zap.Bool("fallback", c.Fallback(section)),
	}
	if err != nil && status != normalize.StatusNotConfigured {
		fields = append(fields, zap.Error(err))
	}

	switch status {
	case normalize.StatusProviderError, normalize.StatusUnavailable:
		s.logger.Warn("section composed", fields...)
	default:
		s.logger.Debug("section composed", fields...)
	}
}

// credentialEnv names the environment variable a section needs.
func (s *Service) credentialEnv(section Section) string {
	switch section {
	case SectionImage:
		return config.EnvPixabayKey
	case SectionAudio:
		if s.cfg.AudioProvider == config.AudioProviderSpotify {
			return fmt.Sprintf("%s and %s", config.EnvSpotifyID, config.EnvSpotifySecret)
		}
		return config.EnvPixabayKey
	case SectionQuote:
		return config.EnvQuotesKey
	case SectionReflection:
		if s.cfg.ReflectionProvider == config.ReflectionProviderOpenAI {
			return config.EnvOpenAIKey
		}
	}
	return config.EnvHuggingFaceToken
}
