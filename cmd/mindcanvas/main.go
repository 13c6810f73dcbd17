// Command mindcanvas runs the MindCanvas web application.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/justestif/go-mindcanvas/internal/canvas"
	"github.com/justestif/go-mindcanvas/internal/config"
	"github.com/justestif/go-mindcanvas/internal/huggingface"
	"github.com/justestif/go-mindcanvas/internal/llm"
	"github.com/justestif/go-mindcanvas/internal/logging"
	"github.com/justestif/go-mindcanvas/internal/pixabay"
	"github.com/justestif/go-mindcanvas/internal/quotes"
	"github.com/justestif/go-mindcanvas/internal/spotify"
	"github.com/justestif/go-mindcanvas/internal/web"
	webfs "github.com/justestif/go-mindcanvas/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	configured := cfg.ConfiguredProviders()
	for section, ok := range configured {
		if !ok {
			logger.Info("provider not configured, fallback content will be shown", zap.String("section", section))
		}
	}

	providers := canvas.Providers{
		Inference: huggingface.NewClient(huggingface.Config{
			Token:        cfg.Credentials.HuggingFaceToken,
			BaseURL:      cfg.Endpoints.HuggingFaceURL,
			EmotionModel: cfg.Endpoints.EmotionModel,
			TextModel:    cfg.Endpoints.TextModel,
			Timeout:      cfg.Timeouts.Inference,
		}),
		Media: pixabay.NewClient(pixabay.Config{
			APIKey:   cfg.Credentials.PixabayKey,
			ImageURL: cfg.Endpoints.PixabayImageURL,
			AudioURL: cfg.Endpoints.PixabayAudioURL,
			Timeout:  cfg.Timeouts.Media,
		}),
		Quotes: quotes.NewClient(quotes.Config{
			APIKey:  cfg.Credentials.QuotesKey,
			BaseURL: cfg.Endpoints.QuotesURL,
			Timeout: cfg.Timeouts.Quotes,
		}),
		Previews: spotify.NewSearcher(context.Background(), spotify.Config{
			ClientID:     cfg.Credentials.SpotifyID,
			ClientSecret: cfg.Credentials.SpotifySecret,
			APIURL:       cfg.Endpoints.SpotifyAPIURL,
			TokenURL:     cfg.Endpoints.SpotifyTokenURL,
			Timeout:      cfg.Timeouts.Media,
		}),
		Reflector: llm.NewClient(llm.Config{
			APIKey:  cfg.Credentials.OpenAIKey,
			BaseURL: cfg.Endpoints.OpenAIURL,
			Model:   cfg.Endpoints.OpenAIModel,
			Timeout: cfg.Timeouts.Inference,
		}),
	}

	service := canvas.NewService(*cfg, providers,
		canvas.WithLogger(logger),
		canvas.WithConcurrency(cfg.Concurrency),
	)

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		TemplatesFS: templates,
		StaticFS:    static,
		Composer:    service,
		Configured:  configured,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
