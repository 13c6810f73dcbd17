// Package llm generates reflections through an OpenAI-compatible chat
// completions API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/justestif/go-mindcanvas/internal/httpclient"
	"github.com/justestif/go-mindcanvas/internal/normalize"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
	maxTokens      = 120
)

const systemPrompt = "You write short, poetic reflections about dreams. " +
	"Answer with two or three sentences and no preamble."

// Config holds chat completion configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client generates reflections with a chat model.
type Client struct {
	api        openai.Client
	model      string
	configured bool
}

// NewClient creates a new reflection client from the provided configuration.
func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpclient.New(timeout)),
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", httpclient.UserAgent),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}

	return &Client{
		api:        openai.NewClient(opts...),
		model:      model,
		configured: cfg.APIKey != "",
	}
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.configured
}

// Reflect asks the model for a reflection on keyword. The text is truncated
// to normalize.MaxReflectionLength; an empty reply yields the placeholder.
func (c *Client) Reflect(ctx context.Context, keyword string) normalize.Result[normalize.Reflection] {
	if !c.configured {
		return normalize.NotConfigured[normalize.Reflection]()
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Reflect on a dream of %s.", keyword)),
		},
		MaxCompletionTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return normalize.Failed[normalize.Reflection](fmt.Errorf("chat completion: %w", err))
	}

	if len(resp.Choices) > 0 {
		if text := strings.TrimSpace(resp.Choices[0].Message.Content); text != "" {
			return normalize.OK(normalize.Reflection{Text: normalize.Truncate(text, normalize.MaxReflectionLength)})
		}
	}

	return normalize.NotFound[normalize.Reflection]().WithFallback(normalize.Reflection{Text: normalize.PlaceholderReflection})
}
