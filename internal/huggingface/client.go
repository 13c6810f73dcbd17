// Package huggingface calls hosted inference models for emotion
// classification and text generation.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/justestif/go-mindcanvas/internal/httpclient"
)

const (
	defaultBaseURL = "https://router.huggingface.co/hf-inference/models/"
	defaultTimeout = 30 * time.Second

	// maxNewTokens bounds generation; the reply is truncated for display anyway.
	maxNewTokens = 120
)

// ErrMissingToken is returned when no inference token is configured.
var ErrMissingToken = errors.New("missing HF_API_TOKEN")

// Config holds inference API configuration.
type Config struct {
	Token        string
	BaseURL      string
	EmotionModel string
	TextModel    string
	Timeout      time.Duration
}

// Client is a Hugging Face inference API client. Replies are returned raw
// for the normalizer.
type Client struct {
	token        string
	httpClient   *http.Client
	baseURL      string
	emotionModel string
	textModel    string
}

// NewClient creates a new inference client from the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		token:        cfg.Token,
		httpClient:   httpclient.New(timeout),
		baseURL:      strings.TrimRight(baseURL, "/") + "/",
		emotionModel: cfg.EmotionModel,
		textModel:    cfg.TextModel,
	}
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ClassifyEmotion sends text to the emotion model and returns the raw reply.
func (c *Client) ClassifyEmotion(ctx context.Context, text string) ([]byte, error) {
	body, err := c.infer(ctx, c.emotionModel, inferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"top_k": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("classifying emotion: %w", err)
	}
	return body, nil
}

// GenerateText sends prompt to the text model and returns the raw reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) ([]byte, error) {
	body, err := c.infer(ctx, c.textModel, inferenceRequest{
		Inputs: prompt,
		Parameters: map[string]any{
			"max_new_tokens":   maxNewTokens,
			"return_full_text": false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generating text: %w", err)
	}
	return body, nil
}

// ReflectionPrompt builds the generation prompt for a keyword.
func ReflectionPrompt(keyword string) string {
	return fmt.Sprintf("Write a short, poetic reflection about a dream of %s:", keyword)
}

func (c *Client) infer(ctx context.Context, model string, payload inferenceRequest) ([]byte, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+model, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	return httpclient.Do(c.httpClient, req)
}
