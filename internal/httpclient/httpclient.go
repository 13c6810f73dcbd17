// Package httpclient holds the request plumbing shared by provider clients.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

// UserAgent is sent with every provider request.
const UserAgent = "go-mindcanvas/1.0"

// maxBodyBytes bounds how much of a reply is read.
const maxBodyBytes = 4 << 20

// Sentinel errors for HTTP status classes.
var (
	// ErrUnauthorized is returned for 401 and 403 replies.
	ErrUnauthorized = errors.New("credential rejected")

	// ErrRateLimited is returned for 429 replies.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNotJSON is returned for a non-2xx reply whose body is not JSON,
	// such as an HTML error page.
	ErrNotJSON = errors.New("reply is not JSON")
)

// APIError is a non-2xx reply from a provider.
type APIError struct {
	StatusCode int
	Body       string
	// JSON reports whether the full body was valid JSON.
	JSON bool
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code and body shape to sentinel errors.
func (e *APIError) Unwrap() []error {
	var errs []error
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errs = append(errs, ErrUnauthorized)
	case http.StatusTooManyRequests:
		errs = append(errs, ErrRateLimited)
	}
	if !e.JSON {
		errs = append(errs, ErrNotJSON)
	}
	return errs
}

// New returns an HTTP client with the given per-call timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Do executes req and returns the body of a 2xx reply. Any other status
// becomes an *APIError carrying a trimmed body excerpt.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       excerpt(body),
			JSON:       json.Valid(body),
		}
	}

	return body, nil
}

// excerpt trims body to about 200 bytes without splitting a rune.
func excerpt(body []byte) string {
	const limit = 200
	if len(body) <= limit {
		return string(body)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
