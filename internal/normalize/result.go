// Package normalize converts variably-shaped provider replies into one fixed
// result shape per canvas section.
//
// Every function here is pure: it takes the raw reply body and returns a
// Result. Nothing panics and no error is returned separately; failures are
// carried inside the Result so the presentation layer can tell
// "not configured", "service error", "provider unavailable" and
// "no results found" apart.
package normalize

import "errors"

// Status classifies the outcome of a provider call.
type Status string

const (
	// StatusOK means the provider produced a usable value.
	StatusOK Status = "ok"
	// StatusNotConfigured means the credential was absent and no request was made.
	StatusNotConfigured Status = "not_configured"
	// StatusProviderError means a transport error, HTTP failure or malformed reply.
	StatusProviderError Status = "provider_error"
	// StatusUnavailable means a media provider replied with something that is
	// not the expected structure at all (for example an HTML error page).
	StatusUnavailable Status = "unavailable"
	// StatusNotFound means a well-formed reply with zero usable results.
	StatusNotFound Status = "not_found"
)

// Sentinel errors carried in results.
var (
	// ErrNotConfigured marks a result produced without a credential.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrMalformedResponse is returned when a reply has the right envelope but
	// entries are missing required fields.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrUnparseable is returned when a reply is not decodable as the expected structure.
	ErrUnparseable = errors.New("unparseable provider response")
)

// Result is a normalized value together with the signal that produced it.
// Value is only meaningful when Status is StatusOK or Fallback is true.
type Result[T any] struct {
	Value    T
	Status   Status
	Err      error
	Fallback bool
}

// OK wraps a successfully extracted value.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

// NotConfigured is the signal for a missing credential.
func NotConfigured[T any]() Result[T] {
	return Result[T]{Status: StatusNotConfigured, Err: ErrNotConfigured}
}

// Failed converts a transport or HTTP error into a provider error signal.
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusProviderError, Err: err}
}

// NotFound is the signal for a well-formed but empty reply.
func NotFound[T any]() Result[T] {
	return Result[T]{Status: StatusNotFound}
}

// Unavailable is the signal for an unparseable media reply.
func Unavailable[T any](err error) Result[T] {
	return Result[T]{Status: StatusUnavailable, Err: wrapUnparseable(err)}
}

// Usable reports whether the result carries a value to render.
func (r Result[T]) Usable() bool {
	return r.Status == StatusOK || r.Fallback
}

// WithFallback substitutes v while keeping the original status and error, so
// the presentation layer can still explain why the fallback is shown.
func (r Result[T]) WithFallback(v T) Result[T] {
	r.Value = v
	r.Fallback = true
	return r
}
