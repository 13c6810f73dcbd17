package normalize

import (
	"encoding/json"
	"fmt"
)

// MaxReflectionLength is the display limit for generated text, in characters.
const MaxReflectionLength = 400

// PlaceholderReflection is shown when a generation reply carries no text.
const PlaceholderReflection = "✨ The canvas is quiet for now. Some dreams take a moment longer to find their words."

// Reflection is a short generated text.
type Reflection struct {
	Text string `json:"text"`
}

// GeneratedReflection normalizes a text generation reply of the form
// [{"generated_text": "..."}].
//
// A present text is truncated to MaxReflectionLength characters. A reply
// without it yields the placeholder with StatusNotFound. An undecodable body
// yields StatusProviderError.
func GeneratedReflection(body []byte) Result[Reflection] {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		if msg := providerErrorMessage(body); msg != "" {
			return Failed[Reflection](fmt.Errorf("text provider: %s", msg))
		}
		return Failed[Reflection](wrapUnparseable(err))
	}

	if len(items) > 0 {
		var text string
		if raw, ok := items[0]["generated_text"]; ok && json.Unmarshal(raw, &text) == nil && text != "" {
			return OK(Reflection{Text: Truncate(text, MaxReflectionLength)})
		}
	}

	return NotFound[Reflection]().WithFallback(Reflection{Text: PlaceholderReflection})
}

// Truncate cuts s to at most n characters with no word-boundary handling and
// no ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func wrapUnparseable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnparseable, err)
}
