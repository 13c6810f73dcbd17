// Package canvas assembles the five sections of a mood canvas for a keyword.
package canvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// DefaultKeyword is used when the submitted keyword is blank.
const DefaultKeyword = "dream"

// Section names a part of the canvas.
type Section string

const (
	SectionEmotion    Section = "emotion"
	SectionImage      Section = "image"
	SectionAudio      Section = "audio"
	SectionQuote      Section = "quote"
	SectionReflection Section = "reflection"
)

// Sections lists every section in display order.
var Sections = []Section{SectionEmotion, SectionImage, SectionAudio, SectionQuote, SectionReflection}

// Level is the severity of a section note.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Note explains why a section is not showing live provider content.
type Note struct {
	Level Level
	Text  string
}

// Canvas is the assembled result for one keyword submission.
type Canvas struct {
	ID        uuid.UUID
	Keyword   string
	CreatedAt time.Time

	Emotion    normalize.Result[normalize.EmotionDistribution]
	Image      normalize.Result[normalize.MediaReference]
	Audio      normalize.Result[normalize.MediaReference]
	Quote      normalize.Result[normalize.Quote]
	Reflection normalize.Result[normalize.Reflection]

	Mood  Mood
	Tiers []Tier
	// QuoteRequests is the number of category probes made for the quote.
	QuoteRequests int

	Notes map[Section]Note
}

// NormalizeKeyword trims keyword and substitutes DefaultKeyword when empty.
func NormalizeKeyword(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return DefaultKeyword
	}
	return keyword
}

// Status returns the provider status of a section.
func (c *Canvas) Status(s Section) normalize.Status {
	switch s {
	case SectionEmotion:
		return c.Emotion.Status
	case SectionImage:
		return c.Image.Status
	case SectionAudio:
		return c.Audio.Status
	case SectionQuote:
		return c.Quote.Status
	case SectionReflection:
		return c.Reflection.Status
	}
	return ""
}

// Err returns the error behind a section's status, if any.
func (c *Canvas) Err(s Section) error {
	switch s {
	case SectionEmotion:
		return c.Emotion.Err
	case SectionImage:
		return c.Image.Err
	case SectionAudio:
		return c.Audio.Err
	case SectionQuote:
		return c.Quote.Err
	case SectionReflection:
		return c.Reflection.Err
	}
	return nil
}

// Fallback reports whether a section shows fallback content.
func (c *Canvas) Fallback(s Section) bool {
	switch s {
	case SectionEmotion:
		return c.Emotion.Fallback
	case SectionImage:
		return c.Image.Fallback
	case SectionAudio:
		return c.Audio.Fallback
	case SectionQuote:
		return c.Quote.Fallback
	case SectionReflection:
		return c.Reflection.Fallback
	}
	return false
}

// TierOf returns the intensity tier index of an emotion label, 0 being the
// strongest. Unknown labels fall in the last tier.
func (c *Canvas) TierOf(label string) int {
	for i, tier := range c.Tiers {
		for _, l := range tier.Labels {
			if l == label {
				return i
			}
		}
	}
	return max(len(c.Tiers)-1, 0)
}

// noteFor builds the note for a non-OK status. env names the credential the
// section needs.
func noteFor(s Section, status normalize.Status, err error, keyword, env string) (Note, bool) {
	switch status {
	case normalize.StatusNotConfigured:
		return Note{Level: LevelInfo, Text: fmt.Sprintf("%s is not configured: set %s", s, env)}, true
	case normalize.StatusProviderError:
		return Note{Level: LevelWarning, Text: fmt.Sprintf("%s service error: %v", s, err)}, true
	case normalize.StatusUnavailable:
		return Note{Level: LevelWarning, Text: fmt.Sprintf("%s provider unavailable", s)}, true
	case normalize.StatusNotFound:
		return Note{Level: LevelInfo, Text: fmt.Sprintf("no results found for %s", keyword)}, true
	}
	return Note{}, false
}
