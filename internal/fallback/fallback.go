// Package fallback holds the static content shown when a provider cannot
// produce a usable result.
package fallback

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// RNG is the source of randomness for fallback choices.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// StdRNG delegates to math/rand/v2 (auto-seeded).
type StdRNG struct{}

func (StdRNG) IntN(n int) int   { return rand.IntN(n) }
func (StdRNG) Float64() float64 { return rand.Float64() }

// EmotionLabels are the labels of the simulated distribution.
var EmotionLabels = []string{"Joy", "Curiosity", "Peace", "Wonder", "Sadness", "Fear"}

// Images maps lower-cased keywords to mood images.
var Images = map[string]string{
	"dream":  "https://cdn.pixabay.com/photo/2016/11/29/03/14/dreamcatcher-1867431_1280.jpg",
	"flower": "https://cdn.pixabay.com/photo/2018/08/27/21/45/rose-3636421_1280.jpg",
	"forest": "https://cdn.pixabay.com/photo/2015/11/07/11/29/forest-1031022_1280.jpg",
	"ocean":  "https://cdn.pixabay.com/photo/2015/03/26/09/54/ocean-690115_1280.jpg",
	"city":   "https://cdn.pixabay.com/photo/2016/11/29/09/32/city-1868538_1280.jpg",
	"sky":    "https://cdn.pixabay.com/photo/2015/09/18/20/16/clouds-945575_1280.jpg",
	"night":  "https://cdn.pixabay.com/photo/2017/01/18/17/14/milky-way-1993704_1280.jpg",
}

// imageKeys fixes the iteration order of Images for random picks.
var imageKeys = []string{"dream", "flower", "forest", "ocean", "city", "sky", "night"}

// Sounds are ambient clips. The first entry is the default clip.
var Sounds = []string{
	"https://cdn.pixabay.com/download/audio/2021/08/08/audio_720b7cc77f.mp3?filename=ambient-piano-11111.mp3",
	"https://cdn.pixabay.com/download/audio/2022/03/15/audio_1b1b4e4a90.mp3?filename=dreamy-ambient-piano-110054.mp3",
	"https://cdn.pixabay.com/download/audio/2021/09/14/audio_19f2bfa05b.mp3?filename=dreamy-ambient-1135.mp3",
}

// DefaultSound is used when the audio provider is unavailable.
var DefaultSound = Sounds[0]

// Quotes are dream quotes.
var Quotes = []normalize.Quote{
	{Text: "Dreams are the whispers of the soul.", Author: "Unknown"},
	{Text: "In dreams, we touch the infinite.", Author: "Anaïs Nin"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "A single dream is more powerful than a thousand realities.", Author: "J.R.R. Tolkien"},
	{Text: "Hold fast to dreams, for if dreams die, life is a broken-winged bird.", Author: "Langston Hughes"},
}

// reflectionTemplates take the keyword; %[2]s is the capitalized form.
var reflectionTemplates = []string{
	"✨ In the realm of %[1]s, emotions bloom like constellations in the sky.",
	"✨ Every %[1]s drifts between memory and imagination, a bridge of unseen colors.",
	"✨ To dream of %[1]s is to remember what it means to feel alive.",
	"✨ %[2]s becomes a mirror, reflecting both longing and peace.",
	"✨ Beneath the %[1]s, silence hums with the rhythm of forgotten dreams.",
}

// Tables picks fallback content using an RNG.
type Tables struct {
	rng RNG
}

// New creates fallback tables backed by rng. A nil rng uses StdRNG.
func New(rng RNG) *Tables {
	if rng == nil {
		rng = StdRNG{}
	}
	return &Tables{rng: rng}
}

// Emotions returns a simulated distribution: one score per label, uniform
// in [0.1, 1.0] and rounded to two decimals.
func (t *Tables) Emotions() normalize.EmotionDistribution {
	dist := make(normalize.EmotionDistribution, len(EmotionLabels))
	for i, label := range EmotionLabels {
		score := 0.1 + t.rng.Float64()*0.9
		dist[i] = normalize.EmotionScore{Label: label, Score: math.Round(score*100) / 100}
	}
	return dist
}

// Image returns the table image for keyword, or a random one.
func (t *Tables) Image(keyword string) normalize.MediaReference {
	url, ok := Images[strings.ToLower(keyword)]
	if !ok {
		url = Images[imageKeys[t.rng.IntN(len(imageKeys))]]
	}
	return normalize.MediaReference{Kind: normalize.MediaImage, URL: url, Keyword: keyword}
}

// Sound returns a random ambient clip.
func (t *Tables) Sound(keyword string) normalize.MediaReference {
	return normalize.MediaReference{Kind: normalize.MediaAudio, URL: Sounds[t.rng.IntN(len(Sounds))], Keyword: keyword}
}

// DefaultSoundFor returns the fixed default clip.
func (t *Tables) DefaultSoundFor(keyword string) normalize.MediaReference {
	return normalize.MediaReference{Kind: normalize.MediaAudio, URL: DefaultSound, Keyword: keyword}
}

// Quote returns a random quote.
func (t *Tables) Quote() normalize.Quote {
	return Quotes[t.rng.IntN(len(Quotes))]
}

// Reflection returns a random templated reflection for keyword.
func (t *Tables) Reflection(keyword string) normalize.Reflection {
	tmpl := reflectionTemplates[t.rng.IntN(len(reflectionTemplates))]
	return normalize.Reflection{Text: fmt.Sprintf(tmpl, keyword, capitalize(keyword))}
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
