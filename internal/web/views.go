package web

import (
	"time"

	"github.com/justestif/go-mindcanvas/internal/canvas"
	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a notification shown on the page or with a section.
type FlashMessage struct {
	Type    string // "info", "warning"
	Message string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Keyword string
	Canvas  CanvasView
}

// CanvasView is the template model of a canvas. Section values are nil
// when the section has nothing to show.
type CanvasView struct {
	ID        string
	Keyword   string
	CreatedAt time.Time
	Mood      canvas.Mood

	Emotions   []EmotionBar
	Image      *normalize.MediaReference
	Audio      *normalize.MediaReference
	Quote      *normalize.Quote
	Reflection string

	Sections map[string]SectionView
}

// SectionView describes how a section was produced.
type SectionView struct {
	Status   string
	Fallback bool
	Note     *FlashMessage
}

// EmotionBar is one bar of the emotion chart.
type EmotionBar struct {
	Label string
	Score float64
	Tier  int
}

// NewCanvasView builds the template model for c.
func NewCanvasView(c *canvas.Canvas) CanvasView {
	v := CanvasView{
		ID:        c.ID.String(),
		Keyword:   c.Keyword,
		CreatedAt: c.CreatedAt,
		Mood:      c.Mood,
		Sections:  make(map[string]SectionView, len(canvas.Sections)),
	}

	if c.Emotion.Usable() {
		for _, e := range c.Emotion.Value {
			v.Emotions = append(v.Emotions, EmotionBar{Label: e.Label, Score: e.Score, Tier: c.TierOf(e.Label)})
		}
	}
	if c.Image.Usable() {
		v.Image = &c.Image.Value
	}
	if c.Audio.Usable() {
		v.Audio = &c.Audio.Value
	}
	if c.Quote.Usable() {
		v.Quote = &c.Quote.Value
	}
	if c.Reflection.Usable() {
		v.Reflection = c.Reflection.Value.Text
	}

	for _, s := range canvas.Sections {
		sv := SectionView{Status: string(c.Status(s)), Fallback: c.Fallback(s)}
		if note, ok := c.Notes[s]; ok {
			sv.Note = &FlashMessage{Type: string(note.Level), Message: note.Text}
		}
		v.Sections[string(s)] = sv
	}

	return v
}

// canvasResponse is the JSON form of a canvas.
type canvasResponse struct {
	ID        string                     `json:"id"`
	Keyword   string                     `json:"keyword"`
	CreatedAt time.Time                  `json:"created_at"`
	Mood      *moodResponse              `json:"mood,omitempty"`
	Sections  map[string]sectionResponse `json:"sections"`
}

type moodResponse struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Intensity   float64    `json:"intensity"`
	Valence     float64    `json:"valence"`
	Tiers       [][]string `json:"tiers,omitempty"`
}

type sectionResponse struct {
	Status   string `json:"status"`
	Fallback bool   `json:"fallback"`
	Level    string `json:"level,omitempty"`
	Message  string `json:"message,omitempty"`
	Value    any    `json:"value,omitempty"`
}

func newCanvasResponse(c *canvas.Canvas) canvasResponse {
	resp := canvasResponse{
		ID:        c.ID.String(),
		Keyword:   c.Keyword,
		CreatedAt: c.CreatedAt,
		Sections:  make(map[string]sectionResponse, len(canvas.Sections)),
	}

	if c.Mood.Name != "" {
		resp.Mood = &moodResponse{
			Name:        c.Mood.Name,
			Description: c.Mood.Description,
			Intensity:   c.Mood.Intensity,
			Valence:     c.Mood.Valence,
		}
		for _, tier := range c.Tiers {
			resp.Mood.Tiers = append(resp.Mood.Tiers, tier.Labels)
		}
	}

	values := map[canvas.Section]func() (any, bool){
		canvas.SectionEmotion:    func() (any, bool) { return c.Emotion.Value, c.Emotion.Usable() },
		canvas.SectionImage:      func() (any, bool) { return c.Image.Value, c.Image.Usable() },
		canvas.SectionAudio:      func() (any, bool) { return c.Audio.Value, c.Audio.Usable() },
		canvas.SectionQuote:      func() (any, bool) { return c.Quote.Value, c.Quote.Usable() },
		canvas.SectionReflection: func() (any, bool) { return c.Reflection.Value, c.Reflection.Usable() },
	}

	for _, s := range canvas.Sections {
		sr := sectionResponse{Status: string(c.Status(s)), Fallback: c.Fallback(s)}
		if note, ok := c.Notes[s]; ok {
			sr.Level = string(note.Level)
			sr.Message = note.Text
		}
		if v, ok := values[s](); ok {
			sr.Value = v
		}
		resp.Sections[string(s)] = sr
	}

	return resp
}
