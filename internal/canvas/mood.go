package canvas

import (
	"strings"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

// Mood is a named reading of an emotion distribution.
type Mood struct {
	Name        string
	Description string
	Intensity   float64 // Top score
	Valence     float64 // Positive share of the classified weight, 0.5 when neutral
}

var positiveLabels = map[string]bool{
	"joy": true, "curiosity": true, "peace": true, "wonder": true,
	"love": true, "optimism": true, "surprise": true, "neutral": true,
}

var negativeLabels = map[string]bool{
	"sadness": true, "fear": true, "anger": true, "disgust": true,
}

// moodName names a mood using an intensity/valence quadrant.
//
// Quadrants:
//   - High Intensity + Positive = "Radiant & Hopeful"
//   - High Intensity + Negative = "Restless & Intense"
//   - Low Intensity  + Positive = "Calm & Content"
//   - Low Intensity  + Negative = "Quiet & Melancholy"
func moodName(intensity, valence float64) (name, description string) {
	high := intensity > 0.6
	positive := valence > 0.5

	switch {
	case high && positive:
		return "Radiant & Hopeful", "Bright, expansive feelings that reach outward"
	case high && !positive:
		return "Restless & Intense", "Strong currents with darker emotional tones"
	case !high && positive:
		return "Calm & Content", "Gentle and settled, an easy kind of light"
	default:
		return "Quiet & Melancholy", "Soft and inward, a dream for quiet moments"
	}
}

// MoodOf derives a mood from a distribution. An empty distribution yields
// the zero Mood.
func MoodOf(dist normalize.EmotionDistribution) Mood {
	top, ok := dist.Top()
	if !ok {
		return Mood{}
	}

	var pos, neg float64
	for _, e := range dist {
		label := strings.ToLower(e.Label)
		switch {
		case positiveLabels[label]:
			pos += e.Score
		case negativeLabels[label]:
			neg += e.Score
		}
	}

	valence := 0.5
	if pos+neg > 0 {
		valence = pos / (pos + neg)
	}

	name, description := moodName(top.Score, valence)
	return Mood{
		Name:        name,
		Description: description,
		Intensity:   top.Score,
		Valence:     valence,
	}
}
