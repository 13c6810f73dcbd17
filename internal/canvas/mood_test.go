package canvas

import (
	"testing"

	"github.com/justestif/go-mindcanvas/internal/normalize"
)

func TestMoodOf(t *testing.T) {
	tests := []struct {
		name string
		dist normalize.EmotionDistribution
		want string
	}{
		{
			name: "strong positive",
			dist: normalize.EmotionDistribution{{Label: "joy", Score: 0.9}, {Label: "sadness", Score: 0.05}},
			want: "Radiant & Hopeful",
		},
		{
			name: "strong negative",
			dist: normalize.EmotionDistribution{{Label: "fear", Score: 0.8}, {Label: "joy", Score: 0.1}},
			want: "Restless & Intense",
		},
		{
			name: "mild positive",
			dist: normalize.EmotionDistribution{{Label: "neutral", Score: 0.5}, {Label: "anger", Score: 0.2}},
			want: "Calm & Content",
		},
		{
			name: "mild negative",
			dist: normalize.EmotionDistribution{{Label: "sadness", Score: 0.4}, {Label: "joy", Score: 0.3}},
			want: "Quiet & Melancholy",
		},
		{
			name: "labels are case-insensitive",
			dist: normalize.EmotionDistribution{{Label: "Joy", Score: 0.7}, {Label: "Fear", Score: 0.2}},
			want: "Radiant & Hopeful",
		},
		{
			name: "boundary intensity exactly 0.6 is low",
			dist: normalize.EmotionDistribution{{Label: "joy", Score: 0.6}},
			want: "Calm & Content",
		},
		{
			name: "unknown labels only are neutral valence",
			dist: normalize.EmotionDistribution{{Label: "LABEL_0", Score: 0.9}},
			want: "Restless & Intense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoodOf(tt.dist)
			if got.Name != tt.want {
				t.Errorf("MoodOf().Name = %q, want %q", got.Name, tt.want)
			}
			if got.Description == "" {
				t.Error("Description should not be empty")
			}
		})
	}
}

func TestMoodOf_Values(t *testing.T) {
	dist := normalize.EmotionDistribution{{Label: "joy", Score: 0.5}, {Label: "fear", Score: 0.25}, {Label: "surprise", Score: 0.25}}

	got := MoodOf(dist)

	if got.Intensity != 0.5 {
		t.Errorf("Intensity = %v, want 0.5", got.Intensity)
	}
	if got.Valence != 0.75 {
		t.Errorf("Valence = %v, want 0.75", got.Valence)
	}
}

func TestMoodOf_Empty(t *testing.T) {
	if got := MoodOf(nil); got != (Mood{}) {
		t.Errorf("MoodOf(nil) = %+v, want zero Mood", got)
	}
}
