package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadKind tags the shape of an emotion classifier reply.
type PayloadKind int

const (
	// PayloadUnrecognized is anything other than a non-empty list.
	PayloadUnrecognized PayloadKind = iota
	// PayloadFlatList is [{label, score}, ...].
	PayloadFlatList
	// PayloadNestedList is [[{label, score}, ...]].
	PayloadNestedList
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadFlatList:
		return "flat"
	case PayloadNestedList:
		return "nested"
	default:
		return "unrecognized"
	}
}

// EmotionPayload is an emotion reply resolved once at the boundary. Items
// holds the raw label/score entries regardless of nesting.
type EmotionPayload struct {
	Kind  PayloadKind
	Items []json.RawMessage
}

// EmotionScore is a single label with its confidence in [0, 1].
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EmotionDistribution is an ordered label to score mapping.
type EmotionDistribution []EmotionScore

// Map returns the distribution as a label to score map.
func (d EmotionDistribution) Map() map[string]float64 {
	m := make(map[string]float64, len(d))
	for _, e := range d {
		m[e.Label] = e.Score
	}
	return m
}

// Labels returns labels in order, for charting.
func (d EmotionDistribution) Labels() []string {
	labels := make([]string, len(d))
	for i, e := range d {
		labels[i] = e.Label
	}
	return labels
}

// Scores returns scores in label order, for charting.
func (d EmotionDistribution) Scores() []float64 {
	scores := make([]float64, len(d))
	for i, e := range d {
		scores[i] = e.Score
	}
	return scores
}

// Top returns the highest-scoring entry. The first entry wins ties.
func (d EmotionDistribution) Top() (EmotionScore, bool) {
	if len(d) == 0 {
		return EmotionScore{}, false
	}
	top := d[0]
	for _, e := range d[1:] {
		if e.Score > top.Score {
			top = e
		}
	}
	return top, true
}

// DecodeEmotionPayload resolves the reply shape without extracting entries.
func DecodeEmotionPayload(body []byte) EmotionPayload {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil || len(top) == 0 {
		return EmotionPayload{Kind: PayloadUnrecognized}
	}

	first := bytes.TrimSpace(top[0])
	if len(first) == 0 {
		return EmotionPayload{Kind: PayloadUnrecognized}
	}

	switch first[0] {
	case '[':
		var inner []json.RawMessage
		if err := json.Unmarshal(first, &inner); err != nil {
			return EmotionPayload{Kind: PayloadUnrecognized}
		}
		return EmotionPayload{Kind: PayloadNestedList, Items: inner}
	case '{':
		return EmotionPayload{Kind: PayloadFlatList, Items: top}
	default:
		return EmotionPayload{Kind: PayloadUnrecognized}
	}
}

// emotionItem uses pointers so absent keys can be told apart from zero values.
type emotionItem struct {
	Label *string  `json:"label"`
	Score *float64 `json:"score"`
}

// Emotion normalizes an emotion classifier reply.
//
// An empty list or well-formed JSON of an unrecognized shape means "no
// emotion data" and yields StatusNotFound. A body that is not JSON, a
// provider error object ({"error": "..."}) or an entry missing label or
// score yields StatusProviderError.
func Emotion(body []byte) Result[EmotionDistribution] {
	payload := DecodeEmotionPayload(body)
	if payload.Kind == PayloadUnrecognized {
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return Failed[EmotionDistribution](wrapUnparseable(err))
		}
		if msg := providerErrorMessage(body); msg != "" {
			return Failed[EmotionDistribution](fmt.Errorf("emotion provider: %s", msg))
		}
		return NotFound[EmotionDistribution]()
	}

	if len(payload.Items) == 0 {
		return NotFound[EmotionDistribution]()
	}

	dist := make(EmotionDistribution, 0, len(payload.Items))
	index := make(map[string]int, len(payload.Items))

	for i, raw := range payload.Items {
		var item emotionItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return Failed[EmotionDistribution](fmt.Errorf("%w: emotion entry %d: %w", ErrMalformedResponse, i, err))
		}
		if item.Label == nil || item.Score == nil {
			return Failed[EmotionDistribution](fmt.Errorf("%w: emotion entry %d missing label or score", ErrMalformedResponse, i))
		}
		if *item.Score < 0 || *item.Score > 1 {
			return Failed[EmotionDistribution](fmt.Errorf("%w: emotion entry %d score %v out of range", ErrMalformedResponse, i, *item.Score))
		}

		// A repeated label keeps its first position and takes the later score.
		if pos, ok := index[*item.Label]; ok {
			dist[pos].Score = *item.Score
			continue
		}
		index[*item.Label] = len(dist)
		dist = append(dist, EmotionScore{Label: *item.Label, Score: *item.Score})
	}

	return OK(dist)
}

// providerErrorMessage extracts the message from an {"error": "..."} reply.
func providerErrorMessage(body []byte) string {
	var e struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == nil {
		return ""
	}
	switch v := e.Error.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok {
			return msg
		}
	}
	return fmt.Sprint(e.Error)
}
