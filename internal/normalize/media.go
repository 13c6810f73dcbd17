package normalize

import (
	"encoding/json"
	"errors"
	"strings"
)

// MediaKind distinguishes image and audio references.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

// Field lists tried in order on the first search hit.
var (
	ImageFields = []string{"largeImageURL", "webformatURL"}
	AudioFields = []string{"audio", "preview"}
)

// MediaReference is a single media URL and the keyword that found it.
type MediaReference struct {
	Kind        MediaKind `json:"kind"`
	URL         string    `json:"url"`
	Keyword     string    `json:"keyword"`
	Attribution string    `json:"attribution,omitempty"`
}

var errMissingHits = errors.New(`reply has no "hits" list`)

// Media normalizes an image or audio search reply of the form
// {"hits": [{...}, ...]}.
//
// A body that is not that structure yields StatusUnavailable. An empty hit
// list, or a first hit without any of the given fields, yields
// StatusNotFound.
func Media(body []byte, kind MediaKind, keyword string, fields ...string) Result[MediaReference] {
	var reply struct {
		Hits *[]map[string]any `json:"hits"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return Unavailable[MediaReference](err)
	}
	if reply.Hits == nil {
		return Unavailable[MediaReference](errMissingHits)
	}

	hits := *reply.Hits
	if len(hits) == 0 {
		return NotFound[MediaReference]()
	}

	first := hits[0]
	for _, field := range fields {
		if url, ok := first[field].(string); ok && strings.TrimSpace(url) != "" {
			ref := MediaReference{
				Kind:    kind,
				URL:     url,
				Keyword: keyword,
			}
			if user, ok := first["user"].(string); ok {
				ref.Attribution = user
			}
			return OK(ref)
		}
	}

	return NotFound[MediaReference]()
}
