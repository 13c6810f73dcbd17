package normalize

import (
	"encoding/json"
	"strings"
)

// Quote is a quotation with its author.
type Quote struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
}

type quoteItem struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// Quotes normalizes a quotes reply of the form [{quote, author, category}, ...].
// The first entry with non-blank text wins. An empty list yields
// StatusNotFound; an undecodable body yields StatusProviderError.
func Quotes(body []byte) Result[Quote] {
	var items []quoteItem
	if err := json.Unmarshal(body, &items); err != nil {
		return Failed[Quote](wrapUnparseable(err))
	}

	for _, item := range items {
		text := strings.TrimSpace(item.Quote)
		if text == "" {
			continue
		}
		author := strings.TrimSpace(item.Author)
		if author == "" {
			author = "Unknown"
		}
		return OK(Quote{Text: text, Author: author, Category: item.Category})
	}

	return NotFound[Quote]()
}
