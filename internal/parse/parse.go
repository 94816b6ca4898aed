// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Converts gofeed.Feed to a flat item list with trimmed title and link

package parse

import (
	"bytes"
	"errors"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ErrEmptyFeed is returned for an empty body.
var ErrEmptyFeed = errors.New("empty feed body")

// ParsedFeed represents a normalized feed structure
type ParsedFeed struct {
	Items []Item
}

// Item is one feed item reduced to what the adapters read.
type Item struct {
	Title string
	Link  string
}

// Parse parses RSS or Atom feed data and returns a normalized ParsedFeed
func Parse(data []byte) (*ParsedFeed, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFeed
	}

	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	parsed := &ParsedFeed{
		Items: make([]Item, 0, len(feed.Items)),
	}

	for _, it := range feed.Items {
		parsed.Items = append(parsed.Items, Item{
			Title: strings.TrimSpace(it.Title),
			Link:  strings.TrimSpace(it.Link),
		})
	}

	return parsed, nil
}
