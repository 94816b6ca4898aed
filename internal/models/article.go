// ABOUTME: Article model, the canonical record every source adapter produces
// ABOUTME: URL is the archive-wide unique key; DateAdded is the ingestion date, not the publish date

package models

import "strings"

// UnknownDate is the group key used for records that carry no DateAdded.
const UnknownDate = "unknown"

// Article is a single security-advisory link.
type Article struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	DateAdded string `json:"date_added,omitempty"`
}

// NewArticle builds a candidate with trimmed fields and no DateAdded.
func NewArticle(title, url, source string) Article {
	return Article{
		Title:  strings.TrimSpace(title),
		URL:    strings.TrimSpace(url),
		Source: source,
	}
}

// Valid reports whether the record has both a title and a URL.
func (a Article) Valid() bool {
	return a.Title != "" && a.URL != ""
}

// Day returns DateAdded, or UnknownDate when it is empty.
func (a Article) Day() string {
	if a.DateAdded == "" {
		return UnknownDate
	}
	return a.DateAdded
}

// Stamped returns a copy of the article with DateAdded set.
func (a Article) Stamped(date string) Article {
	a.DateAdded = date
	return a
}
