// ABOUTME: Archive-wide URL set, candidate deduplication, and the recency window
// ABOUTME: URL equality is exact string comparison; no normalization is applied

package aggregate

import (
	"time"

	"github.com/samber/lo"

	"github.com/harper/secdigest/internal/models"
	"github.com/harper/secdigest/internal/timeutil"
)

// URLSet holds every URL already in the archive.
type URLSet struct {
	urls map[string]struct{}
}

// NewURLSet indexes the URLs of articles.
func NewURLSet(articles []models.Article) *URLSet {
	s := &URLSet{urls: make(map[string]struct{}, len(articles))}
	for _, a := range articles {
		s.Add(a.URL)
	}
	return s
}

// Has reports whether url is known.
func (s *URLSet) Has(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Add records url. Empty URLs are ignored.
func (s *URLSet) Add(url string) {
	if url == "" {
		return
	}
	s.urls[url] = struct{}{}
}

// Len is the number of known URLs.
func (s *URLSet) Len() int {
	return len(s.urls)
}

// Dedupe keeps valid candidates whose URL is not in known, in input order.
// Accepted URLs are added to known, so repeats within the batch collapse to
// their first occurrence.
func Dedupe(candidates []models.Article, known *URLSet) []models.Article {
	return lo.Filter(candidates, func(a models.Article, _ int) bool {
		if !a.Valid() || known.Has(a.URL) {
			return false
		}
		known.Add(a.URL)
		return true
	})
}

// Stamp sets DateAdded on every article.
func Stamp(articles []models.Article, date string) []models.Article {
	return lo.Map(articles, func(a models.Article, _ int) models.Article {
		return a.Stamped(date)
	})
}

// RecentView returns the articles added within the last days days up to today,
// inclusive of both ends. Articles without a parseable date are excluded.
func RecentView(articles []models.Article, today time.Time, days int) []models.Article {
	cutoff := timeutil.Cutoff(today, days)
	return lo.Filter(articles, func(a models.Article, _ int) bool {
		return timeutil.OnOrAfter(a.DateAdded, cutoff)
	})
}
