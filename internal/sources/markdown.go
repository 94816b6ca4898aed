// ABOUTME: Adapter for curated daily markdown digests hosted in git repositories
// ABOUTME: Builds the per-day raw file URL and keeps keyword-matching lines with trusted links

package sources

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/harper/secdigest/internal/fetch"
	"github.com/harper/secdigest/internal/filter"
	"github.com/harper/secdigest/internal/models"
	"github.com/harper/secdigest/internal/timeutil"
)

// DefaultRawBaseURL serves raw repository files.
const DefaultRawBaseURL = "https://raw.githubusercontent.com"

// MarkdownDigest reads {repo}/archive/daily/{year}/{date}.md.
type MarkdownDigest struct {
	Repo     string
	Label    string
	BaseURL  string
	Branch   string
	Headers  map[string]string
	Patterns *filter.Patterns
	Client   Getter
}

var _ Source = (*MarkdownDigest)(nil)

func (m *MarkdownDigest) Name() string { return m.Label }

// URL returns the digest address for date.
func (m *MarkdownDigest) URL(date string) string {
	base := m.BaseURL
	if base == "" {
		base = DefaultRawBaseURL
	}
	branch := m.Branch
	if branch == "" {
		branch = "master"
	}
	return fmt.Sprintf("%s/%s/%s/archive/daily/%s/%s.md",
		strings.TrimRight(base, "/"), m.Repo, branch, timeutil.Year(date), date)
}

func (m *MarkdownDigest) Fetch(ctx context.Context, req Request) []models.Article {
	logger := log.WithFields(log.Fields{"source": m.Label, "date": req.Date})

	if !timeutil.IsDate(req.Date) {
		logger.Warn("markdown digest needs a target date")
		return nil
	}

	url := m.URL(req.Date)
	logger.WithField("url", url).Info("fetching daily digest")

	result, err := m.Client.Get(ctx, url, m.Headers)
	if fetch.IsStatus(err, http.StatusNotFound) {
		logger.WithField("url", url).Info("no digest published for this date")
		return nil
	}
	if err != nil {
		logger.WithField("url", url).Warnf("digest unavailable: %v", err)
		return nil
	}

	text, err := result.Text()
	if err != nil {
		logger.Warnf("cannot decode digest: %v", err)
		return nil
	}

	articles := ParseMarkdown(text, m.Label, m.Patterns)
	logger.WithField("count", len(articles)).Info("parsed daily digest")
	return articles
}

// ParseMarkdown scans a digest line by line. A line becomes a candidate when it
// matches a keyword and carries a [title](url) link into the trusted host.
func ParseMarkdown(text, label string, patterns *filter.Patterns) []models.Article {
	if patterns == nil {
		patterns = filter.Default()
	}

	var articles []models.Article
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !patterns.MatchKeyword(line) {
			continue
		}
		title, url, ok := patterns.ExtractLink(line)
		if !ok {
			continue
		}
		articles = append(articles, models.NewArticle(title, url, label))
	}
	if err := scanner.Err(); err != nil {
		log.WithField("source", label).Warnf("stopped scanning digest: %v", err)
	}
	return articles
}
