// ABOUTME: Adapter for a manually supplied issue body saved to a local file
// ABOUTME: Every trusted link in the file becomes a candidate with a synthesized title

package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/harper/secdigest/internal/filter"
	"github.com/harper/secdigest/internal/models"
)

// DefaultIssueTitlePrefix starts every synthesized issue title.
const DefaultIssueTitlePrefix = "来自Issue的链接-"

const issueTitleURLChars = 50

// IssueFile scans one local file for trusted links.
type IssueFile struct {
	Path        string
	Label       string
	TitlePrefix string
	Patterns    *filter.Patterns
}

var _ Source = (*IssueFile)(nil)

func (i *IssueFile) Name() string { return i.Label }

func (i *IssueFile) Fetch(_ context.Context, _ Request) []models.Article {
	logger := log.WithFields(log.Fields{"source": i.Label, "path": i.Path})

	data, err := os.ReadFile(i.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no issue file")
		} else {
			logger.Warnf("cannot read issue file: %v", err)
		}
		return nil
	}

	patterns := i.Patterns
	if patterns == nil {
		patterns = filter.Default()
	}
	prefix := i.TitlePrefix
	if prefix == "" {
		prefix = DefaultIssueTitlePrefix
	}

	urls := patterns.FindURLs(string(data))
	articles := make([]models.Article, 0, len(urls))
	for _, u := range urls {
		articles = append(articles, models.NewArticle(IssueTitle(prefix, u), u, i.Label))
	}

	logger.WithField("count", len(articles)).Info("read issue links")
	return articles
}

// IssueTitle builds "{prefix}{first 50 chars of url}...".
func IssueTitle(prefix, url string) string {
	runes := []rune(url)
	if len(runes) > issueTitleURLChars {
		runes = runes[:issueTitleURLChars]
	}
	return prefix + string(runes) + "..."
}
