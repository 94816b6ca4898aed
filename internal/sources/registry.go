// ABOUTME: Builds the adapter set from configuration
// ABOUTME: Markdown digests are dated, RSS feeds are latest-only, the issue file stands alone

package sources

import (
	"fmt"
	"regexp"

	"github.com/harper/secdigest/internal/config"
	"github.com/harper/secdigest/internal/filter"
)

// Build turns configured sources into adapters sharing one transport client.
func Build(cfg *config.Config, client Getter) (*Set, error) {
	p := cfg.Patterns
	base, err := filter.Compile(p.Keywords, p.Link, p.TrustedURL, p.TrustedPrefix)
	if err != nil {
		return nil, err
	}
	feedKeywords := p.FeedKeywords
	if feedKeywords == "" {
		feedKeywords = filter.DefaultFeedKeywords
	}
	feedRe, err := regexp.Compile(feedKeywords)
	if err != nil {
		return nil, fmt.Errorf("compile feed keyword pattern: %w", err)
	}
	feedPatterns := base.WithKeywords(feedRe)

	set := &Set{}
	for _, s := range cfg.Sources {
		switch s.Kind {
		case config.KindMarkdown:
			set.Dated = append(set.Dated, &MarkdownDigest{
				Repo:     s.Repo,
				Label:    s.Name,
				BaseURL:  cfg.HTTP.RawBaseURL,
				Branch:   s.Branch,
				Headers:  s.Headers,
				Patterns: base,
				Client:   client,
			})
		case config.KindRSS:
			patterns := base
			if s.FeedKeywords {
				patterns = feedPatterns
			}
			set.Latest = append(set.Latest, &Feed{
				URL:            s.URL,
				Label:          s.Name,
				Headers:        s.Headers,
				FilterKeywords: s.FilterKeywords,
				RequireTrusted: s.RequireTrusted,
				Patterns:       patterns,
				Client:         client,
			})
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", s.Name, s.Kind)
		}
	}

	set.Issue = []Source{&IssueFile{
		Path:     cfg.GetIssuePath(),
		Label:    config.IssueSourceName,
		Patterns: base,
	}}
	return set, nil
}
