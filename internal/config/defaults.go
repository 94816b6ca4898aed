// ABOUTME: Centralized configuration defaults for secdigest
// ABOUTME: Holds the fixed upstream addresses, windows, and file names

package config

import "time"

// HTTP settings
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRetries     = 3
	DefaultRetryDelay  = 5 * time.Second
	DefaultUserAgent   = "Mozilla/5.0"
)

// Archive and page settings
const (
	DefaultArchiveDir = "archive"
	DefaultOutputDir  = "."
	DefaultRecentDays = 7
)

// Issue mode settings
const (
	IssuePathEnv     = "ISSUE_CONTENT_PATH"
	DefaultIssuePath = "/tmp/issue_content.txt"
	IssueSourceName  = "GitHub Issue"
)

// Source kinds
const (
	KindMarkdown = "markdown"
	KindRSS      = "rss"
)

// browserHeaders are sent to feeds that reject bare clients.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7",
}

// DefaultSources are the upstreams the pipeline was built around.
func DefaultSources() []Source {
	return []Source{
		{Name: "ChainReactors", Kind: KindMarkdown, Repo: "chainreactors/picker"},
		{Name: "BruceFeIix", Kind: KindMarkdown, Repo: "BruceFeIix/picker"},
		{
			Name:           "Doonsec",
			Kind:           KindRSS,
			URL:            "https://wechat.doonsec.com/rss.xml",
			FilterKeywords: true,
			RequireTrusted: true,
			FeedKeywords:   true,
		},
		{
			Name:    "MRXN",
			Kind:    KindRSS,
			URL:     "https://mrxn.net/rss.php",
			Headers: browserHeaders,
		},
	}
}
