// ABOUTME: Keyword and link pattern sets shared by the source adapters
// ABOUTME: Each adapter holds its own Patterns so tests can swap in fixtures

package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Default pattern sources.
const (
	DefaultKeywords     = `(?i)(复现|漏洞|CVE-\d+|CNVD-\d+|CNNVD-\d+|XVE-\d+|QVD-\d+|POC|EXP|0day|1day|nday|RCE|代码执行|命令执行|代码审计)`
	DefaultFeedKeywords = `(?i)(复现|漏洞|CVE-\d+|CNVD-\d+|CNNVD-\d+|XVE-\d+|QVD-\d+|POC|EXP|0day|1day|nday|RCE|代码执行|命令执行|代码审计|渗透)`
	DefaultLink         = `\[(.*?)\]\((https://mp\.weixin\.qq\.com/.*?)\)`
	DefaultTrustedURL   = `(?i)(https://mp\.weixin\.qq\.com/[^\s)]+)`
	DefaultTrustedHost  = "https://mp.weixin.qq.com/"
)

// Patterns is the regex set one adapter filters and extracts with.
type Patterns struct {
	Keywords      *regexp.Regexp
	Link          *regexp.Regexp
	TrustedURL    *regexp.Regexp
	TrustedPrefix string
}

// Default returns the pattern set used by the markdown digests.
func Default() *Patterns {
	return &Patterns{
		Keywords:      regexp.MustCompile(DefaultKeywords),
		Link:          regexp.MustCompile(DefaultLink),
		TrustedURL:    regexp.MustCompile(DefaultTrustedURL),
		TrustedPrefix: DefaultTrustedHost,
	}
}

// Compile builds a pattern set from configured expressions.
// Empty strings fall back to the defaults.
func Compile(keywords, link, trustedURL, trustedPrefix string) (*Patterns, error) {
	p := Default()

	var err error
	if keywords != "" {
		if p.Keywords, err = regexp.Compile(keywords); err != nil {
			return nil, fmt.Errorf("compile keyword pattern: %w", err)
		}
	}
	if link != "" {
		if p.Link, err = regexp.Compile(link); err != nil {
			return nil, fmt.Errorf("compile link pattern: %w", err)
		}
		if p.Link.NumSubexp() < 2 {
			return nil, fmt.Errorf("link pattern needs title and url groups: %q", link)
		}
	}
	if trustedURL != "" {
		if p.TrustedURL, err = regexp.Compile(trustedURL); err != nil {
			return nil, fmt.Errorf("compile trusted url pattern: %w", err)
		}
	}
	if trustedPrefix != "" {
		p.TrustedPrefix = trustedPrefix
	}
	return p, nil
}

// WithKeywords returns a copy of p using a different keyword pattern.
func (p *Patterns) WithKeywords(re *regexp.Regexp) *Patterns {
	cp := *p
	cp.Keywords = re
	return &cp
}

// MatchKeyword reports whether s contains a security-relevance keyword.
func (p *Patterns) MatchKeyword(s string) bool {
	return p.Keywords != nil && p.Keywords.MatchString(s)
}

// ExtractLink pulls the first [title](url) link into the trusted host out of line.
func (p *Patterns) ExtractLink(line string) (title, url string, ok bool) {
	m := p.Link.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	title = strings.TrimSpace(m[1])
	url = CleanURL(m[2])
	if title == "" || url == "" {
		return "", "", false
	}
	return title, url, true
}

// FindURLs returns every trusted URL in text, in order of appearance.
func (p *Patterns) FindURLs(text string) []string {
	matches := p.TrustedURL.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if u := CleanURL(m); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Trusted reports whether url points into the trusted link host.
func (p *Patterns) Trusted(url string) bool {
	return strings.HasPrefix(url, p.TrustedPrefix)
}

// CleanURL trims whitespace and stray closing parentheses.
func CleanURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), ")")
}
