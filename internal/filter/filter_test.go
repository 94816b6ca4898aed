// ABOUTME: Tests for keyword and link pattern matching
// ABOUTME: Uses inline markdown lines like the ones found in daily digests

package filter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeyword(t *testing.T) {
	p := Default()

	tests := []struct {
		name     string
		line     string
		expected bool
	}{
		{"cve id", "CVE-2024-3400 analysis", true},
		{"lowercase rce", "apache rce chain", true},
		{"localized vuln", "某系统漏洞分析", true},
		{"poc", "PoC released", true},
		{"cnvd id", "CNVD-2024-1234", true},
		{"no keyword", "Weekly reading list", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.MatchKeyword(tt.line))
		})
	}
}

func TestExtractLink(t *testing.T) {
	p := Default()

	title, url, ok := p.ExtractLink("* [ Apache RCE complete writeup ](https://mp.weixin.qq.com/s/abc123) - note")
	require.True(t, ok)
	assert.Equal(t, "Apache RCE complete writeup", title)
	assert.Equal(t, "https://mp.weixin.qq.com/s/abc123", url)

	_, _, ok = p.ExtractLink("[Apache RCE](https://example.com/post)")
	assert.False(t, ok, "links outside the trusted host are ignored")

	_, _, ok = p.ExtractLink("[](https://mp.weixin.qq.com/s/abc)")
	assert.False(t, ok, "empty titles are ignored")
}

func TestExtractLink_StripsTrailingParen(t *testing.T) {
	p := Default()

	_, url, ok := p.ExtractLink("[RCE](https://mp.weixin.qq.com/s/x))")
	require.True(t, ok)
	assert.Equal(t, "https://mp.weixin.qq.com/s/x", url)
}

func TestFindURLs(t *testing.T) {
	p := Default()
	text := "see https://mp.weixin.qq.com/s/one and\n(https://mp.weixin.qq.com/s/two) plus https://example.com/x"

	assert.Equal(t, []string{
		"https://mp.weixin.qq.com/s/one",
		"https://mp.weixin.qq.com/s/two",
	}, p.FindURLs(text))
}

func TestTrusted(t *testing.T) {
	p := Default()
	assert.True(t, p.Trusted("https://mp.weixin.qq.com/s/abc"))
	assert.False(t, p.Trusted("http://mp.weixin.qq.com/s/abc"))
	assert.False(t, p.Trusted("https://mrxn.net/post/1"))
}

func TestCompile(t *testing.T) {
	p, err := Compile(`(?i)fixture`, "", "", "https://example.com/")
	require.NoError(t, err)
	assert.True(t, p.MatchKeyword("a FIXTURE line"))
	assert.False(t, p.MatchKeyword("CVE-2024-1"))
	assert.True(t, p.Trusted("https://example.com/a"))

	_, err = Compile("(", "", "", "")
	assert.Error(t, err)

	_, err = Compile("", `\[.*\]`, "", "")
	assert.Error(t, err, "link pattern without groups is rejected")
}

func TestWithKeywords(t *testing.T) {
	base := Default()
	custom := base.WithKeywords(regexp.MustCompile(`渗透`))

	assert.True(t, custom.MatchKeyword("内网渗透"))
	assert.False(t, base.MatchKeyword("内网渗透"))
}
