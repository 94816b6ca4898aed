// ABOUTME: Content processing utilities for article titles
// ABOUTME: Detects HTML, converts it to Markdown, and reduces feed titles to plain text

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote|font)[^>]*>`)

// emphasisPattern matches Markdown emphasis and heading markers left after conversion.
var emphasisPattern = regexp.MustCompile(`(\*\*|__|^#+\s+)`)

// IsHTML checks if content appears to be HTML
func IsHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to Markdown
// If the content doesn't appear to be HTML, returns it unchanged
func ToMarkdown(content string) string {
	if content == "" {
		return content
	}

	if !IsHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		// If conversion fails, return original content
		return content
	}

	return strings.TrimSpace(markdown)
}

// CleanTitle turns a feed title into a single line of plain text.
func CleanTitle(title string) string {
	if IsHTML(title) {
		title = emphasisPattern.ReplaceAllString(ToMarkdown(title), "")
	}
	return strings.Join(strings.Fields(title), " ")
}
