// ABOUTME: Markdown digest of a view and its glamour rendering for the terminal
// ABOUTME: Used by the show command; the HTML pages stay the published output

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders v as a markdown document with one section per day.
func Markdown(v View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	fmt.Fprintf(&b, "_最后更新时间: %s_\n", v.GeneratedAt.Format(updatedLayout))

	for _, g := range Group(v.Articles, v.Today) {
		heading := g.Date
		if g.IsToday {
			heading += " (today)"
		}
		fmt.Fprintf(&b, "\n## %s\n\n", heading)
		for _, a := range g.Articles {
			fmt.Fprintf(&b, "- [%s](%s) · %s\n", escapeLinkText(a.Title), a.URL, a.Source)
		}
	}
	return b.String()
}

// Terminal renders v for a terminal using a glamour style such as "dark".
// If glamour fails, the plain markdown is returned with the error.
func Terminal(v View, style string) (string, error) {
	md := Markdown(v)
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md, fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

var linkTextEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeLinkText(s string) string {
	return linkTextEscaper.Replace(s)
}
