// ABOUTME: Static HTML page renderer for the recent and archive views
// ABOUTME: Pages are fully regenerated on every run and replaced atomically

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/harper/secdigest/internal/archive"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

const updatedLayout = "2006-01-02 15:04:05"

// HTML writes pages into OutputDir.
type HTML struct {
	OutputDir string
}

type pageData struct {
	Title   string
	Updated string
	Nav     Nav
	Groups  []DayGroup
}

// Page returns the rendered document for v.
func Page(v View) ([]byte, error) {
	data := pageData{
		Title:   v.Title,
		Updated: v.GeneratedAt.Format(updatedLayout),
		Nav:     v.Nav,
		Groups:  Group(v.Articles, v.Today),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s page: %w", v.Kind, err)
	}
	return buf.Bytes(), nil
}

// Render writes v to its page file.
func (h *HTML) Render(v View) error {
	page, err := Page(v)
	if err != nil {
		return err
	}

	dir := h.OutputDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, v.Kind.FileName())
	if err := archive.AtomicWrite(path, page); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.WithFields(log.Fields{"page": path, "articles": len(v.Articles)}).Info("rendered page")
	return nil
}
