// ABOUTME: OPML export of the configured upstream feeds
// ABOUTME: Lets the RSS sources be imported into a regular feed reader, grouped by kind

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Document is an OPML subscription list with one level of folders.
type Document struct {
	Title   string
	Folders map[string][]Feed
}

// Feed is a single subscription.
type Feed struct {
	URL   string
	Title string
}

type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// NewDocument creates an empty document.
func NewDocument(title string) *Document {
	return &Document{Title: title, Folders: make(map[string][]Feed)}
}

// AddFeed appends a feed to folder. Duplicate URLs are rejected.
func (d *Document) AddFeed(url, title, folder string) error {
	if url == "" {
		return fmt.Errorf("feed URL is required")
	}
	for _, feeds := range d.Folders {
		for _, f := range feeds {
			if f.URL == url {
				return fmt.Errorf("feed already exists: %s", url)
			}
		}
	}
	if title == "" {
		title = url
	}
	d.Folders[folder] = append(d.Folders[folder], Feed{URL: url, Title: title})
	return nil
}

// Len is the number of feeds across all folders.
func (d *Document) Len() int {
	n := 0
	for _, feeds := range d.Folders {
		n += len(feeds)
	}
	return n
}

// Write serializes the document. Folders are sorted by name; feeds keep insertion order.
// Feeds in the "" folder are written at the top level.
func (d *Document) Write(w io.Writer) error {
	names := make([]string, 0, len(d.Folders))
	for name := range d.Folders {
		names = append(names, name)
	}
	sort.Strings(names)

	var outlines []outlineXML
	for _, name := range names {
		feeds := make([]outlineXML, 0, len(d.Folders[name]))
		for _, f := range d.Folders[name] {
			feeds = append(feeds, outlineXML{Text: f.Title, Title: f.Title, Type: "rss", XMLURL: f.URL})
		}
		if name == "" {
			outlines = append(outlines, feeds...)
			continue
		}
		outlines = append(outlines, outlineXML{Text: name, Title: name, Children: feeds})
	}

	doc := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: d.Title},
		Body:    bodyXML{Outlines: outlines},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	return d.Write(f)
}
