// ABOUTME: Tests for the Article model
// ABOUTME: Covers trimming, validity, date sentinel and stamping

package models

import "testing"

func TestNewArticle(t *testing.T) {
	a := NewArticle("  Apache RCE writeup ", " https://mp.weixin.qq.com/s/abc ", "ChainReactors")

	if a.Title != "Apache RCE writeup" {
		t.Errorf("expected trimmed title, got %q", a.Title)
	}
	if a.URL != "https://mp.weixin.qq.com/s/abc" {
		t.Errorf("expected trimmed URL, got %q", a.URL)
	}
	if a.DateAdded != "" {
		t.Errorf("expected empty DateAdded for a candidate, got %q", a.DateAdded)
	}
}

func TestArticle_Valid(t *testing.T) {
	tests := []struct {
		name     string
		article  Article
		expected bool
	}{
		{"complete", Article{Title: "t", URL: "u"}, true},
		{"missing title", Article{URL: "u"}, false},
		{"missing url", Article{Title: "t"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.article.Valid(); got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestArticle_Day(t *testing.T) {
	if got := (Article{}).Day(); got != UnknownDate {
		t.Errorf("expected %q for empty DateAdded, got %q", UnknownDate, got)
	}
	if got := (Article{DateAdded: "2024-03-01"}).Day(); got != "2024-03-01" {
		t.Errorf("expected 2024-03-01, got %q", got)
	}
}

func TestArticle_Stamped(t *testing.T) {
	orig := Article{Title: "t", URL: "u"}
	stamped := orig.Stamped("2024-03-01")

	if stamped.DateAdded != "2024-03-01" {
		t.Errorf("expected stamped date, got %q", stamped.DateAdded)
	}
	if orig.DateAdded != "" {
		t.Error("Stamped must not modify the receiver")
	}
}
