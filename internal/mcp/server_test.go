// ABOUTME: Tests for MCP tool handlers, resources, and the briefing prompt
// ABOUTME: Uses a real archive store in a temp directory with a fixed clock

package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/secdigest/internal/archive"
	"github.com/harper/secdigest/internal/models"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func testServer(t *testing.T) *Server {
	t.Helper()

	store := archive.New(filepath.Join(t.TempDir(), "archive"))
	seed := map[string][]models.Article{
		"2024-03-01": {
			models.NewArticle("Old CVE-2024-0001 writeup", "https://mp.weixin.qq.com/s/old", "ChainReactors"),
		},
		"2024-03-09": {
			models.NewArticle("CVE-2024-3400 复现", "https://mp.weixin.qq.com/s/pan", "Doonsec"),
			models.NewArticle("某OA 漏洞分析", "https://mp.weixin.qq.com/s/oa", "MRXN"),
		},
		"2024-03-10": {
			models.NewArticle("Apache RCE", "https://mp.weixin.qq.com/s/apache", "ChainReactors"),
		},
	}
	for date, articles := range seed {
		if _, err := store.AppendNew(articles, date); err != nil {
			t.Fatalf("failed to seed archive: %v", err)
		}
	}

	s := NewServer(store, 7, "test")
	s.now = func() time.Time { return fixedNow }
	return s
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}, out interface{}) error {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	if err != nil {
		return err
	}
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	if err := json.Unmarshal([]byte(textContent.Text), out); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	return nil
}

func TestHandleRecentArticles(t *testing.T) {
	s := testServer(t)

	var output RecentArticlesOutput
	if err := callTool(t, s.handleRecentArticles, map[string]interface{}{}, &output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Count != 3 {
		t.Fatalf("expected 3 recent articles, got %d", output.Count)
	}
	if output.Days != 7 {
		t.Errorf("expected default window 7, got %d", output.Days)
	}
	if output.Articles[0].URL != "https://mp.weixin.qq.com/s/apache" {
		t.Errorf("expected newest article first, got %s", output.Articles[0].URL)
	}
}

func TestHandleRecentArticles_Filters(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want []string
	}{
		{
			name: "source",
			args: map[string]interface{}{"source": "doonsec"},
			want: []string{"https://mp.weixin.qq.com/s/pan"},
		},
		{
			name: "query",
			args: map[string]interface{}{"query": "cve-2024", "days": 30},
			want: []string{"https://mp.weixin.qq.com/s/pan", "https://mp.weixin.qq.com/s/old"},
		},
		{
			name: "days zero is today only",
			args: map[string]interface{}{"days": 0},
			want: []string{"https://mp.weixin.qq.com/s/apache"},
		},
		{
			name: "limit",
			args: map[string]interface{}{"limit": 1},
			want: []string{"https://mp.weixin.qq.com/s/apache"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output RecentArticlesOutput
			if err := callTool(t, s.handleRecentArticles, tt.args, &output); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(output.Articles) != len(tt.want) {
				t.Fatalf("expected %d articles, got %d", len(tt.want), len(output.Articles))
			}
			for i, url := range tt.want {
				if output.Articles[i].URL != url {
					t.Errorf("article %d: expected %s, got %s", i, url, output.Articles[i].URL)
				}
			}
		})
	}
}

func TestHandleRecentArticles_NegativeValues(t *testing.T) {
	s := testServer(t)

	for _, args := range []map[string]interface{}{{"days": -1}, {"limit": -5}} {
		var output RecentArticlesOutput
		if err := callTool(t, s.handleRecentArticles, args, &output); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestHandleLookupURL(t *testing.T) {
	s := testServer(t)

	var found LookupURLOutput
	if err := callTool(t, s.handleLookupURL, map[string]interface{}{"url": "https://mp.weixin.qq.com/s/oa"}, &found); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Archived || found.Article == nil {
		t.Fatal("expected URL to be archived")
	}
	if found.Article.DateAdded != "2024-03-09" || found.Article.Source != "MRXN" {
		t.Errorf("unexpected record: %+v", found.Article)
	}

	var missing LookupURLOutput
	if err := callTool(t, s.handleLookupURL, map[string]interface{}{"url": "https://mp.weixin.qq.com/s/none"}, &missing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing.Archived || missing.Article != nil {
		t.Errorf("expected URL to be absent, got %+v", missing)
	}

	if err := callTool(t, s.handleLookupURL, map[string]interface{}{"url": "  "}, &missing); err == nil {
		t.Error("expected error for blank url")
	}
}

func TestCalculateStats(t *testing.T) {
	stats := calculateStats([]models.Article{
		{URL: "a", Source: "Doonsec", DateAdded: "2024-03-09"},
		{URL: "b", Source: "Doonsec", DateAdded: "2024-03-01"},
		{URL: "c", Source: "MRXN", DateAdded: "2024-03-09"},
		{URL: "d", Source: "MRXN"},
	})

	if stats.TotalArticles != 4 {
		t.Errorf("expected 4 articles, got %d", stats.TotalArticles)
	}
	if stats.Days != 2 {
		t.Errorf("expected 2 days, got %d", stats.Days)
	}
	if stats.FirstDate != "2024-03-01" || stats.LastDate != "2024-03-09" {
		t.Errorf("unexpected range %s..%s", stats.FirstDate, stats.LastDate)
	}
	if stats.BySource["Doonsec"] != 2 || stats.BySource["MRXN"] != 2 {
		t.Errorf("unexpected per-source counts: %v", stats.BySource)
	}
}

func TestHandleSecurityBriefing(t *testing.T) {
	s := testServer(t)

	result, err := s.handleSecurityBriefing(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(result.Messages))
	}
	text := result.Messages[0].Content.(mcp.TextContent).Text
	if !strings.Contains(text, recentURI) || !strings.Contains(text, "last 7 days") {
		t.Errorf("prompt does not reference the recent window: %s", text)
	}
}
