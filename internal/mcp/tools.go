// ABOUTME: MCP tool definitions and handlers for archive queries
// ABOUTME: Lists recent articles with filters and looks up whether a URL is archived

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"github.com/harper/secdigest/internal/aggregate"
	"github.com/harper/secdigest/internal/models"
)

type RecentArticlesInput struct {
	Days   *int    `json:"days,omitempty"`
	Source *string `json:"source,omitempty"`
	Query  *string `json:"query,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
}

type ArticleOutput struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	DateAdded string `json:"date_added"`
}

type RecentArticlesOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
	Days     int             `json:"days"`
	Filters  map[string]any  `json:"filters"`
}

type LookupURLInput struct {
	URL string `json:"url"`
}

type LookupURLOutput struct {
	URL      string         `json:"url"`
	Archived bool           `json:"archived"`
	Article  *ArticleOutput `json:"article,omitempty"`
}

func (s *Server) registerTools() {
	s.registerRecentArticlesTool()
	s.registerLookupURLTool()
}

func (s *Server) registerRecentArticlesTool() {
	tool := mcp.Tool{
		Name:        "recent_articles",
		Description: "List security articles added to the archive in the last N days, newest first. Filter by source name (e.g. 'Doonsec', 'ChainReactors') or a case-insensitive title substring such as a CVE ID. Returns titles, links, sources, and the date each article was archived.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"days": map[string]interface{}{
					"type":        "integer",
					"description": "Window size in days, inclusive of today. Defaults to the configured recent window. Example: 3",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Only return articles from this source. Example: 'MRXN'",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive substring the title must contain. Example: 'CVE-2024-3400'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of articles to return. Example: 20",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRecentArticles)
}

func (s *Server) registerLookupURLTool() {
	tool := mcp.Tool{
		Name:        "lookup_url",
		Description: "Check whether an article URL is already in the archive. URLs are compared exactly. Returns the archived record when found.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Article URL. Example: 'https://mp.weixin.qq.com/s/abc123'",
				},
			},
			Required: []string{"url"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleLookupURL)
}

func (s *Server) handleRecentArticles(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RecentArticlesInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	days := s.recentDays
	if input.Days != nil {
		if *input.Days < 0 {
			return nil, fmt.Errorf("days must be non-negative, got %d", *input.Days)
		}
		days = *input.Days
	}
	if input.Limit != nil && *input.Limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", *input.Limit)
	}

	all, err := s.archive.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	articles := newestFirst(aggregate.RecentView(all, s.now(), days))

	filters := make(map[string]any)
	if input.Source != nil {
		filters["source"] = *input.Source
		articles = lo.Filter(articles, func(a models.Article, _ int) bool {
			return strings.EqualFold(a.Source, *input.Source)
		})
	}
	if input.Query != nil {
		filters["query"] = *input.Query
		q := strings.ToLower(*input.Query)
		articles = lo.Filter(articles, func(a models.Article, _ int) bool {
			return strings.Contains(strings.ToLower(a.Title), q)
		})
	}
	if input.Limit != nil {
		filters["limit"] = *input.Limit
		if len(articles) > *input.Limit {
			articles = articles[:*input.Limit]
		}
	}

	output := RecentArticlesOutput{
		Articles: lo.Map(articles, func(a models.Article, _ int) ArticleOutput { return toOutput(a) }),
		Count:    len(articles),
		Days:     days,
		Filters:  filters,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleLookupURL(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input LookupURLInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	all, err := s.archive.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	output := LookupURLOutput{URL: url}
	if found, ok := lo.Find(all, func(a models.Article) bool { return a.URL == url }); ok {
		out := toOutput(found)
		output.Archived = true
		output.Article = &out
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func toOutput(a models.Article) ArticleOutput {
	return ArticleOutput{
		Title:     a.Title,
		URL:       a.URL,
		Source:    a.Source,
		DateAdded: a.Day(),
	}
}

// newestFirst orders by date added descending, keeping archive order within a day.
func newestFirst(articles []models.Article) []models.Article {
	sorted := append([]models.Article(nil), articles...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DateAdded > sorted[j].DateAdded })
	return sorted
}
