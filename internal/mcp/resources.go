// ABOUTME: MCP resource definitions for the archive
// ABOUTME: Serves the recent window and per-source archive statistics as JSON

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/samber/lo"

	"github.com/harper/secdigest/internal/aggregate"
	"github.com/harper/secdigest/internal/models"
)

const (
	recentURI = "secdigest://recent"
	statsURI  = "secdigest://stats"
)

// ResourceMetadata describes a resource snapshot.
type ResourceMetadata struct {
	Timestamp   time.Time      `json:"timestamp"`
	Count       int            `json:"count"`
	ResourceURI string         `json:"resource_uri"`
	Filters     map[string]any `json:"filters,omitempty"`
}

// ResourceData is the envelope every resource returns.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links,omitempty"`
}

// StatsData summarizes the whole archive.
type StatsData struct {
	TotalArticles int            `json:"total_articles"`
	Days          int            `json:"days"`
	FirstDate     string         `json:"first_date,omitempty"`
	LastDate      string         `json:"last_date,omitempty"`
	BySource      map[string]int `json:"by_source"`
}

func (s *Server) registerResources() {
	s.registerRecentResource()
	s.registerStatsResource()
}

func (s *Server) registerRecentResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         recentURI,
			Name:        "Recent Articles",
			Description: "Articles added to the archive within the configured recent window, the same set the front page shows",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			all, err := s.archive.LoadAll()
			if err != nil {
				return nil, fmt.Errorf("failed to load archive: %w", err)
			}

			now := s.now()
			recent := newestFirst(aggregate.RecentView(all, now, s.recentDays))
			resourceData := ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   now,
					Count:       len(recent),
					ResourceURI: recentURI,
					Filters:     map[string]any{"days": s.recentDays},
				},
				Data:  lo.Map(recent, func(a models.Article, _ int) ArticleOutput { return toOutput(a) }),
				Links: map[string]string{"stats": statsURI},
			}
			return jsonContents(request.Params.URI, resourceData)
		},
	)
}

func (s *Server) registerStatsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         statsURI,
			Name:        "Archive Statistics",
			Description: "Article counts per source and the date range covered by the archive",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			all, err := s.archive.LoadAll()
			if err != nil {
				return nil, fmt.Errorf("failed to load archive: %w", err)
			}

			stats := calculateStats(all)
			resourceData := ResourceData{
				Metadata: ResourceMetadata{
					Timestamp:   s.now(),
					Count:       stats.TotalArticles,
					ResourceURI: statsURI,
				},
				Data:  stats,
				Links: map[string]string{"recent": recentURI},
			}
			return jsonContents(request.Params.URI, resourceData)
		},
	)
}

func calculateStats(all []models.Article) *StatsData {
	stats := &StatsData{
		TotalArticles: len(all),
		BySource:      lo.CountValuesBy(all, func(a models.Article) string { return a.Source }),
	}

	dates := lo.Uniq(lo.FilterMap(all, func(a models.Article, _ int) (string, bool) {
		return a.DateAdded, a.DateAdded != ""
	}))
	stats.Days = len(dates)
	if len(dates) > 0 {
		stats.FirstDate = lo.Min(dates)
		stats.LastDate = lo.Max(dates)
	}
	return stats
}

func jsonContents(uri string, data ResourceData) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
