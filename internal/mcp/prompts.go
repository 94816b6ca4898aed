// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides a briefing workflow over the recently archived articles

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerSecurityBriefingPrompt()
}

func (s *Server) registerSecurityBriefingPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "security-briefing",
			Description: "Summarize recently archived security articles into a briefing grouped by vulnerability",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleSecurityBriefing,
	)
}

func (s *Server) handleSecurityBriefing(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := fmt.Sprintf(`# Security Briefing

## Overview
Summarize the security articles archived in the last %d days. Most titles are in Chinese; keep CVE, CNVD, and product names verbatim.

## Workflow Steps

### Step 1: Gather
Read the %s resource, or call recent_articles with a smaller days value for a narrower window.

### Step 2: Group
Cluster articles that discuss the same vulnerability. Use CVE/CNVD/QVD identifiers when present, otherwise the affected product.

### Step 3: Check coverage
For any link the user mentions, call lookup_url to see whether it is already archived.

### Step 4: Write the briefing
For each cluster give the identifier, the affected product, one line on impact, and the article links with their sources. Put clusters with public exploit or reproduction write-ups (复现, POC, EXP) first.
`, s.recentDays, recentURI)

	return &mcp.GetPromptResult{
		Description: "Briefing workflow for recently archived security articles",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
