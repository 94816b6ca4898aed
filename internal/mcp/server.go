// ABOUTME: MCP server exposing the article archive to AI agents
// ABOUTME: Read-only: tools, resources, and a prompt over the local archive

package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/secdigest/internal/models"
)

// Archive is the read side of the archive store.
type Archive interface {
	LoadAll() ([]models.Article, error)
}

// Server wraps the MCP server with archive context
type Server struct {
	mcpServer  *server.MCPServer
	archive    Archive
	recentDays int
	now        func() time.Time
}

// NewServer creates a new MCP server instance
func NewServer(archive Archive, recentDays int, version string) *Server {
	s := &Server{
		archive:    archive,
		recentDays: recentDays,
		now:        time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		"secdigest",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
