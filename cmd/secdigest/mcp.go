// ABOUTME: MCP server command for secdigest CLI
// ABOUTME: Starts stdio-based MCP server exposing the archive to AI agents

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/secdigest/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

Agents can list recent security articles, check whether a link is
already archived, and read archive statistics. The server is read-only.

The server communicates via JSON-RPC on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		log.SetOutput(os.Stderr)

		server := mcp.NewServer(store, cfg.GetRecentDays(), Version)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
