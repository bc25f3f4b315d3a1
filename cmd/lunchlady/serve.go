package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	lunchladymcp "github.com/gorewood/lunchlady/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run lunchlady as a Model Context Protocol (MCP) server over stdio.

This exposes the site document as read-only MCP tools so an agent can look
up sections, articles and tags. Editing stays interactive.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "lunchlady": {
        "command": "lunchlady",
        "args": ["serve"]
      }
    }
  }

Available tools: site_status, list_sections, list_entries, show_entry, list_tags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			cfg, err := s.loadConfig()
			if err != nil {
				return s.fail(err)
			}
			server := lunchladymcp.NewServer(buildVersion(), cfg)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
