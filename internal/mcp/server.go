// Package mcp provides a Model Context Protocol server for lunchlady.
// It exposes the site document as read-only MCP tools so an agent can
// inspect sections, entries and tags without driving the interactive menus.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/site"
	"github.com/gorewood/lunchlady/internal/store"
)

// Loader returns the current site document.
type Loader func() (*site.Site, error)

// FileLoader loads the document at path on every call, so tools always see
// what is on disk.
func FileLoader(path string) Loader {
	return func() (*site.Site, error) {
		return store.Load(path)
	}
}

// NewServer creates an MCP server with all lunchlady tools registered.
func NewServer(version string, cfg *config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lunchlady",
		Version: version,
	}, nil)
	registerTools(server, cfg, FileLoader(cfg.DocumentPath()))
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all lunchlady tools to the server.
func registerTools(server *mcp.Server, cfg *config.Config, load Loader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "site_status",
		Description: "Show the site document: title, schema version, configured paths, section/entry/tag counts and selected themes.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(cfg, load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List sections in presentation order with their ordering mode and entry count.",
		Annotations: readOnlyAnnotations(),
	}, handleListSections(load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List entries in presentation order, optionally limited to one section and/or one tag.",
		Annotations: readOnlyAnnotations(),
	}, handleListEntries(load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_entry",
		Description: "Display a single entry by key, including its source file, section, publish date and tags.",
		Annotations: readOnlyAnnotations(),
	}, handleShowEntry(load))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag used in the site with its usage count, least used first.",
		Annotations: readOnlyAnnotations(),
	}, handleListTags(load))
}
