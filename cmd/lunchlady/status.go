package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/store"
)

// statusResult holds the data for status output.
type statusResult struct {
	Config        string          `json:"config"`
	RendererDir   string          `json:"renderer_dir"`
	ContentRoot   string          `json:"content_root"`
	ThemeRoot     string          `json:"theme_root"`
	HTMLSource    string          `json:"html_source,omitempty"`
	Document      string          `json:"document"`
	DocExists     bool            `json:"doc_exists"`
	Title         string          `json:"title,omitempty"`
	SchemaVersion int             `json:"schema_version,omitempty"`
	Sections      int             `json:"sections"`
	Entries       int             `json:"entries"`
	Tags          int             `json:"tags"`
	Themes        []string        `json:"themes"`
	SectionList   []statusSection `json:"section_list,omitempty"`
}

// statusSection is one row of the section listing.
type statusSection struct {
	Name    string `json:"name"`
	Order   string `json:"order"`
	Entries int    `json:"entries"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and site document state",
		Long: `Show the configured paths and a summary of the site document: title,
schema version, section, article and tag counts, and selected themes.
Status never prompts.

Examples:
  lunchlady status          # Show human-readable status
  lunchlady status --json   # Output status as JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			cfg, err := s.loadConfig()
			if err != nil {
				return s.fail(err)
			}
			result, err := gatherStatus(s.configPath(), cfg)
			if err != nil {
				return s.fail(err)
			}

			if s.printer.IsJSON() {
				return s.printer.WriteJSON(result)
			}
			printHumanStatus(s.printer, result)
			return nil
		},
	}
}

// gatherStatus collects all status information. A missing document is
// reported, not an error.
func gatherStatus(configPath string, cfg *config.Config) (*statusResult, error) {
	result := &statusResult{
		Config:      configPath,
		RendererDir: cfg.RendererDir,
		ContentRoot: cfg.ContentRoot,
		ThemeRoot:   cfg.ThemeRoot,
		HTMLSource:  cfg.HTMLSource,
		Document:    cfg.DocumentPath(),
		Themes:      []string{},
	}

	exists, err := store.Exists(cfg.DocumentPath())
	if err != nil || !exists {
		return result, err
	}
	doc, err := store.Load(cfg.DocumentPath())
	if err != nil {
		return nil, err
	}

	result.DocExists = true
	result.Title = doc.Title
	result.SchemaVersion = doc.SchemaVersion
	result.Sections = len(doc.SectionOrder)
	result.Entries = len(doc.Entries)
	result.Tags = len(doc.TagCounts())
	result.Themes = append(result.Themes, doc.Themes...)
	for _, sec := range doc.SectionsInOrder() {
		result.SectionList = append(result.SectionList, statusSection{
			Name:    sec.DisplayName,
			Order:   string(sec.EntryOrder),
			Entries: len(sec.EntryKeys),
		})
	}
	return result, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult) {
	printer.Section("Configuration")
	printer.KeyValue("Config", status.Config)
	printer.KeyValue("Renderer", status.RendererDir)
	printer.KeyValue("Content", status.ContentRoot)
	if status.HTMLSource != "" {
		printer.KeyValue("HTML Source", status.HTMLSource)
	}
	printer.KeyValue("Themes Dir", status.ThemeRoot)

	printer.Section("Site Document")
	printer.KeyValue("Document", status.Document)
	printer.KeyValue("Present", formatBool(status.DocExists))
	if !status.DocExists {
		return
	}
	printer.KeyValue("Title", status.Title)
	printer.KeyValue("Schema", strconv.Itoa(status.SchemaVersion))
	printer.KeyValue("Sections", strconv.Itoa(status.Sections))
	printer.KeyValue("Articles", strconv.Itoa(status.Entries))
	printer.KeyValue("Tags", strconv.Itoa(status.Tags))
	themes := "none"
	if len(status.Themes) > 0 {
		themes = strings.Join(status.Themes, ", ")
	}
	printer.KeyValue("Themes", themes)

	if len(status.SectionList) == 0 {
		return
	}
	printer.Section("Sections")
	rows := make([][]string, len(status.SectionList))
	for i, sec := range status.SectionList {
		rows[i] = []string{sec.Name, sec.Order, strconv.Itoa(sec.Entries)}
	}
	printer.Table([]string{"Section", "Order", "Articles"}, rows)
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
