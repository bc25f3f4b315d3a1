package mcp

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/site"
)

// --- Shared types ---

// EntrySummary is an entry as returned by the tools.
type EntrySummary struct {
	Key         string   `json:"key"          jsonschema:"entry key"`
	Title       string   `json:"title"        jsonschema:"entry title"`
	SourceFile  string   `json:"source_file"  jsonschema:"HTML file relative to the content root"`
	Section     string   `json:"section"      jsonschema:"key of the section listing the entry"`
	PublishDate string   `json:"publish_date" jsonschema:"publish timestamp (RFC 3339)"`
	Tags        []string `json:"tags"         jsonschema:"entry tags"`
}

func toEntrySummary(s *site.Site, e site.Entry) EntrySummary {
	return EntrySummary{
		Key:         e.Key,
		Title:       e.Title,
		SourceFile:  e.SourceFile,
		Section:     s.SectionOf(e.Key),
		PublishDate: e.PublishDate.Format(time.RFC3339),
		Tags:        slices.Clone(e.Tags),
	}
}

// --- Status tool ---

// StatusInput is the input for the site_status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the site_status tool.
type StatusOutput struct {
	Title         string   `json:"title"          jsonschema:"site title"`
	SchemaVersion int      `json:"schema_version" jsonschema:"document schema version"`
	Document      string   `json:"document"       jsonschema:"path of the site document"`
	ContentRoot   string   `json:"content_root"   jsonschema:"folder holding the HTML sources"`
	ThemeRoot     string   `json:"theme_root"     jsonschema:"folder holding the themes"`
	Sections      int      `json:"sections"       jsonschema:"number of sections"`
	Entries       int      `json:"entries"        jsonschema:"number of entries"`
	Tags          int      `json:"tags"           jsonschema:"number of distinct tags"`
	Themes        []string `json:"themes"         jsonschema:"selected themes in order"`
}

func handleStatus(cfg *config.Config, load Loader) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		s, err := load()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("loading site: %w", err)
		}
		return nil, StatusOutput{
			Title:         s.Title,
			SchemaVersion: s.SchemaVersion,
			Document:      cfg.DocumentPath(),
			ContentRoot:   cfg.ContentRoot,
			ThemeRoot:     cfg.ThemeRoot,
			Sections:      len(s.SectionOrder),
			Entries:       len(s.Entries),
			Tags:          len(s.TagCounts()),
			Themes:        slices.Clone(s.Themes),
		}, nil
	}
}

// --- List sections tool ---

// ListSectionsInput is the input for the list_sections tool.
type ListSectionsInput struct{}

// SectionSummary is a section as returned by list_sections.
type SectionSummary struct {
	Key        string `json:"key"         jsonschema:"section key"`
	Name       string `json:"name"        jsonschema:"display name"`
	EntryOrder string `json:"entry_order" jsonschema:"date or manual"`
	EntryCount int    `json:"entry_count" jsonschema:"number of entries"`
}

// ListSectionsOutput is the output for the list_sections tool.
type ListSectionsOutput struct {
	Count    int              `json:"count"    jsonschema:"number of sections"`
	Sections []SectionSummary `json:"sections" jsonschema:"sections in presentation order"`
}

func handleListSections(load Loader) mcp.ToolHandlerFor[ListSectionsInput, ListSectionsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListSectionsInput) (*mcp.CallToolResult, ListSectionsOutput, error) {
		s, err := load()
		if err != nil {
			return nil, ListSectionsOutput{}, fmt.Errorf("loading site: %w", err)
		}
		out := ListSectionsOutput{Sections: []SectionSummary{}}
		for _, sec := range s.SectionsInOrder() {
			out.Sections = append(out.Sections, SectionSummary{
				Key:        sec.Key,
				Name:       sec.DisplayName,
				EntryOrder: string(sec.EntryOrder),
				EntryCount: len(sec.EntryKeys),
			})
		}
		out.Count = len(out.Sections)
		return nil, out, nil
	}
}

// --- List entries tool ---

// ListEntriesInput is the input for the list_entries tool.
type ListEntriesInput struct {
	Section string `json:"section,omitempty" jsonschema:"only entries of this section key"`
	Tag     string `json:"tag,omitempty"     jsonschema:"only entries carrying this tag"`
}

// ListEntriesOutput is the output for the list_entries tool.
type ListEntriesOutput struct {
	Count   int            `json:"count"   jsonschema:"number of entries returned"`
	Entries []EntrySummary `json:"entries" jsonschema:"matching entries in presentation order"`
}

func handleListEntries(load Loader) mcp.ToolHandlerFor[ListEntriesInput, ListEntriesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
		s, err := load()
		if err != nil {
			return nil, ListEntriesOutput{}, fmt.Errorf("loading site: %w", err)
		}

		sections := s.SectionOrder
		if input.Section != "" {
			if _, ok := s.Sections[input.Section]; !ok {
				return nil, ListEntriesOutput{}, fmt.Errorf("no section with key %q", input.Section)
			}
			sections = []string{input.Section}
		}

		out := ListEntriesOutput{Entries: []EntrySummary{}}
		for _, key := range sections {
			entries, err := s.EntriesOf(key)
			if err != nil {
				return nil, ListEntriesOutput{}, err
			}
			for _, e := range entries {
				if input.Tag != "" && !slices.Contains(e.Tags, input.Tag) {
					continue
				}
				out.Entries = append(out.Entries, toEntrySummary(s, e))
			}
		}
		out.Count = len(out.Entries)
		return nil, out, nil
	}
}

// --- Show entry tool ---

// ShowEntryInput is the input for the show_entry tool.
type ShowEntryInput struct {
	Key string `json:"key" jsonschema:"entry key to display"`
}

// ShowEntryOutput is the output for the show_entry tool.
type ShowEntryOutput struct {
	Entry EntrySummary `json:"entry" jsonschema:"the entry"`
}

func handleShowEntry(load Loader) mcp.ToolHandlerFor[ShowEntryInput, ShowEntryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowEntryInput) (*mcp.CallToolResult, ShowEntryOutput, error) {
		if input.Key == "" {
			return nil, ShowEntryOutput{}, errors.New("specify key")
		}
		s, err := load()
		if err != nil {
			return nil, ShowEntryOutput{}, fmt.Errorf("loading site: %w", err)
		}
		e, ok := s.Entries[input.Key]
		if !ok {
			return nil, ShowEntryOutput{}, fmt.Errorf("no entry with key %q", input.Key)
		}
		return nil, ShowEntryOutput{Entry: toEntrySummary(s, e)}, nil
	}
}

// --- List tags tool ---

// ListTagsInput is the input for the list_tags tool.
type ListTagsInput struct{}

// ListTagsOutput is the output for the list_tags tool.
type ListTagsOutput struct {
	Count int             `json:"count" jsonschema:"number of distinct tags"`
	Tags  []site.TagCount `json:"tags"  jsonschema:"tags with usage counts, least used first"`
}

func handleListTags(load Loader) mcp.ToolHandlerFor[ListTagsInput, ListTagsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListTagsInput) (*mcp.CallToolResult, ListTagsOutput, error) {
		s, err := load()
		if err != nil {
			return nil, ListTagsOutput{}, fmt.Errorf("loading site: %w", err)
		}
		tags := s.TagCounts()
		return nil, ListTagsOutput{Count: len(tags), Tags: tags}, nil
	}
}
