package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/gorewood/lunchlady/internal/site"
)

// Upgrade runs the migration chain over doc in place until it reaches the
// current schema version. Each step fires only when the document is exactly
// at the version it upgrades from.
func Upgrade(doc *Document) error {
	for _, step := range Steps {
		v, err := doc.Version()
		if err != nil {
			return err
		}
		if v != step.From {
			continue
		}
		if err := step.Apply(doc); err != nil {
			return fmt.Errorf("%w: upgrading from version %d (%s): %w", ErrMalformed, step.From, step.Name, err)
		}
		doc.Fields["schemaVersion"] = step.From + 1
	}

	v, err := doc.Version()
	if err != nil {
		return err
	}
	if v != site.SchemaVersion {
		return fmt.Errorf("%w: no migration from version %d", ErrUnknownSchemaVersion, v)
	}
	return nil
}

// Migrate upgrades doc and decodes it into a site at the current schema
// version. Publish dates must be strings; anything else is malformed.
func Migrate(doc *Document) (*site.Site, error) {
	if err := Upgrade(doc); err != nil {
		return nil, err
	}
	if err := checkDates(doc); err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	var s site.Site
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	fill(&s)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &s, nil
}

// Load parses raw JSON and migrates it.
func Load(data []byte) (*site.Site, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Migrate(doc)
}

func checkDates(doc *Document) error {
	raw, ok := doc.Fields["entries"]
	if !ok || raw == nil {
		return nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: entries must be an object, got %T", ErrMalformed, raw)
	}
	for key, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: entry %q must be an object, got %T", ErrMalformed, key, rawEntry)
		}
		date, has := entry["publishDate"]
		if !has {
			continue
		}
		if _, isString := date.(string); !isString {
			return fmt.Errorf("%w: entry %q publishDate must be a string, got %T", ErrMalformed, key, date)
		}
	}
	return nil
}

// fill replaces absent collections with empty ones and restores keys that
// older documents only stored as map keys.
func fill(s *site.Site) {
	if s.Sections == nil {
		s.Sections = map[string]site.Section{}
	}
	if s.Entries == nil {
		s.Entries = map[string]site.Entry{}
	}
	if s.SectionOrder == nil {
		s.SectionOrder = []string{}
	}
	if s.Themes == nil {
		s.Themes = []string{}
	}
	if s.ResolvedFragments == nil {
		s.ResolvedFragments = map[string][]string{}
	}
	if s.ResolvedStylesheets == nil {
		s.ResolvedStylesheets = []string{}
	}
	for key, sec := range s.Sections {
		if sec.Key == "" {
			sec.Key = key
		}
		if sec.EntryKeys == nil {
			sec.EntryKeys = []string{}
		}
		if sec.EntryOrder == "" {
			sec.EntryOrder = site.OrderDate
		}
		s.Sections[key] = sec
	}
	for key, e := range s.Entries {
		if e.Key == "" {
			e.Key = key
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		s.Entries[key] = e
	}
}
