// Package site defines the site document: sections of entries, their
// ordering, tags and selected themes.
//
// A *Site is treated as an immutable snapshot. Every operation in this
// package returns a new *Site and leaves its receiver untouched, so callers
// can hold on to earlier versions (for example to discard a cancelled edit)
// without defensive copying.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// SchemaVersion is the document version this build reads and writes.
const SchemaVersion = 2

// DefaultFragmentCategory receives theme fragments whose category cannot be
// derived from their folder layout.
const DefaultFragmentCategory = "headers"

// EntryOrder controls how a section's entries are ordered.
type EntryOrder string

const (
	// OrderDate keeps entries sorted newest first after every change.
	OrderDate EntryOrder = "date"
	// OrderManual makes the stored order authoritative.
	OrderManual EntryOrder = "manual"
)

// UnmarshalJSON accepts the string form as well as the numeric form written
// by early versions of the tool (0 = date, 1 = manual).
func (o *EntryOrder) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch EntryOrder(strings.ToLower(s)) {
		case OrderDate:
			*o = OrderDate
		case OrderManual:
			*o = OrderManual
		default:
			return fmt.Errorf("unknown entry order %q", s)
		}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entry order must be a string or number: %s", data)
	}
	switch n {
	case 0:
		*o = OrderDate
	case 1:
		*o = OrderManual
	default:
		return fmt.Errorf("unknown entry order %d", n)
	}
	return nil
}

// Site is the root document persisted as one JSON file per site.
type Site struct {
	SchemaVersion       int                 `json:"schemaVersion"`
	Title               string              `json:"title"`
	Sections            map[string]Section  `json:"sections"`
	SectionOrder        []string            `json:"sectionOrder"`
	Entries             map[string]Entry    `json:"entries"`
	Themes              []string            `json:"themes"`
	ResolvedFragments   map[string][]string `json:"resolvedFragments"`
	ResolvedStylesheets []string            `json:"resolvedStylesheets"`
}

// Section is a named, ordered group of entries.
type Section struct {
	DisplayName string     `json:"displayName"`
	Key         string     `json:"key"`
	EntryKeys   []string   `json:"entryKeys"`
	EntryOrder  EntryOrder `json:"entryOrderMode"`
}

// Entry is one piece of content backed by an HTML file.
type Entry struct {
	SourceFile  string    `json:"sourceFile"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	PublishDate time.Time `json:"publishDate"`
}

var (
	// ErrInvariant marks a structural invariant violation. It signals a bug
	// in the calling flow rather than operator error and aborts the session.
	ErrInvariant = errors.New("structural invariant violated")

	// ErrUnknownSection is returned (wrapped in ErrInvariant) for a section
	// key that is not in the document.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownEntry is returned (wrapped in ErrInvariant) for an entry key
	// that is not in the document.
	ErrUnknownEntry = errors.New("unknown entry")

	// ErrInvalidName is returned when a name reduces to an empty key.
	ErrInvalidName = errors.New("name does not produce a usable key")

	// ErrSectionExists is returned when a new or renamed section would take
	// the key of another section.
	ErrSectionExists = errors.New("section already exists")
)

// New returns an empty document at the current schema version.
func New(title string) *Site {
	return &Site{
		SchemaVersion:       SchemaVersion,
		Title:               title,
		Sections:            map[string]Section{},
		SectionOrder:        []string{},
		Entries:             map[string]Entry{},
		Themes:              []string{},
		ResolvedFragments:   map[string][]string{},
		ResolvedStylesheets: []string{},
	}
}

// Clone returns a deep copy of the document.
func (s *Site) Clone() *Site {
	c := &Site{
		SchemaVersion:       s.SchemaVersion,
		Title:               s.Title,
		Sections:            make(map[string]Section, len(s.Sections)),
		SectionOrder:        cloneStrings(s.SectionOrder),
		Entries:             make(map[string]Entry, len(s.Entries)),
		Themes:              cloneStrings(s.Themes),
		ResolvedFragments:   make(map[string][]string, len(s.ResolvedFragments)),
		ResolvedStylesheets: cloneStrings(s.ResolvedStylesheets),
	}
	for k, sec := range s.Sections {
		sec.EntryKeys = cloneStrings(sec.EntryKeys)
		c.Sections[k] = sec
	}
	for k, e := range s.Entries {
		e.Tags = cloneStrings(e.Tags)
		c.Entries[k] = e
	}
	for k, frags := range s.ResolvedFragments {
		c.ResolvedFragments[k] = cloneStrings(frags)
	}
	return c
}

// Section returns the section stored under key.
func (s *Site) Section(key string) (Section, error) {
	sec, ok := s.Sections[key]
	if !ok {
		return Section{}, fmt.Errorf("%w: %w: %q", ErrInvariant, ErrUnknownSection, key)
	}
	return sec, nil
}

// Entry returns the entry stored under key.
func (s *Site) Entry(key string) (Entry, error) {
	e, ok := s.Entries[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %w: %q", ErrInvariant, ErrUnknownEntry, key)
	}
	return e, nil
}

// EntryForFile returns the entry bound to the given content-relative file.
func (s *Site) EntryForFile(file string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.SourceFile == file {
			return e, true
		}
	}
	return Entry{}, false
}

// SectionsInOrder returns the sections in presentation order.
func (s *Site) SectionsInOrder() []Section {
	out := make([]Section, 0, len(s.SectionOrder))
	for _, key := range s.SectionOrder {
		if sec, ok := s.Sections[key]; ok {
			out = append(out, sec)
		}
	}
	return out
}

// EntriesOf returns the entries of a section in its stored order.
func (s *Site) EntriesOf(sectionKey string) ([]Entry, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(sec.EntryKeys))
	for _, key := range sec.EntryKeys {
		e, err := s.Entry(key)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// SectionOf returns the key of the section that lists entryKey, or "".
func (s *Site) SectionOf(entryKey string) string {
	for _, key := range slices.Sorted(maps.Keys(s.Sections)) {
		if slices.Contains(s.Sections[key].EntryKeys, entryKey) {
			return key
		}
	}
	return ""
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
