package site

import (
	"fmt"
	"slices"
	"time"

	"github.com/gorewood/lunchlady/internal/slug"
)

// AddSection returns a copy with a new, empty DATE-ordered section appended
// to the section order, plus the derived key.
func (s *Site) AddSection(name string) (*Site, string, error) {
	key := slug.Make(name)
	if key == "" {
		return s, "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, exists := s.Sections[key]; exists {
		return s, "", fmt.Errorf("%w: %q", ErrSectionExists, key)
	}

	c := s.Clone()
	c.Sections[key] = Section{
		DisplayName: name,
		Key:         key,
		EntryKeys:   []string{},
		EntryOrder:  OrderDate,
	}
	c.SectionOrder = append(c.SectionOrder, key)
	return c, key, nil
}

// RenameSection returns a copy where the section oldKey is renamed to
// newName and re-keyed. The section keeps its entries and its position in
// the section order.
func (s *Site) RenameSection(oldKey, newName string) (*Site, string, error) {
	sec, err := s.Section(oldKey)
	if err != nil {
		return s, "", err
	}
	newKey := slug.Make(newName)
	if newKey == "" {
		return s, "", fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	if _, exists := s.Sections[newKey]; exists && newKey != oldKey {
		return s, "", fmt.Errorf("%w: %q", ErrSectionExists, newKey)
	}

	c := s.Clone()
	delete(c.Sections, oldKey)
	sec.DisplayName = newName
	sec.Key = newKey
	sec.EntryKeys = slices.Clone(sec.EntryKeys)
	c.Sections[newKey] = sec
	for i, key := range c.SectionOrder {
		if key == oldKey {
			c.SectionOrder[i] = newKey
		}
	}
	return c, newKey, nil
}

// AddEntry returns a copy with a new entry for file, placed first in the
// target section, plus the derived entry key. The title defaults to the
// title-cased key, tags start empty and the publish date is now.
//
// A derived key that already exists, or a file already bound to an entry,
// is a structural invariant violation: two source files would share one
// identity and the document cannot represent both.
func (s *Site) AddEntry(sectionKey, file string, now time.Time) (*Site, string, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, "", err
	}
	key := slug.FileKey(file)
	if key == "" {
		return s, "", fmt.Errorf("%w: file %q", ErrInvalidName, file)
	}
	if existing, ok := s.Entries[key]; ok {
		return s, "", fmt.Errorf("%w: entry key %q from %q collides with %q",
			ErrInvariant, key, file, existing.SourceFile)
	}
	if existing, ok := s.EntryForFile(file); ok {
		return s, "", fmt.Errorf("%w: file %q is already bound to entry %q",
			ErrInvariant, file, existing.Key)
	}

	c := s.Clone()
	c.Entries[key] = Entry{
		SourceFile:  file,
		Key:         key,
		Title:       slug.Title(key),
		Tags:        []string{},
		PublishDate: now,
	}
	sec.EntryKeys = append([]string{key}, sec.EntryKeys...)
	c.Sections[sectionKey] = sec
	return c, key, nil
}

// UpdateEntry returns a copy where the entry's title, publish date and tags
// are replaced. Duplicate tags are dropped, keeping the first occurrence.
// The key and source file never change.
func (s *Site) UpdateEntry(key, title string, publish time.Time, tags []string) (*Site, error) {
	e, err := s.Entry(key)
	if err != nil {
		return s, err
	}

	c := s.Clone()
	e.Title = title
	e.PublishDate = publish
	e.Tags = dedupe(tags)
	c.Entries[key] = e
	return c, nil
}

// AddTag returns a copy with tag appended to the entry. The boolean is false,
// and the receiver is returned unchanged, when the entry already has the tag.
func (s *Site) AddTag(entryKey, tag string) (*Site, bool, error) {
	e, err := s.Entry(entryKey)
	if err != nil {
		return s, false, err
	}
	if slices.Contains(e.Tags, tag) {
		return s, false, nil
	}

	c := s.Clone()
	e.Tags = append(slices.Clone(e.Tags), tag)
	c.Entries[entryKey] = e
	return c, true, nil
}

// WithThemes returns a copy with the selected themes and their resolved
// fragments and stylesheets.
func (s *Site) WithThemes(themes []string, fragments map[string][]string, stylesheets []string) *Site {
	c := s.Clone()
	c.Themes = cloneStrings(themes)
	c.ResolvedFragments = make(map[string][]string, len(fragments))
	for category, paths := range fragments {
		c.ResolvedFragments[category] = cloneStrings(paths)
	}
	c.ResolvedStylesheets = cloneStrings(stylesheets)
	return c
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
