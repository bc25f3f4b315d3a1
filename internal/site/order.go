package site

import (
	"fmt"
	"slices"
)

// SortSection returns a copy where a DATE-ordered section's entries are
// sorted by publish date, newest first. Entries with equal dates keep their
// relative order. MANUAL sections are returned unchanged.
func (s *Site) SortSection(sectionKey string) (*Site, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, err
	}
	if sec.EntryOrder == OrderManual {
		return s, nil
	}
	for _, key := range sec.EntryKeys {
		if _, err := s.Entry(key); err != nil {
			return s, err
		}
	}

	c := s.Clone()
	keys := slices.Clone(sec.EntryKeys)
	slices.SortStableFunc(keys, func(a, b string) int {
		return c.Entries[b].PublishDate.Compare(c.Entries[a].PublishDate)
	})
	sec.EntryKeys = keys
	c.Sections[sectionKey] = sec
	return c, nil
}

// SetEntryOrder returns a copy with the section's ordering mode changed.
// Switching to DATE sorts immediately.
func (s *Site) SetEntryOrder(sectionKey string, mode EntryOrder) (*Site, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, err
	}
	if mode != OrderDate && mode != OrderManual {
		return s, fmt.Errorf("%w: entry order %q", ErrInvariant, mode)
	}

	c := s.Clone()
	sec.EntryOrder = mode
	sec.EntryKeys = slices.Clone(sec.EntryKeys)
	c.Sections[sectionKey] = sec
	return c.SortSection(sectionKey)
}

// MoveEntry returns a copy where entryKey is placed immediately after
// afterKey in the section. An empty afterKey moves the entry to the front.
func (s *Site) MoveEntry(sectionKey, entryKey, afterKey string) (*Site, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, err
	}
	keys, err := Move(sec.EntryKeys, entryKey, afterKey)
	if err != nil {
		return s, err
	}

	c := s.Clone()
	sec.EntryKeys = keys
	c.Sections[sectionKey] = sec
	return c, nil
}

// MoveSection returns a copy where sectionKey is placed immediately after
// afterKey in the section order. An empty afterKey moves it to the front.
func (s *Site) MoveSection(sectionKey, afterKey string) (*Site, error) {
	order, err := Move(s.SectionOrder, sectionKey, afterKey)
	if err != nil {
		return s, err
	}

	c := s.Clone()
	c.SectionOrder = order
	return c, nil
}

// Move returns a new slice with key spliced out of keys and reinserted
// directly after afterKey, or at the front when afterKey is empty. The
// relative order of every other element is preserved.
func Move(keys []string, key, afterKey string) ([]string, error) {
	from := slices.Index(keys, key)
	if from < 0 {
		return nil, fmt.Errorf("%w: cannot move %q: not in sequence", ErrInvariant, key)
	}
	if afterKey == key {
		return nil, fmt.Errorf("%w: cannot place %q after itself", ErrInvariant, key)
	}

	rest := slices.Delete(slices.Clone(keys), from, from+1)
	at := 0
	if afterKey != "" {
		idx := slices.Index(rest, afterKey)
		if idx < 0 {
			return nil, fmt.Errorf("%w: cannot place %q after %q: not in sequence", ErrInvariant, key, afterKey)
		}
		at = idx + 1
	}
	return slices.Insert(rest, at, key), nil
}
