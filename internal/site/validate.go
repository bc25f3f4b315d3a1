package site

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Validate checks the structural invariants of the document:
//   - every section and entry is stored under its own key
//   - sectionOrder is a permutation of the section keys
//   - every entry key listed by a section exists, with no duplicates
//   - no two entries share a source file
//
// A violation is reported as ErrInvariant listing every problem found.
func (s *Site) Validate() error {
	var problems []string

	for key, sec := range s.Sections {
		if sec.Key != key {
			problems = append(problems, fmt.Sprintf("section %q stored under key %q", sec.Key, key))
		}
		seen := map[string]bool{}
		for _, entryKey := range sec.EntryKeys {
			if _, ok := s.Entries[entryKey]; !ok {
				problems = append(problems, fmt.Sprintf("section %q lists missing entry %q", key, entryKey))
			}
			if seen[entryKey] {
				problems = append(problems, fmt.Sprintf("section %q lists entry %q twice", key, entryKey))
			}
			seen[entryKey] = true
		}
	}

	ordered := slices.Clone(s.SectionOrder)
	slices.Sort(ordered)
	if !slices.Equal(ordered, slices.Sorted(maps.Keys(s.Sections))) {
		problems = append(problems, fmt.Sprintf("sectionOrder %v is not a permutation of the section keys", s.SectionOrder))
	}

	files := map[string]string{}
	for key, e := range s.Entries {
		if e.Key != key {
			problems = append(problems, fmt.Sprintf("entry %q stored under key %q", e.Key, key))
		}
		if other, ok := files[e.SourceFile]; ok {
			problems = append(problems, fmt.Sprintf("entries %q and %q share file %q", other, key, e.SourceFile))
		}
		files[e.SourceFile] = key
	}

	if len(problems) > 0 {
		slices.Sort(problems)
		return fmt.Errorf("%w: %s", ErrInvariant, strings.Join(problems, "; "))
	}
	return nil
}
