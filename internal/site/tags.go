package site

import (
	"cmp"
	"maps"
	"slices"
)

// TagCount is a tag and the number of entries using it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts returns every tag used in the site, least used first. Ties are
// broken alphabetically so the list is stable between runs.
func (s *Site) TagCounts() []TagCount {
	counts := map[string]int{}
	for _, e := range s.Entries {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for _, tag := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}
	slices.SortStableFunc(out, func(a, b TagCount) int {
		return cmp.Compare(a.Count, b.Count)
	})
	return out
}
