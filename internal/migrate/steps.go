package migrate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gorewood/lunchlady/internal/site"
)

// Step upgrades a document from exactly one version to the next.
type Step struct {
	From  int
	Name  string
	Apply func(doc *Document) error
}

// Steps is the migration chain in application order. Each step's From is
// one greater than the previous step's.
var Steps = []Step{
	{From: Unversioned, Name: "default entry order and theme collections", Apply: addEntryOrder},
	{From: 0, Name: "explicit section order", Apply: addSectionOrder},
	{From: 1, Name: "themes and grouped fragments", Apply: groupFragments},
}

// addEntryOrder gives every section without an ordering mode date ordering
// and defaults the resolved theme collections to empty.
func addEntryOrder(doc *Document) error {
	sections, err := doc.sections()
	if err != nil {
		return err
	}
	for key, raw := range sections {
		sec, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("section %q must be an object, got %T", key, raw)
		}
		if _, has := sec["entryOrderMode"]; !has {
			sec["entryOrderMode"] = string(site.OrderDate)
		}
	}
	if _, has := doc.Fields["resolvedFragments"]; !has {
		doc.Fields["resolvedFragments"] = []any{}
	}
	if _, has := doc.Fields["resolvedStylesheets"]; !has {
		doc.Fields["resolvedStylesheets"] = []any{}
	}
	return nil
}

// addSectionOrder records the section order as the order the sections
// appeared in the file. Sections the source order does not cover follow in
// key order.
func addSectionOrder(doc *Document) error {
	if _, has := doc.Fields["sectionOrder"]; has {
		return nil
	}
	sections, err := doc.sections()
	if err != nil {
		return err
	}

	order := make([]any, 0, len(sections))
	seen := map[string]bool{}
	for _, key := range doc.SectionKeys {
		if _, ok := sections[key]; ok && !seen[key] {
			order = append(order, key)
			seen[key] = true
		}
	}
	for _, key := range slices.Sorted(maps.Keys(sections)) {
		if !seen[key] {
			order = append(order, key)
		}
	}
	doc.Fields["sectionOrder"] = order
	return nil
}

// groupFragments introduces the theme list and moves the flat fragment
// list under the default category.
func groupFragments(doc *Document) error {
	if _, has := doc.Fields["themes"]; !has {
		doc.Fields["themes"] = []any{}
	}

	switch frags := doc.Fields["resolvedFragments"].(type) {
	case nil:
		doc.Fields["resolvedFragments"] = map[string]any{}
	case []any:
		grouped := map[string]any{}
		if len(frags) > 0 {
			grouped[site.DefaultFragmentCategory] = frags
		}
		doc.Fields["resolvedFragments"] = grouped
	case map[string]any:
	default:
		return fmt.Errorf("resolvedFragments must be a list or an object, got %T", frags)
	}
	return nil
}
