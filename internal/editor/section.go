package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/site"
)

// ManageSection is the section menu: edit an article, add one, rename the
// section or change how it is sorted. It returns on Back.
func (e *Editor) ManageSection(ctx context.Context, s *site.Site, sectionKey string) (*site.Site, error) {
	for {
		sec, err := s.Section(sectionKey)
		if err != nil {
			return s, err
		}
		entries, err := s.EntriesOf(sectionKey)
		if err != nil {
			return s, err
		}

		choices := []prompt.Choice{
			{Label: "[Rename Section]", Value: choiceRename},
			{Label: "[New Article]", Value: choiceNewArticle},
			{Label: "[Sort Order]", Value: choiceSortOrder},
			{Label: "[Back]", Value: choiceBack},
		}
		for _, entry := range entries {
			choices = append(choices, prompt.Choice{Label: entryLabel(sec, entry), Value: prompt.Key(entry.Key)})
		}

		v, err := e.choose(ctx, "Section: "+sec.DisplayName, choices)
		if err != nil {
			return s, err
		}

		var next *site.Site
		switch v := v.(type) {
		case prompt.Key:
			next, err = e.EditArticle(ctx, s, string(v))
			if err == nil {
				next, err = next.SortSection(sectionKey)
			}
		case prompt.Sentinel:
			switch v {
			case choiceRename:
				next, sectionKey, err = e.RenameSection(ctx, s, sectionKey)
			case choiceNewArticle:
				next, err = e.AddArticle(ctx, s, sectionKey)
			case choiceSortOrder:
				next, err = e.ChangeSectionSort(ctx, s, sectionKey)
			case choiceBack:
				return s, nil
			default:
				return s, unexpected(v)
			}
		default:
			return s, unexpected(v)
		}
		if err != nil {
			return s, err
		}
		s = next
	}
}

// AddSection asks for a section name and appends a new empty section. A
// blank name cancels. Names that give no key or a key already in use are
// reported and asked again.
func (e *Editor) AddSection(ctx context.Context, s *site.Site) (*site.Site, error) {
	for {
		name, err := e.input(ctx, "Section Name (enter to cancel):", "")
		if err != nil {
			return s, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			e.report.Info("Add Section cancelled")
			return s, nil
		}

		next, _, err := s.AddSection(name)
		switch {
		case errors.Is(err, site.ErrInvalidName):
			e.report.Info("Invalid section name: %s", name)
			continue
		case errors.Is(err, site.ErrSectionExists):
			e.report.Info("A section named %s already exists", name)
			continue
		case err != nil:
			return s, err
		}
		e.report.Info("Added section %s", name)
		return next, nil
	}
}

// RenameSection asks for a new section name, defaulting to the current
// one, and returns the renamed site with the section's new key.
func (e *Editor) RenameSection(ctx context.Context, s *site.Site, sectionKey string) (*site.Site, string, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, sectionKey, err
	}
	for {
		name, err := e.input(ctx, "Section Title", sec.DisplayName)
		if err != nil {
			return s, sectionKey, err
		}
		name = strings.TrimSpace(name)

		next, newKey, err := s.RenameSection(sectionKey, name)
		switch {
		case errors.Is(err, site.ErrInvalidName):
			e.report.Info("Invalid section name: %s", name)
			continue
		case errors.Is(err, site.ErrSectionExists):
			e.report.Info("Another section already uses the name %s", name)
			continue
		case err != nil:
			return s, sectionKey, err
		}
		return next, newKey, nil
	}
}

// ChangeSectionSort asks for date or manual ordering. Date ordering sorts
// immediately; manual ordering goes straight to reordering.
func (e *Editor) ChangeSectionSort(ctx context.Context, s *site.Site, sectionKey string) (*site.Site, error) {
	sec, err := s.Section(sectionKey)
	if err != nil {
		return s, err
	}
	v, err := e.choose(ctx, "Sort Method for: "+sec.DisplayName, []prompt.Choice{
		{Label: "Date", Value: prompt.Key(site.OrderDate)},
		{Label: "Manual", Value: prompt.Key(site.OrderManual)},
	})
	if err != nil {
		return s, err
	}
	mode, ok := v.(prompt.Key)
	if !ok {
		return s, unexpected(v)
	}

	next, err := s.SetEntryOrder(sectionKey, site.EntryOrder(mode))
	if err != nil {
		return s, err
	}
	if site.EntryOrder(mode) == site.OrderManual {
		return e.ReorderEntries(ctx, next, sectionKey)
	}
	return next, nil
}

// ReorderEntries repeatedly moves one article to just after another until
// the operator is done.
func (e *Editor) ReorderEntries(ctx context.Context, s *site.Site, sectionKey string) (*site.Site, error) {
	for {
		entries, err := s.EntriesOf(sectionKey)
		if err != nil {
			return s, err
		}
		items := make([]prompt.Choice, len(entries))
		for i, entry := range entries {
			items[i] = prompt.Choice{Label: entry.Title, Value: prompt.Key(entry.Key)}
		}

		key, after, ok, err := e.pickMove(ctx, items, "Article")
		if err != nil || !ok {
			return s, err
		}
		if s, err = s.MoveEntry(sectionKey, key, after); err != nil {
			return s, err
		}
	}
}

// ReorderSections repeatedly moves one section to just after another until
// the operator is done.
func (e *Editor) ReorderSections(ctx context.Context, s *site.Site) (*site.Site, error) {
	for {
		key, after, ok, err := e.pickMove(ctx, sectionChoices(s), "Section")
		if err != nil || !ok {
			return s, err
		}
		if s, err = s.MoveSection(key, after); err != nil {
			return s, err
		}
	}
}

// pickMove asks which item to move and which item it should follow. An
// empty after means first. ok is false when the operator is done.
func (e *Editor) pickMove(ctx context.Context, items []prompt.Choice, noun string) (key, after string, ok bool, err error) {
	choices := append(slices.Clone(items), prompt.Choice{Label: "[Done]", Value: choiceDone})
	v, err := e.choose(ctx, fmt.Sprintf("Choose %s to Move", noun), choices)
	if err != nil {
		return "", "", false, err
	}

	var label string
	switch v := v.(type) {
	case prompt.Sentinel:
		return "", "", false, nil
	case prompt.Key:
		key = string(v)
	default:
		return "", "", false, unexpected(v)
	}

	others := []prompt.Choice{{Label: fmt.Sprintf("[Make First %s]", noun), Value: choiceFirst}}
	for _, item := range items {
		if item.Value == prompt.Key(key) {
			label = item.Label
			continue
		}
		others = append(others, item)
	}

	v, err = e.choose(ctx, fmt.Sprintf("Place '%s' after which %s?", label, strings.ToLower(noun)), others)
	if err != nil {
		return "", "", false, err
	}
	switch v := v.(type) {
	case prompt.Sentinel:
		return key, "", true, nil
	case prompt.Key:
		return key, string(v), true, nil
	default:
		return "", "", false, unexpected(v)
	}
}
