package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/site"
	"github.com/gorewood/lunchlady/internal/slug"
)

// AddArticle offers the content files not yet bound to an entry, creates
// an entry for the chosen one at the top of the section and goes straight
// to editing it. A date-ordered section is re-sorted afterwards.
func (e *Editor) AddArticle(ctx context.Context, s *site.Site, sectionKey string) (*site.Site, error) {
	if _, err := s.Section(sectionKey); err != nil {
		return s, err
	}
	files, err := e.CandidateFiles(s)
	if err != nil {
		return s, err
	}
	if len(files) == 0 {
		e.report.Info("No new entry files found in %s", e.cfg.ContentRoot)
		return s, nil
	}

	choices := append(prompt.KeyChoices(files), prompt.Choice{Label: "[Back]", Value: choiceBack})
	v, err := e.choose(ctx, "Choose a file from which to create an entry.", choices)
	if err != nil {
		return s, err
	}
	var file string
	switch v := v.(type) {
	case prompt.Key:
		file = string(v)
	case prompt.Sentinel:
		e.report.Info("New Article cancelled")
		return s, nil
	default:
		return s, unexpected(v)
	}

	next, key, err := s.AddEntry(sectionKey, file, e.now())
	if err != nil {
		return s, err
	}
	next, err = e.EditArticle(ctx, next, key)
	if err != nil {
		return s, err
	}
	return next.SortSection(sectionKey)
}

// CandidateFiles lists the HTML files under the content root that can
// become new entries: files already bound to an entry and fragments of the
// selected themes are left out.
func (e *Editor) CandidateFiles(s *site.Site) ([]string, error) {
	files, err := fsutil.ListFiles(e.cfg.ContentRoot, fsutil.HTMLPattern)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotExist) {
			return nil, fmt.Errorf("content folder %s does not exist: %w", e.cfg.ContentRoot, err)
		}
		return nil, err
	}

	// Fragments only land in the listing when the theme root is configured
	// inside the content root; the default layout keeps them apart.
	claimed := map[string]bool{}
	for _, frags := range s.ResolvedFragments {
		for _, frag := range frags {
			if rel, ok := e.contentRelative(frag); ok {
				claimed[rel] = true
			}
		}
	}

	out := files[:0]
	for _, f := range files {
		if _, bound := s.EntryForFile(f); bound || claimed[f] {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// contentRelative maps a theme-relative fragment path to a path relative
// to the content root, when the fragment lives inside it.
func (e *Editor) contentRelative(frag string) (string, bool) {
	abs := filepath.Join(e.cfg.ThemeRoot, filepath.FromSlash(frag))
	rel, err := filepath.Rel(e.cfg.ContentRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// EditArticle asks for an article's title, publish date and tags. Tags are
// picked from those already used in the site, least used first, with an
// option to create new ones.
func (e *Editor) EditArticle(ctx context.Context, s *site.Site, entryKey string) (*site.Site, error) {
	entry, err := s.Entry(entryKey)
	if err != nil {
		return s, err
	}

	var tagChoices []prompt.Choice
	for _, tc := range s.TagCounts() {
		tagChoices = append(tagChoices, prompt.Choice{Label: fmt.Sprintf("%s (%d)", tc.Tag, tc.Count), Value: prompt.Key(tc.Tag)})
	}
	tagChoices = append(tagChoices, prompt.Choice{Label: "[New Tag(s)]", Value: choiceNewTags})
	selected := make([]prompt.Value, len(entry.Tags))
	for i, tag := range entry.Tags {
		selected[i] = prompt.Key(tag)
	}

	answers, err := e.ask.Ask(ctx,
		prompt.Question{Kind: prompt.Input, Name: "title", Message: "Entry Title", Default: entry.Title},
		prompt.Question{Kind: prompt.Date, Name: "publish-date", Message: "Publish date", DefaultTime: entry.PublishDate},
		prompt.Question{Kind: prompt.MultiSelect, Name: "tags", Message: "Content Tags", Choices: tagChoices, Selected: selected},
	)
	if err != nil {
		return s, err
	}

	title := strings.TrimSpace(answers.Text("title"))
	if title == "" {
		title = entry.Title
	}
	picked := answers.Values("tags")
	next, err := s.UpdateEntry(entryKey, title, answers.Time("publish-date"), prompt.Keys(picked))
	if err != nil {
		return s, err
	}

	if slices.Contains(picked, prompt.Value(choiceNewTags)) {
		return e.AddTags(ctx, next, entryKey)
	}
	return next, nil
}

// AddTags asks for new tags one at a time until a blank answer. Each tag is
// normalized; unusable and duplicate tags are reported and skipped.
func (e *Editor) AddTags(ctx context.Context, s *site.Site, entryKey string) (*site.Site, error) {
	for {
		raw, err := e.input(ctx, "New Tag [Blank to Stop]", "")
		if err != nil {
			return s, err
		}
		if strings.TrimSpace(raw) == "" {
			return s, nil
		}

		tag := slug.Tag(raw, e.cfg.MaxTagLength)
		if tag == "" {
			e.report.Info("Invalid Tag: %s", raw)
			continue
		}
		next, added, err := s.AddTag(entryKey, tag)
		if err != nil {
			return s, err
		}
		if !added {
			e.report.Info("Existing Tag: %s", tag)
			continue
		}
		if tag != raw {
			e.report.Info("Fixing Tag: `%s` => `%s`", raw, tag)
		}
		s = next
	}
}

// entryLabel is how an article appears in its section's menu. Date-ordered
// sections lead with the publish date.
func entryLabel(sec site.Section, entry site.Entry) string {
	if sec.EntryOrder != site.OrderDate {
		return entry.Title
	}
	t := entry.PublishDate.Local()
	meridiem := strings.ToLower(t.Format("PM")[:1])
	return fmt.Sprintf("%s%s - %s", t.Format("2006.01.02 03:04"), meridiem, entry.Title)
}
