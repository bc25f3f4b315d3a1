package editor

import (
	"context"

	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/site"
	"github.com/gorewood/lunchlady/internal/theme"
)

// SelectThemes asks which themes the site uses and refreshes the resolved
// fragments and stylesheets for the new selection.
func (e *Editor) SelectThemes(ctx context.Context, s *site.Site) (*site.Site, error) {
	themes, err := theme.List(e.cfg.ThemeRoot, e.report)
	if err != nil {
		e.report.Warn("Cannot list themes: %v", err)
		return s, nil
	}
	if len(themes) == 0 {
		e.report.Info("No themes found in %s", e.cfg.ThemeRoot)
		return s, nil
	}

	choices := make([]prompt.Choice, len(themes))
	for i, t := range themes {
		choices[i] = prompt.Choice{Label: t.Label(), Value: prompt.Key(t.Name)}
	}
	selected := make([]prompt.Value, len(s.Themes))
	for i, name := range s.Themes {
		selected[i] = prompt.Key(name)
	}

	answers, err := e.ask.Ask(ctx, prompt.Question{
		Kind:     prompt.MultiSelect,
		Name:     "themes",
		Message:  "Which themes would you like to apply?",
		Choices:  choices,
		Selected: selected,
	})
	if err != nil {
		return s, err
	}
	return e.applyThemes(s, prompt.Keys(answers.Values("themes"))), nil
}

func (e *Editor) applyThemes(s *site.Site, names []string) *site.Site {
	res := theme.Resolve(e.cfg.ThemeRoot, names, e.report)
	return s.WithThemes(names, res.Fragments, res.Stylesheets)
}
