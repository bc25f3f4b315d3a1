// Package editor runs the interactive editing sessions for a site.
//
// Every operation takes a *site.Site and returns a new one. The input is
// never modified, so a cancelled or failed flow simply leaves the caller
// holding the previous document. Blank answers cancel a step and are not
// errors. Errors wrapping site.ErrInvariant mean the flow itself is broken
// and the session must stop without saving.
package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/site"
	"github.com/gorewood/lunchlady/internal/theme"
)

// Menu actions offered next to domain keys.
const (
	choiceNewSection prompt.Sentinel = iota + 1
	choiceReorderSections
	choiceChangeTheme
	choiceSaveQuit
	choiceRename
	choiceNewArticle
	choiceSortOrder
	choiceBack
	choiceDone
	choiceFirst
	choiceNewTags
)

// Home section and welcome article of a new site.
const (
	HomeSection  = "Home"
	WelcomeFile  = "dummy-entry.html"
	WelcomeTitle = "Site Created"
)

// Editor holds what editing sessions need: the operator to ask, a place
// to report progress, and the configured paths.
type Editor struct {
	ask    prompt.Asker
	report output.Reporter
	cfg    *config.Config
	now    func() time.Time
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock replaces the clock used for new articles.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// New returns an Editor.
func New(ask prompt.Asker, report output.Reporter, cfg *config.Config, opts ...Option) *Editor {
	e := &Editor{ask: ask, report: report, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ManageSite is the top-level menu: pick a section to manage, add or
// reorder sections, or change themes. It returns when the operator picks
// Save & Quit.
func (e *Editor) ManageSite(ctx context.Context, s *site.Site) (*site.Site, error) {
	for {
		choices := sectionChoices(s)
		choices = append(choices,
			prompt.Choice{Label: "[New Section]", Value: choiceNewSection},
			prompt.Choice{Label: "[Reorder Sections]", Value: choiceReorderSections},
			prompt.Choice{Label: "[Change Site Theme]", Value: choiceChangeTheme},
			prompt.Choice{Label: "[Save & Quit]", Value: choiceSaveQuit},
		)
		v, err := e.choose(ctx, "Manage Site", choices)
		if err != nil {
			return s, err
		}

		var next *site.Site
		switch v := v.(type) {
		case prompt.Key:
			next, err = e.ManageSection(ctx, s, string(v))
		case prompt.Sentinel:
			switch v {
			case choiceNewSection:
				next, err = e.AddSection(ctx, s)
			case choiceReorderSections:
				next, err = e.ReorderSections(ctx, s)
			case choiceChangeTheme:
				next, err = e.SelectThemes(ctx, s)
			case choiceSaveQuit:
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

// ChooseSection asks which section to work in. ok is false when the
// operator goes back or the site has no sections.
func (e *Editor) ChooseSection(ctx context.Context, s *site.Site, message string) (key string, ok bool, err error) {
	if len(s.SectionOrder) == 0 {
		e.report.Info("The site has no sections yet. Add one from Manage Site.")
		return "", false, nil
	}
	choices := append(sectionChoices(s), prompt.Choice{Label: "[Back]", Value: choiceBack})
	v, err := e.choose(ctx, message, choices)
	if err != nil {
		return "", false, err
	}
	switch v := v.(type) {
	case prompt.Key:
		return string(v), true, nil
	case prompt.Sentinel:
		return "", false, nil
	default:
		return "", false, unexpected(v)
	}
}

// AddArticleToSite asks for a section and adds an article to it.
func (e *Editor) AddArticleToSite(ctx context.Context, s *site.Site) (*site.Site, error) {
	key, ok, err := e.ChooseSection(ctx, s, "Add article to which section?")
	if err != nil || !ok {
		return s, err
	}
	return e.AddArticle(ctx, s, key)
}

// CreateSite builds a new site: a Home section, the default theme when it
// exists, and a welcome article written into the content root.
func (e *Editor) CreateSite(ctx context.Context) (*site.Site, error) {
	answers, err := e.ask.Ask(ctx, prompt.Question{Kind: prompt.Input, Name: "title", Message: "Site Title"})
	if err != nil {
		return nil, err
	}

	s, home, err := site.New(answers.Text("title")).AddSection(HomeSection)
	if err != nil {
		return nil, err
	}

	if fsutil.IsDir(filepath.Join(e.cfg.ThemeRoot, theme.DefaultTheme)) {
		s = e.applyThemes(s, []string{theme.DefaultTheme})
	}

	path := filepath.Join(e.cfg.ContentRoot, WelcomeFile)
	if err := fsutil.WriteFile(path, []byte(welcomeHTML(e.cfg.ContentRoot))); err != nil {
		return nil, fmt.Errorf("writing welcome article: %w", err)
	}
	now := e.now()
	s, key, err := s.AddEntry(home, WelcomeFile, now)
	if err != nil {
		return nil, err
	}
	s, err = s.UpdateEntry(key, WelcomeTitle, now, nil)
	if err != nil {
		return nil, err
	}
	e.report.Info("Welcome article written to %s", path)
	return s, nil
}

// choose asks a single Select question and returns the chosen value.
func (e *Editor) choose(ctx context.Context, message string, choices []prompt.Choice) (prompt.Value, error) {
	answers, err := e.ask.Ask(ctx, prompt.Question{
		Kind:    prompt.Select,
		Name:    "choice",
		Message: message,
		Choices: choices,
	})
	if err != nil {
		return nil, err
	}
	return answers.Value("choice"), nil
}

// input asks a single Input question.
func (e *Editor) input(ctx context.Context, message, def string) (string, error) {
	answers, err := e.ask.Ask(ctx, prompt.Question{
		Kind:    prompt.Input,
		Name:    "text",
		Message: message,
		Default: def,
	})
	if err != nil {
		return "", err
	}
	return answers.Text("text"), nil
}

func sectionChoices(s *site.Site) []prompt.Choice {
	sections := s.SectionsInOrder()
	out := make([]prompt.Choice, len(sections))
	for i, sec := range sections {
		out[i] = prompt.Choice{Label: sec.DisplayName, Value: prompt.Key(sec.Key)}
	}
	return out
}

func unexpected(v prompt.Value) error {
	return fmt.Errorf("%w: unexpected menu choice %#v", site.ErrInvariant, v)
}

func welcomeHTML(contentRoot string) string {
	return fmt.Sprintf(`<p>
    Congrats! You have successfully created your own Sloppy Joe site using
    Lunchlady. Run <code>lunchlady</code> again to manage your content.
</p>
<p>
    This entry is found in your content folder at %s. To create more
    entries, add them as HTML files in your content folder, then run
    <code>lunchlady manage</code>, choose a section and select
    <code>[New Article]</code>.
</p>
<p>
    For more information about Lunchlady and Sloppy Joe, visit their GitHub repositories.
    <ul>
        <li><a href="https://github.com/slonermike/lunchlady">Lunchlady on GitHub</a></li>
        <li><a href="https://github.com/slonermike/sloppy-joe">Sloppy Joe on GitHub</a></li>
    </ul>
</p>
`, contentRoot)
}
