package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/renderer"
	"github.com/gorewood/lunchlady/internal/store"
)

// noSource clears the HTML source folder at the configure prompt.
const noSource = "-"

// newSetupCmd creates the setup command.
func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "First-time setup: configure, fetch the renderer and create the site",
		Long: `Set up lunchlady in one pass:
  1. Ask for the renderer directory and your HTML source folder
  2. Clone or update the renderer checkout
  3. Link the renderer's content folder to your HTML source folder
  4. Create the site document if there is none yet

Setup can be run again; an existing site document is never replaced.

Examples:
  lunchlady setup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if err := runSetup(s); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}
}

func runSetup(s *session) error {
	cfg, err := s.configure()
	if err != nil {
		return err
	}

	res, err := renderer.FetchOrUpdate(s.cmd.Context(), cfg.RendererDir, cfg.RemoteURL, cfg.Branch, s.printer)
	if err != nil {
		return err
	}
	s.printer.Info("Renderer ready in %s at %s", res.Dir, shortSHA(res.Head))

	if err := linkContent(cfg, s.printer); err != nil {
		return err
	}

	exists, err := store.Exists(cfg.DocumentPath())
	if err != nil {
		return err
	}
	if exists {
		return s.printer.Success(map[string]any{
			"status":   "exists",
			"document": cfg.DocumentPath(),
			"message":  "Site document already exists at " + cfg.DocumentPath(),
		})
	}

	doc, err := s.editor(cfg).CreateSite(s.cmd.Context())
	if err != nil {
		return err
	}
	return s.saveSite(cfg, doc)
}

// newConfigureCmd creates the configure command.
func newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Set the renderer directory and HTML source folder",
		Long: `Ask for the renderer directory and the folder holding your HTML files,
save the configuration, and link the renderer's content folder to the HTML
source folder. Answer "-" for the source folder to use the renderer's own
content folder.

Examples:
  lunchlady configure
  lunchlady configure --config ./lunchlady.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if err := runConfigure(s); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}
}

func runConfigure(s *session) error {
	cfg, err := s.configure()
	if err != nil {
		return err
	}
	if err := linkContent(cfg, s.printer); err != nil {
		return err
	}
	return s.printer.Success(map[string]any{
		"status":  "configured",
		"config":  s.configPath(),
		"message": "Configuration saved to " + s.configPath(),
	})
}

// configure asks for the configurable paths, starting from the saved
// configuration or the defaults, and saves the result.
func (s *session) configure() (*config.Config, error) {
	cfg, err := config.Load(s.configPath())
	if errors.Is(err, config.ErrNotConfigured) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	answers, err := s.ask.Ask(s.cmd.Context(),
		prompt.Question{Kind: prompt.Input, Name: "renderer", Message: "Renderer directory", Default: cfg.RendererDir},
		prompt.Question{Kind: prompt.Input, Name: "html", Message: "HTML source folder (- for none)", Default: cfg.HTMLSource},
	)
	if err != nil {
		return nil, err
	}

	cfg.SetRendererDir(s.fixPath(answers.Text("renderer")))
	cfg.HTMLSource = ""
	if html := strings.TrimSpace(answers.Text("html")); html != noSource {
		cfg.HTMLSource = s.fixPath(html)
	}

	if err := cfg.Save(s.configPath()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fixPath cleans a directory typed by the operator into an absolute path
// and says so when that changed it.
func (s *session) fixPath(raw string) string {
	fixed := config.CleanPath(raw)
	if fixed == "" {
		return ""
	}
	if abs, err := filepath.Abs(fixed); err == nil {
		fixed = abs
	}
	if fixed != raw {
		s.printer.Info("Fixing directory formatting: %s => %s", raw, fixed)
	}
	return fixed
}

// linkContent makes the content root a symlink to the HTML source folder.
// A link to the same folder is kept, a link elsewhere is replaced, and an
// empty folder is swapped for the link; anything else is left alone.
func linkContent(cfg *config.Config, r output.Reporter) error {
	if cfg.HTMLSource == "" {
		return nil
	}
	if !fsutil.IsDir(cfg.HTMLSource) {
		return output.NewUserError("HTML source folder does not exist: " + cfg.HTMLSource)
	}

	content := cfg.ContentRoot
	isLink, err := fsutil.IsSymlink(content)
	if err != nil {
		return err
	}
	if isLink {
		target, err := fsutil.ReadLink(content)
		if err != nil {
			return err
		}
		if target == cfg.HTMLSource {
			r.Info("Content directory already linked -- %s => %s", content, cfg.HTMLSource)
			return nil
		}
		if err := fsutil.Remove(content); err != nil {
			return err
		}
	} else {
		empty, err := fsutil.IsEmptyDir(content)
		if err != nil {
			return err
		}
		if !empty {
			return output.NewUserError(fmt.Sprintf(
				"cannot replace content folder which is not a symlink: %s; move its files into %s and remove it",
				content, cfg.HTMLSource))
		}
		if fsutil.IsDir(content) {
			if err := fsutil.Remove(content); err != nil {
				return err
			}
		}
	}

	if err := fsutil.Symlink(cfg.HTMLSource, content); err != nil {
		return err
	}
	r.Info("Content directory LINKED -- %s => %s", content, cfg.HTMLSource)
	return nil
}
