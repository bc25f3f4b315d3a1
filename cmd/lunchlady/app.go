package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/editor"
	"github.com/gorewood/lunchlady/internal/fsutil"
	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/prompt"
	"github.com/gorewood/lunchlady/internal/site"
	"github.com/gorewood/lunchlady/internal/store"
)

// session bundles what a command run needs: where to print, whom to ask
// and which configuration file to use.
type session struct {
	cmd     *cobra.Command
	printer *output.Printer
	ask     prompt.Asker
}

func newSession(cmd *cobra.Command) *session {
	color := useColor(cmd)
	return &session{
		cmd:     cmd,
		printer: output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr()),
		ask:     prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), color),
	}
}

// configPath returns the --config flag value or the default location.
func (s *session) configPath() string {
	if flag := s.cmd.Flags().Lookup("config"); flag != nil && flag.Value.String() != "" {
		return config.CleanPath(flag.Value.String())
	}
	return config.Path()
}

// loadConfig reads the configuration, telling the operator how to create
// one when it is missing.
func (s *session) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(s.configPath())
	if errors.Is(err, config.ErrNotConfigured) {
		return nil, output.NewUserErrorWithCause(
			fmt.Sprintf("no configuration at %s; run `lunchlady setup` first", s.configPath()), err)
	}
	return cfg, err
}

func (s *session) editor(cfg *config.Config) *editor.Editor {
	return editor.New(s.ask, s.printer, cfg)
}

// loadSite reads the configured site document.
func (s *session) loadSite(cfg *config.Config) (*site.Site, error) {
	doc, err := store.Load(cfg.DocumentPath())
	if errors.Is(err, store.ErrNotFound) {
		return nil, output.NewUserErrorWithCause(
			fmt.Sprintf("no site document at %s; run `lunchlady setup` first", cfg.DocumentPath()), err)
	}
	return doc, err
}

// saveSite writes the document and reports it.
func (s *session) saveSite(cfg *config.Config, doc *site.Site) error {
	if err := store.Save(doc, cfg.DocumentPath()); err != nil {
		return err
	}
	return s.printer.Success(map[string]any{
		"status":   "saved",
		"document": cfg.DocumentPath(),
		"sections": len(doc.SectionOrder),
		"entries":  len(doc.Entries),
		"message":  "Saved " + cfg.DocumentPath(),
	})
}

// fail classifies err, prints it once and returns it for fang.
func (s *session) fail(err error) error {
	err = exitError(err)
	s.printer.Error(err)
	return err
}

// exitError maps domain errors onto CLI exit codes: operator-fixable
// problems are user errors, I/O and git failures are system errors, and a
// broken document invariant is a conflict.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *output.ExitError
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.Is(err, site.ErrInvariant):
		return output.NewConflictError(err.Error()+"; nothing was saved", err)
	case errors.Is(err, store.ErrRead), errors.Is(err, store.ErrWrite), errors.Is(err, fsutil.ErrIO):
		return output.NewSystemErrorWithCause(err.Error(), err)
	case errors.Is(err, prompt.ErrAborted):
		return output.NewUserErrorWithCause("input closed; nothing was saved", err)
	default:
		// Missing or malformed documents and configuration, unknown schema
		// versions and rejected input.
		return output.NewUserErrorWithCause(err.Error(), err)
	}
}
