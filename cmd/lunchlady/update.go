package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/lunchlady/internal/config"
	"github.com/gorewood/lunchlady/internal/renderer"
)

// newUpdateCmd creates the update command.
func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Aliases: []string{"get-sloppy"},
		Short:   "Fetch or update the local renderer checkout",
		Long: `Clone the site renderer into the configured renderer directory, or bring
an existing checkout up to date with the configured branch.

Examples:
  lunchlady update
  lunchlady update --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			cfg, err := s.loadConfig()
			if err != nil {
				return s.fail(err)
			}
			if err := runUpdate(s, cfg); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}
}

func runUpdate(s *session, cfg *config.Config) error {
	res, err := renderer.FetchOrUpdate(s.cmd.Context(), cfg.RendererDir, cfg.RemoteURL, cfg.Branch, s.printer)
	if err != nil {
		return err
	}
	action := "Updated"
	if res.Cloned {
		action = "Cloned"
	}
	return s.printer.Success(map[string]any{
		"status":  "ok",
		"dir":     res.Dir,
		"remote":  res.Remote,
		"branch":  res.Branch,
		"cloned":  res.Cloned,
		"head":    res.Head,
		"message": action + " renderer in " + res.Dir + " at " + shortSHA(res.Head),
	})
}

func shortSHA(sha string) string {
	return sha[:min(12, len(sha))]
}
