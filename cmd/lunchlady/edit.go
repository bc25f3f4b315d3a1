package main

import (
	"github.com/spf13/cobra"
)

// newAddCmd creates the add command.
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create an article from an HTML file in the content folder",
		Long: `Choose a section, then pick one of the HTML files in the content folder
that is not yet an article. Lunchlady asks for its title, publish date and
tags, then saves the site document.

Examples:
  lunchlady add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if err := runAdd(s); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}
}

func runAdd(s *session) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	doc, err := s.loadSite(cfg)
	if err != nil {
		return err
	}
	next, err := s.editor(cfg).AddArticleToSite(s.cmd.Context(), doc)
	if err != nil {
		return err
	}
	if next == doc {
		s.printer.Info("Nothing to save")
		return nil
	}
	return s.saveSite(cfg, next)
}

// newManageCmd creates the manage command.
func newManageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: "Edit sections, articles and themes interactively",
		Long: `Open the Manage Site menu: manage a section's articles, add, rename,
reorder or re-sort sections, and choose the site themes. The document is
saved when you pick [Save & Quit]; closing the input saves nothing.

Examples:
  lunchlady manage`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if err := runManage(s); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}
}

func runManage(s *session) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	doc, err := s.loadSite(cfg)
	if err != nil {
		return err
	}
	next, err := s.editor(cfg).ManageSite(s.cmd.Context(), doc)
	if err != nil {
		return err
	}
	return s.saveSite(cfg, next)
}
