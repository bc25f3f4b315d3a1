package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/lunchlady/internal/output"
	"github.com/gorewood/lunchlady/internal/prompt"
)

// Main menu actions.
const (
	menuAddArticle prompt.Sentinel = iota + 1
	menuManageSite
	menuUpdate
	menuConfigure
	menuQuit
)

// runMainMenu offers the everyday commands until the operator quits. An
// operator-fixable failure is reported and the menu shown again; anything
// else ends the session.
func runMainMenu(cmd *cobra.Command) error {
	s := newSession(cmd)
	for {
		answers, err := s.ask.Ask(cmd.Context(), prompt.Question{
			Kind:    prompt.Select,
			Name:    "command",
			Message: "Lunchlady says, 'wuddya want?'",
			Choices: []prompt.Choice{
				{Label: "Add Article", Value: menuAddArticle},
				{Label: "Manage Site", Value: menuManageSite},
				{Label: "Fetch/Update Renderer", Value: menuUpdate},
				{Label: "Configure", Value: menuConfigure},
				{Label: "Quit", Value: menuQuit},
			},
		})
		if err != nil {
			return s.fail(err)
		}

		switch answers.Value("command") {
		case menuAddArticle:
			err = runAdd(s)
		case menuManageSite:
			err = runManage(s)
		case menuUpdate:
			cfg, loadErr := s.loadConfig()
			if err = loadErr; err == nil {
				err = runUpdate(s, cfg)
			}
		case menuConfigure:
			err = runConfigure(s)
		case menuQuit:
			s.printer.Info("Enjoy your slop!")
			return nil
		}

		if err == nil {
			continue
		}
		err = s.fail(err)
		if output.GetExitCode(err) != output.ExitUserError || errors.Is(err, prompt.ErrAborted) {
			return err
		}
	}
}
