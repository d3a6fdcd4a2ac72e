package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/tui"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to
// be mocked in tests.
var launchTUIFunc = launchTUI

// runTUI opens the interactive dashboard. It requires an authenticated
// session: the dashboard has nothing to show otherwise.
func runTUI(cmd *cobra.Command, c *app.Container) error {
	if _, ok := c.Sessions.Current(); !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run 'taskdeck login' first.")
		return domain.ErrNotAuthenticated
	}
	return launchTUIFunc(c)
}

func launchTUI(c *app.Container) error {
	model := tui.New(c)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
