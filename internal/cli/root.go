// Package cli provides the command-line interface for taskdeck.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/app"
)

// Command group IDs.
const (
	groupAuth = "auth"
	groupTask = "task"
)

// NewRootCommand creates the root command for taskdeck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "Task management from the terminal",
		Long: `taskdeck is a terminal client for a task-management service.
Log in once, then create, edit and complete tasks from the command
line or the interactive dashboard.

Running taskdeck without a subcommand opens the dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Account:"},
		&cobra.Group{ID: groupTask, Title: "Tasks:"},
	)

	root.AddCommand(
		newLoginCommand(c),
		newRegisterCommand(c),
		newLogoutCommand(c),
		newWhoamiCommand(c),
		newAddCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newEditCommand(c),
		newDoneCommand(c),
		newRemoveCommand(c),
		newClearCommand(c),
	)

	return root
}
