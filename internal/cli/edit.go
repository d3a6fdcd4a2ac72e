package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// newEditCommand creates the edit command for partial updates.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		Priority    string
		Status      string
	}

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit fields of a task",
		GroupID: groupTask,
		Long: `Edit a task. Only the given flags are sent to the server; other
fields keep their values.

Examples:
  taskdeck edit 5 --status completed
  taskdeck edit 5 --title "Pay rent early" --due 2099-02-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &opts.Title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &opts.Description
			}
			if cmd.Flags().Changed("due") {
				due, err := domain.ParseDate(opts.Due)
				if err != nil {
					return err
				}
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(opts.Priority)
				if !p.IsValid() {
					return fmt.Errorf("invalid priority %q", opts.Priority)
				}
				patch.Priority = &p
			}
			if cmd.Flags().Changed("status") {
				s := domain.Status(opts.Status)
				if !s.IsValid() {
					return fmt.Errorf("invalid status %q", opts.Status)
				}
				patch.Status = &s
			}

			if err := ensureLoaded(cmd.Context(), c); err != nil {
				return err
			}
			updated, err := c.Tasks.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", updated.ID, updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority: low, medium or high")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status: pending or completed")

	return cmd
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Short:   "Mark a task as completed",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			status := domain.StatusCompleted
			updated, err := c.Tasks.Update(cmd.Context(), id, domain.TaskPatch{Status: &status})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d: %s\n", updated.ID, updated.Title)
			return nil
		},
	}
}

// newRemoveCommand creates the rm command.
func newRemoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a task",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := c.Tasks.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}

// newClearCommand creates the clear command.
func newClearCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete every task",
		GroupID: groupTask,
		Long: `Delete every task in the collection. Deletes run concurrently; if
any delete fails the collection is re-synchronized with the server
and the error is reported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all tasks without --yes")
			}

			if err := ensureLoaded(cmd.Context(), c); err != nil {
				return err
			}
			count := c.Tasks.Len()
			if err := c.Tasks.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion of all tasks")

	return cmd
}
