package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// ensureLoaded fills the task cache for a fresh process. Commands that only
// need a local lookup still need one load per invocation.
func ensureLoaded(ctx context.Context, c *app.Container) error {
	if c.Tasks.Len() > 0 {
		return nil
	}
	_, err := c.Tasks.Load(ctx)
	return err
}

// parseID parses a positional task id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		Priority    string
		From        string
	}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a new task",
		GroupID: groupTask,
		Long: `Create a new task. Title, description and due date are required;
priority defaults to medium.

Examples:
  # Create a task
  taskdeck add --title "Pay rent" --description "Send the monthly payment" --due 2099-01-01 --priority high

  # Create several tasks from a YAML file
  taskdeck add --from tasks.yaml

File format for --from:
  - title: Pay rent
    description: Send the monthly payment
    due_date: 2099-01-01
    priority: high`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.From != "" {
				return addFromFile(cmd, c, opts.From)
			}

			draft := domain.TaskDraft{
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    domain.Priority(opts.Priority),
			}
			if opts.Due != "" {
				due, err := domain.ParseDate(opts.Due)
				if err != nil {
					return err
				}
				draft.DueDate = due
			}

			created, err := c.Tasks.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Task title (required)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description (required)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.Priority, "priority", string(domain.PriorityMedium), "Priority: low, medium or high")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML file")

	return cmd
}

// addFromFile creates every draft in a YAML file, stopping at the first
// failure.
func addFromFile(cmd *cobra.Command, c *app.Container, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	drafts, err := domain.ParseTaskDrafts(content)
	if err != nil {
		return err
	}

	for i, draft := range drafts {
		created, err := c.Tasks.Create(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", created.ID, created.Title)
	}
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status   string
		Priority string
		Search   string
		Remote   bool
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tasks",
		GroupID: groupTask,
		Long: `List tasks, newest first. Filters combine: a task is shown only
when it matches every given filter. Search matches title and
description, case-insensitively.

With --remote, filtering and search are performed by the server
instead of locally.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var tasks []*domain.Task
			if opts.Remote {
				result, err := c.Tasks.Query(cmd.Context(), domain.ListOptions{
					Status:   domain.Status(opts.Status),
					Priority: domain.Priority(opts.Priority),
					Search:   opts.Search,
				})
				if err != nil {
					return err
				}
				tasks = result
			} else {
				if _, err := c.Tasks.Load(cmd.Context()); err != nil {
					return err
				}
				tasks = c.Tasks.Visible(domain.TaskFilter{
					Status:   domain.Status(opts.Status),
					Priority: domain.Priority(opts.Priority),
					Search:   opts.Search,
				})
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tasks)
			}

			printTaskTable(cmd, tasks, domain.DateOf(c.Clock.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (pending, completed)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Search in title and description")
	cmd.Flags().BoolVar(&opts.Remote, "remote", false, "Let the server filter instead of the local cache")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// printTaskTable renders tasks in aligned columns.
func printTaskTable(cmd *cobra.Command, tasks []*domain.Task, today domain.Date) {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE")
	for _, t := range tasks {
		due := t.DueDate.String()
		if t.IsOverdue(today) {
			due += " !"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status.Display(), t.Priority.Display(), due, t.Title)
	}
	_ = w.Flush()
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a task in detail",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := ensureLoaded(cmd.Context(), c); err != nil {
				return err
			}

			task, ok := c.Tasks.Find(id)
			if !ok {
				return domain.ErrTaskNotFound
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", task.ID, task.Title)
			fmt.Fprintf(out, "Status:   %s\n", task.Status.Display())
			fmt.Fprintf(out, "Priority: %s\n", task.Priority.Display())
			fmt.Fprintf(out, "Due:      %s\n", task.DueDate)
			fmt.Fprintf(out, "\n%s\n", task.Description)
			return nil
		},
	}
}
