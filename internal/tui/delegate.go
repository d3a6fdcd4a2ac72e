package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type taskItem struct {
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// priorityBadge is the short marker rendered before the title.
func priorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "!!!"
	case domain.PriorityMedium:
		return " !!"
	default:
		return "  ·"
	}
}

type taskDelegate struct {
	styles Styles
	today  domain.Date
}

func newTaskDelegate(styles Styles, today domain.Date) *taskDelegate {
	return &taskDelegate{styles: styles, today: today}
}

func (d *taskDelegate) Height() int {
	return 2
}

func (d *taskDelegate) Spacing() int {
	return 1
}

func (d *taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d *taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}

	idStr := fmt.Sprintf("%3d", task.ID)
	statusIcon := StatusIcon(task.Status)

	due := task.DueDate.String()
	dueStyle := d.styles.DueNormal
	if task.IsOverdue(d.today) {
		dueStyle = d.styles.DueOverdue
		due += " !"
	}

	prefixWidth := 24
	listWidth := m.Width()
	maxTitleLen := listWidth - prefixWidth - 2
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}

	title := escapeNewlines(task.Title)
	if runewidth.StringWidth(title) > maxTitleLen {
		title = runewidth.Truncate(title, maxTitleLen-3, "...")
	}

	statusStyle := d.styles.StatusStyle(task.Status)
	titleStyle := d.styles.TaskTitle
	if selected {
		statusStyle = statusStyle.Bold(true)
		titleStyle = d.styles.TaskTitleSelected.Bold(true)
	}

	line := "  " + d.styles.SelectionIndicator.Render(indicatorChar) + " " +
		d.styles.TaskID.Render(idStr) + " " +
		statusStyle.Render(statusIcon) + " " +
		d.styles.PriorityStyle(task.Priority).Render(priorityBadge(task.Priority)) + " " +
		dueStyle.Render(due) + "  " +
		titleStyle.Render(title)

	desc := escapeNewlines(task.Description)
	maxDescLen := listWidth - 8
	if maxDescLen < 10 {
		maxDescLen = 10
	}
	if runewidth.StringWidth(desc) > maxDescLen {
		desc = runewidth.Truncate(desc, maxDescLen-3, "...")
	}
	descLine := "      " + d.styles.TaskDesc.Render(desc)

	fmt.Fprintf(w, "%s\n%s", line, descLine)
}
