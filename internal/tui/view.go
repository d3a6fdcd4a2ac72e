package tui

import (
	"fmt"
	"strings"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.mode == ModeHelp {
		return m.styles.App.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.taskList.View())
	b.WriteString("\n")

	switch m.mode {
	case ModeSearch:
		b.WriteString(m.styles.InputLabel.Render("Search: "))
		b.WriteString(m.searchInput.View())
	case ModeInputTitle:
		b.WriteString(m.styles.InputLabel.Render("Title: "))
		b.WriteString(m.titleInput.View())
	case ModeInputDesc:
		b.WriteString(m.styles.InputLabel.Render("Description: "))
		b.WriteString(m.descInput.View())
	case ModeInputDue:
		b.WriteString(m.styles.InputLabel.Render("Due date: "))
		b.WriteString(m.dueInput.View())
	case ModeConfirm:
		b.WriteString(m.confirmView())
	default:
		b.WriteString(m.styles.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorBar.Render("Error: " + m.err.Error()))
	}

	return m.styles.App.Render(b.String())
}

// headerView renders the title line with the signed-in user and active
// filters.
func (m *Model) headerView() string {
	header := m.styles.Header.Render("taskdeck")

	if session, ok := m.container.Sessions.Current(); ok {
		header += m.styles.Help.Render("  " + session.Identity.DisplayName())
	}

	if summary := m.filterSummary(); summary != "" {
		header += m.styles.FilterBar.Render("  " + summary)
	}

	return header
}

// filterSummary describes the active filters, empty when none.
func (m *Model) filterSummary() string {
	var parts []string
	if m.filter.Status != "" {
		parts = append(parts, "status:"+string(m.filter.Status))
	}
	if m.filter.Priority != "" {
		parts = append(parts, "priority:"+string(m.filter.Priority))
	}
	if m.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search:%q", m.filter.Search))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// confirmView renders the confirmation dialog.
func (m *Model) confirmView() string {
	var prompt string
	switch m.confirmAction {
	case ConfirmDelete:
		prompt = fmt.Sprintf("Delete task #%d? (y/N)", m.confirmTaskID)
	case ConfirmClear:
		prompt = fmt.Sprintf("Delete all %d task(s)? (y/N)", m.container.Tasks.Len())
	}
	return m.styles.Dialog.Render(prompt)
}
