package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case Msg:
		return m.handleMsg(msg)
	}
	return m, nil
}

// handleMsg routes application messages.
func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTasksLoaded, MsgTaskCreated, MsgTaskUpdated, MsgTaskDeleted, MsgTasksCleared:
		m.refreshVisible()
		return m, nil
	case MsgSearchDebounce:
		// A newer keystroke supersedes this tick.
		if msg.Gen != m.searchGen {
			return m, nil
		}
		m.filter.Search = m.searchInput.Value()
		m.refreshVisible()
		return m, nil
	case MsgError:
		m.err = msg.Err
		return m, m.clearErrorLater()
	case MsgClearError:
		m.err = nil
		return m, nil
	}
	return m, nil
}

// handleKey routes key presses based on the current mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeInputTitle, ModeInputDesc, ModeInputDue:
		return m.handleInputKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputTitle
		m.titleInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Done):
		if task := m.SelectedTask(); task != nil {
			return m, m.toggleDone(task)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task := m.SelectedTask(); task != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			m.confirmTaskID = task.ID
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.container.Tasks.Len() > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		m.filter.Status = nextStatusFilter(m.filter.Status)
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.CyclePriority):
		m.filter.Priority = nextPriorityFilter(m.filter.Priority)
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.ResetFilters):
		m.filter = domain.TaskFilter{}
		m.searchInput.Reset()
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// Cancel the search entirely.
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.searchGen++
		m.filter.Search = ""
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		// Apply immediately and keep the filter.
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchGen++
		m.filter.Search = m.searchInput.Value()
		m.refreshVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchGen++
	return m, tea.Batch(cmd, m.debounceSearch())
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.mode = ModeNormal
		m.titleInput.Blur()
		m.descInput.Blur()
		m.dueInput.Blur()
		m.resetDraft()
		return m, nil
	}

	if key.Matches(msg, m.keys.Enter) {
		switch m.mode {
		case ModeInputTitle:
			m.draft.Title = m.titleInput.Value()
			m.titleInput.Blur()
			m.mode = ModeInputDesc
			m.descInput.Focus()
			return m, nil
		case ModeInputDesc:
			m.draft.Description = m.descInput.Value()
			m.descInput.Blur()
			m.mode = ModeInputDue
			m.dueInput.Focus()
			return m, nil
		case ModeInputDue:
			if v := m.dueInput.Value(); v != "" {
				due, err := domain.ParseDate(v)
				if err != nil {
					m.err = fmt.Errorf("due date: %w", err)
					return m, m.clearErrorLater()
				}
				m.draft.DueDate = due
			}
			m.dueInput.Blur()
			m.mode = ModeNormal
			draft := m.draft
			m.resetDraft()
			return m, m.createTask(draft)
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeInputTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case ModeInputDesc:
		m.descInput, cmd = m.descInput.Update(msg)
	case ModeInputDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		action := m.confirmAction
		taskID := m.confirmTaskID
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.confirmTaskID = 0

		switch action {
		case ConfirmDelete:
			return m, m.deleteTask(taskID)
		case ConfirmClear:
			return m, m.clearTasks()
		}
		return m, nil
	}

	m.mode = ModeNormal
	m.confirmAction = ConfirmNone
	m.confirmTaskID = 0
	return m, nil
}

func (m *Model) handleHelpKeys(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	return m, nil
}

// nextStatusFilter cycles all -> pending -> completed -> all.
func nextStatusFilter(s domain.Status) domain.Status {
	switch s {
	case "":
		return domain.StatusPending
	case domain.StatusPending:
		return domain.StatusCompleted
	default:
		return ""
	}
}

// nextPriorityFilter cycles all -> low -> medium -> high -> all.
func nextPriorityFilter(p domain.Priority) domain.Priority {
	switch p {
	case "":
		return domain.PriorityLow
	case domain.PriorityLow:
		return domain.PriorityMedium
	case domain.PriorityMedium:
		return domain.PriorityHigh
	default:
		return ""
	}
}
