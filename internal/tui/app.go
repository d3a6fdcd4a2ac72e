package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// searchDebounce is how long the dashboard waits after the last search
// keystroke before filtering the list.
const searchDebounce = 300 * time.Millisecond

// errDisplay is how long an error stays on screen.
const errDisplay = 4 * time.Second

// Model is the main bubbletea model for the dashboard.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model

	// Input state (large structs)
	titleInput  textinput.Model
	descInput   textinput.Model
	dueInput    textinput.Model
	searchInput textinput.Model

	// Draft being composed across the input modes
	draft domain.TaskDraft

	// Filter applied to the visible list
	filter domain.TaskFilter

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	confirmTaskID int
	searchGen     int
	width         int
	height        int
}

// New creates a new dashboard Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = domain.TitleMaxLen

	di := textinput.New()
	di.Placeholder = "Task description"
	di.CharLimit = 1000

	du := textinput.New()
	du.Placeholder = "Due date (YYYY-MM-DD)"
	du.CharLimit = 10

	si := textinput.New()
	si.Placeholder = "Search title and description..."
	si.CharLimit = 100

	styles := DefaultStyles()
	delegate := newTaskDelegate(styles, domain.DateOf(c.Clock.Now()))
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(true)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	return &Model{
		container:   c,
		mode:        ModeNormal,
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		taskList:    taskList,
		titleInput:  ti,
		descInput:   di,
		dueInput:    du,
		searchInput: si,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks returns a command that reloads the collection from the server.
func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.container.Tasks.Load(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: tasks}
	}
}

// createTask returns a command that creates a task from the given draft.
func (m *Model) createTask(draft domain.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		created, err := m.container.Tasks.Create(context.Background(), draft)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{Task: created}
	}
}

// toggleDone returns a command that flips a task between pending and
// completed.
func (m *Model) toggleDone(task *domain.Task) tea.Cmd {
	next := domain.StatusCompleted
	if task.IsCompleted() {
		next = domain.StatusPending
	}
	id := task.ID
	return func() tea.Msg {
		updated, err := m.container.Tasks.Update(context.Background(), id, domain.TaskPatch{Status: &next})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Task: updated}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id int) tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Tasks.Remove(context.Background(), id); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{TaskID: id}
	}
}

// clearTasks returns a command that deletes every task.
func (m *Model) clearTasks() tea.Cmd {
	return func() tea.Msg {
		if err := m.container.Tasks.ClearAll(context.Background()); err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksCleared{}
	}
}

// debounceSearch returns a command that fires after the debounce interval
// carrying the generation it was scheduled for.
func (m *Model) debounceSearch() tea.Cmd {
	gen := m.searchGen
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return MsgSearchDebounce{Gen: gen}
	})
}

// clearErrorLater returns a command that clears the error bar.
func (m *Model) clearErrorLater() tea.Cmd {
	return tea.Tick(errDisplay, func(time.Time) tea.Msg {
		return MsgClearError{}
	})
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		return ti.task
	}
	return nil
}

// refreshVisible rebuilds the list items from the cache through the current
// filter.
func (m *Model) refreshVisible() {
	visible := m.container.Tasks.Visible(m.filter)
	items := make([]list.Item, 0, len(visible))
	for _, task := range visible {
		items = append(items, taskItem{task: task})
	}
	m.taskList.SetItems(items)
}

// resetDraft clears the in-progress task inputs.
func (m *Model) resetDraft() {
	m.draft = domain.TaskDraft{}
	m.titleInput.Reset()
	m.descInput.Reset()
	m.dueInput.Reset()
}
