package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/testutil"
)

// newTestModel builds a Model over a logged-in container with the given
// tasks already on the server, loaded into the cache and the list.
func newTestModel(t *testing.T, seed ...*domain.Task) (*Model, *testutil.MockTaskAPI) {
	t.Helper()

	api := testutil.NewMockTaskAPI()
	for _, task := range seed {
		api.Seed(task)
	}
	auth := &testutil.MockAuthAPI{
		Token:    "tok-123",
		Identity: domain.Identity{Username: "demo@example.com", Email: "demo@example.com", Name: "Demo User"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &testutil.MockClock{NowTime: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	container := app.NewWithDeps(auth, api, &testutil.MockCredentialStore{}, clock, logger, domain.NewDefaultConfig())

	_, err := container.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)

	m := New(container)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.refreshVisible()
	return m, api
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pendingTask(id int, title string) *domain.Task {
	return &domain.Task{
		ID:          id,
		Title:       title,
		Description: "Something that needs doing",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
	}
}

func TestUpdate_TasksLoadedFillsList(t *testing.T) {
	m, _ := newTestModel(t, pendingTask(1, "Pay rent"), pendingTask(2, "Buy groceries"))

	cmd := m.loadTasks()
	msg := cmd()
	loaded, ok := msg.(MsgTasksLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Tasks, 2)

	m.Update(loaded)
	assert.Equal(t, 2, len(m.taskList.Items()))
}

func TestUpdate_StatusFilterCycles(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, domain.Status(""), m.filter.Status)
	m.Update(keyRunes("s"))
	assert.Equal(t, domain.StatusPending, m.filter.Status)
	m.Update(keyRunes("s"))
	assert.Equal(t, domain.StatusCompleted, m.filter.Status)
	m.Update(keyRunes("s"))
	assert.Equal(t, domain.Status(""), m.filter.Status)
}

func TestUpdate_PriorityFilterCycles(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("p"))
	assert.Equal(t, domain.PriorityLow, m.filter.Priority)
	m.Update(keyRunes("p"))
	assert.Equal(t, domain.PriorityMedium, m.filter.Priority)
	m.Update(keyRunes("p"))
	assert.Equal(t, domain.PriorityHigh, m.filter.Priority)
	m.Update(keyRunes("p"))
	assert.Equal(t, domain.Priority(""), m.filter.Priority)
}

func TestUpdate_FilterHidesNonMatching(t *testing.T) {
	done := pendingTask(1, "Pay rent")
	done.Status = domain.StatusCompleted
	m, _ := newTestModel(t, done, pendingTask(2, "Buy groceries"))

	m.Update(keyRunes("s")) // pending
	assert.Equal(t, 1, len(m.taskList.Items()))

	m.Update(keyRunes("s")) // completed
	assert.Equal(t, 1, len(m.taskList.Items()))

	m.Update(keyRunes("s")) // all
	assert.Equal(t, 2, len(m.taskList.Items()))
}

func TestUpdate_SearchDebounce(t *testing.T) {
	m, _ := newTestModel(t, pendingTask(1, "Pay rent"), pendingTask(2, "Buy groceries"))

	m.Update(keyRunes("/"))
	assert.Equal(t, ModeSearch, m.mode)

	m.Update(keyRunes("r"))
	m.Update(keyRunes("e"))
	m.Update(keyRunes("n"))
	m.Update(keyRunes("t"))

	// A tick from an earlier keystroke must not apply the filter.
	m.Update(MsgSearchDebounce{Gen: m.searchGen - 1})
	assert.Equal(t, "", m.filter.Search)
	assert.Equal(t, 2, len(m.taskList.Items()))

	// The tick for the latest keystroke does.
	m.Update(MsgSearchDebounce{Gen: m.searchGen})
	assert.Equal(t, "rent", m.filter.Search)
	assert.Equal(t, 1, len(m.taskList.Items()))
}

func TestUpdate_SearchEscapeClearsFilter(t *testing.T) {
	m, _ := newTestModel(t, pendingTask(1, "Pay rent"), pendingTask(2, "Buy groceries"))

	m.Update(keyRunes("/"))
	m.Update(keyRunes("r"))
	m.Update(MsgSearchDebounce{Gen: m.searchGen})
	assert.Equal(t, 1, len(m.taskList.Items()))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "", m.filter.Search)
	assert.Equal(t, 2, len(m.taskList.Items()))
}

func TestUpdate_SearchEnterAppliesImmediately(t *testing.T) {
	m, _ := newTestModel(t, pendingTask(1, "Pay rent"), pendingTask(2, "Buy groceries"))

	m.Update(keyRunes("/"))
	m.Update(keyRunes("g"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "g", m.filter.Search)
	assert.Equal(t, 1, len(m.taskList.Items()))
}

func TestUpdate_NewTaskFlow(t *testing.T) {
	m, api := newTestModel(t)

	m.Update(keyRunes("n"))
	assert.Equal(t, ModeInputTitle, m.mode)

	for _, r := range "Pay rent" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeInputDesc, m.mode)

	for _, r := range "Send the monthly payment" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeInputDue, m.mode)

	for _, r := range "2099-01-01" {
		m.Update(keyRunes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	require.NotNil(t, cmd)

	msg := cmd()
	created, ok := msg.(MsgTaskCreated)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "Pay rent", created.Task.Title)
	assert.Len(t, api.Tasks, 1)

	m.Update(created)
	assert.Equal(t, 1, len(m.taskList.Items()))
}

func TestUpdate_NewTaskInvalidDraft(t *testing.T) {
	m, api := newTestModel(t)

	m.Update(keyRunes("n"))
	m.Update(keyRunes("H")) // title too short is fine, description is not
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(keyRunes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range "2099-01-01" {
		m.Update(keyRunes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(MsgError)
	require.True(t, ok, "got %T", msg)
	var verr *domain.ValidationError
	assert.ErrorAs(t, errMsg.Err, &verr)
	assert.Empty(t, api.Tasks)
}

func TestUpdate_InputEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("n"))
	m.Update(keyRunes("P"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "", m.titleInput.Value())
	assert.Equal(t, domain.TaskDraft{}, m.draft)
}

func TestUpdate_ToggleDone(t *testing.T) {
	m, api := newTestModel(t, pendingTask(1, "Pay rent"))

	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)

	msg := cmd()
	updated, ok := msg.(MsgTaskUpdated)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, domain.StatusCompleted, updated.Task.Status)
	assert.Equal(t, domain.StatusCompleted, api.Tasks[1].Status)
}

func TestUpdate_DeleteRequiresConfirmation(t *testing.T) {
	m, api := newTestModel(t, pendingTask(1, "Pay rent"))

	m.Update(keyRunes("d"))
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDelete, m.confirmAction)
	assert.Equal(t, 1, m.confirmTaskID)

	// Anything but y cancels.
	m.Update(keyRunes("x"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, api.Tasks, 1)

	m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	require.NotNil(t, cmd)

	msg := cmd()
	deleted, ok := msg.(MsgTaskDeleted)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 1, deleted.TaskID)
	assert.Empty(t, api.Tasks)
}

func TestUpdate_ClearAllConfirmed(t *testing.T) {
	m, api := newTestModel(t, pendingTask(1, "Pay rent"), pendingTask(2, "Buy groceries"))

	m.Update(keyRunes("D"))
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmClear, m.confirmAction)

	_, cmd := m.Update(keyRunes("y"))
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(MsgTasksCleared)
	require.True(t, ok, "got %T", msg)
	assert.Empty(t, api.Tasks)

	m.Update(msg)
	assert.Equal(t, 0, len(m.taskList.Items()))
}

func TestUpdate_ClearAllNoTasksIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("D"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestUpdate_ErrorBar(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(MsgError{Err: assert.AnError})
	assert.Equal(t, assert.AnError, m.err)

	m.Update(MsgClearError{})
	assert.Nil(t, m.err)
}

func TestUpdate_HelpToggles(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("?"))
	assert.Equal(t, ModeHelp, m.mode)

	m.Update(keyRunes("q"))
	assert.Equal(t, ModeNormal, m.mode)
}
