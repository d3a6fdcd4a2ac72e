package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/testutil"
)

func newTestContainer(auth *testutil.MockAuthAPI, tasks *testutil.MockTaskAPI) *Container {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &testutil.MockClock{NowTime: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithDeps(auth, tasks, &testutil.MockCredentialStore{}, clock, logger, domain.NewDefaultConfig())
}

func seedTask(api *testutil.MockTaskAPI, id int, title string) {
	api.Seed(&domain.Task{
		ID:          id,
		Title:       title,
		Description: "Send the monthly payment",
		DueDate:     domain.NewDate(2099, time.January, 1),
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusPending,
	})
}

func TestContainer_LoginTriggersTaskReload(t *testing.T) {
	auth := &testutil.MockAuthAPI{
		Token:    "tok-123",
		Identity: domain.Identity{Username: "demo@example.com", Email: "demo@example.com"},
	}
	tasks := testutil.NewMockTaskAPI()
	seedTask(tasks, 1, "Pay rent")
	c := newTestContainer(auth, tasks)

	_, err := c.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)

	// The credential-change hook loaded the cache.
	assert.Equal(t, 1, c.Tasks.Len())
}

func TestContainer_LogoutClearsCacheWithoutNetwork(t *testing.T) {
	auth := &testutil.MockAuthAPI{
		Token:    "tok-123",
		Identity: domain.Identity{Username: "demo@example.com", Email: "demo@example.com"},
	}
	tasks := testutil.NewMockTaskAPI()
	seedTask(tasks, 1, "Pay rent")
	c := newTestContainer(auth, tasks)

	_, err := c.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)
	require.Equal(t, 1, c.Tasks.Len())
	calls := tasks.CallCount()

	c.Sessions.Logout()

	// Cache empties the instant the credential is cleared, with zero
	// additional network calls.
	assert.Zero(t, c.Tasks.Len())
	assert.Equal(t, calls, tasks.CallCount())
}

func TestContainer_DemoLoginScenario(t *testing.T) {
	auth := &testutil.MockAuthAPI{
		Token:    "tok-demo",
		Identity: domain.Identity{Username: "demo@example.com", Email: "demo@example.com"},
	}
	c := newTestContainer(auth, testutil.NewMockTaskAPI())

	session, err := c.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)

	assert.Equal(t, domain.StateAuthenticated, c.Sessions.State())
	assert.Equal(t, "demo@example.com", session.Identity.Username)
}
