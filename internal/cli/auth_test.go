package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/testutil"
)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(auth *testutil.MockAuthAPI, tasks *testutil.MockTaskAPI) *app.Container {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &testutil.MockClock{NowTime: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return app.NewWithDeps(auth, tasks, &testutil.MockCredentialStore{}, clock, logger, domain.NewDefaultConfig())
}

func demoAuth() *testutil.MockAuthAPI {
	return &testutil.MockAuthAPI{
		Token:    "tok-123",
		Identity: domain.Identity{Username: "demo@example.com", Email: "demo@example.com", Name: "Demo User"},
	}
}

func TestLoginCommand_Success(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())

	cmd := newLoginCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--username", "demo@example.com", "--password", "demo123"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Logged in as Demo User")
	assert.Equal(t, domain.StateAuthenticated, container.Sessions.State())
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	auth := demoAuth()
	auth.AuthErr = domain.ErrInvalidCredentials
	container := newTestContainer(auth, testutil.NewMockTaskAPI())

	cmd := newLoginCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--username", "demo@example.com", "--password", "wrong"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, domain.StateUnauthenticated, container.Sessions.State())
}

func TestLoginCommand_MissingFlags(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())

	cmd := newLoginCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestLoginCommand_GoogleToken(t *testing.T) {
	auth := demoAuth()
	auth.Google = domain.Session{
		Token:    "tok-google",
		Identity: domain.Identity{Username: "g@example.com", Email: "g@example.com", Name: "G User"},
	}
	container := newTestContainer(auth, testutil.NewMockTaskAPI())

	cmd := newLoginCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--google-token", "id-token"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Logged in as G User")
}

func TestRegisterCommand_AutoLogin(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())

	cmd := newRegisterCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--name", "Demo User", "--email", "demo@example.com", "--password", "demo123"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Welcome, Demo User")
	assert.Equal(t, domain.StateAuthenticated, container.Sessions.State())
}

func TestRegisterCommand_Conflict(t *testing.T) {
	auth := demoAuth()
	auth.RegisterErr = &domain.ConflictError{Field: "email", Message: "already in use"}
	container := newTestContainer(auth, testutil.NewMockTaskAPI())

	cmd := newRegisterCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--email", "taken@example.com", "--password", "demo123"})

	err := cmd.Execute()

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

func TestLogoutCommand(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())
	_, err := container.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)

	cmd := newLogoutCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Logged out")
	assert.Equal(t, domain.StateUnauthenticated, container.Sessions.State())
}

func TestWhoamiCommand_LoggedIn(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())
	_, err := container.Sessions.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)

	cmd := newWhoamiCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "demo@example.com")
	assert.Contains(t, buf.String(), "Demo User")
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	container := newTestContainer(demoAuth(), testutil.NewMockTaskAPI())

	cmd := newWhoamiCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Not logged in")
}
