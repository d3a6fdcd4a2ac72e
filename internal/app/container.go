// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/infra/api"
	"github.com/taskdeck/taskdeck/internal/infra/config"
	"github.com/taskdeck/taskdeck/internal/infra/logging"
	"github.com/taskdeck/taskdeck/internal/infra/sessionstore"
	"github.com/taskdeck/taskdeck/internal/session"
	"github.com/taskdeck/taskdeck/internal/taskcache"
)

// Container provides dependency injection for the application. Only the two
// managers hold write access to their state; everything else reads through
// them.
type Container struct {
	Sessions *session.Manager
	Tasks    *taskcache.Manager
	Clock    domain.Clock
	Logger   *slog.Logger
	Config   *domain.Config

	logCloser io.Closer
}

// New creates a Container from the user's configuration. It restores any
// stored session synchronously so commands see the authenticated state
// before doing anything else; no network call is made here.
func New() (*Container, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.DefaultDir(), logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		// Logging must never prevent the app from running.
		logger = logging.Discard()
		logCloser = io.NopCloser(nil)
	}

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)
	store := sessionstore.New(sessionstore.DefaultPath())
	clock := domain.RealClock{}

	c := build(client, client, store, clock, logger, cfg)
	c.logCloser = logCloser
	c.Sessions.Restore()
	return c, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(auth domain.AuthAPI, tasks domain.TaskAPI, store domain.CredentialStore, clock domain.Clock, logger *slog.Logger, cfg *domain.Config) *Container {
	return build(auth, tasks, store, clock, logger, cfg)
}

func build(auth domain.AuthAPI, taskAPI domain.TaskAPI, store domain.CredentialStore, clock domain.Clock, logger *slog.Logger, cfg *domain.Config) *Container {
	sessions := session.NewManager(auth, store, logger)
	tasks := taskcache.NewManager(taskAPI, sessions, clock, logger)

	// Credential changes drive the cache: absent clears it instantly with no
	// network call, a fresh credential triggers a reload.
	sessions.OnCredentialChange(func(token string) {
		if token == "" {
			tasks.Reset()
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := tasks.Load(ctx); err != nil {
			logger.Warn("task reload after login failed", "error", err)
		}
	})

	return &Container{
		Sessions: sessions,
		Tasks:    tasks,
		Clock:    clock,
		Logger:   logger,
		Config:   cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.logCloser != nil {
		return c.logCloser.Close()
	}
	return nil
}
