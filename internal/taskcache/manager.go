// Package taskcache maintains a locally cached, eventually consistent mirror
// of the server's task set for the current session. Every mutation is
// serialized through the remote API before it is reflected locally.
package taskcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// TokenSource provides the current bearer token, or "" when unauthenticated.
// The session manager satisfies this.
type TokenSource interface {
	Token() string
}

// Manager owns the in-memory task collection. Views receive cloned snapshots
// and must route all mutations back through the manager's operations.
type Manager struct {
	api    domain.TaskAPI
	tokens TokenSource
	clock  domain.Clock
	logger *slog.Logger

	mu    sync.Mutex
	tasks []*domain.Task
}

// NewManager creates a task cache manager.
func NewManager(api domain.TaskAPI, tokens TokenSource, clock domain.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		clock:  clock,
		logger: logger,
	}
}

// token returns the current credential or ErrNotAuthenticated. Called before
// every network operation so an unauthenticated call never leaves the process.
func (m *Manager) token() (string, error) {
	tok := m.tokens.Token()
	if tok == "" {
		return "", domain.ErrNotAuthenticated
	}
	return tok, nil
}

// Reset clears the local cache without touching the network. Called the
// instant the session's credential becomes absent.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.tasks = nil
	m.mu.Unlock()
}

// Load fetches the full task set and replaces the local cache wholesale.
// Collection order is the server's response order (newest first).
func (m *Manager) Load(ctx context.Context) ([]*domain.Task, error) {
	tok, err := m.token()
	if err != nil {
		return nil, err
	}

	tasks, err := m.api.List(ctx, tok, domain.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	m.mu.Lock()
	m.tasks = tasks
	m.mu.Unlock()
	return m.Snapshot(), nil
}

// Create validates the draft locally, submits it, and prepends the server's
// echo (with assigned identifier) to the front of the collection. A draft
// failing local validation never reaches the network.
func (m *Manager) Create(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	tok, err := m.token()
	if err != nil {
		return nil, err
	}

	draft.ApplyDefaults()
	if verr := draft.Validate(domain.DateOf(m.clock.Now())); verr != nil {
		return nil, verr
	}

	created, err := m.api.Create(ctx, tok, draft)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	m.mu.Lock()
	m.tasks = append([]*domain.Task{created}, m.tasks...)
	m.mu.Unlock()
	return created.Clone(), nil
}

// Update sends only the set fields of the patch and replaces the matching
// cache entry on success. With racing updates the last response to resolve
// wins. A response for an entry no longer cached is discarded.
func (m *Manager) Update(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	tok, err := m.token()
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	updated, err := m.api.Update(ctx, tok, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	m.replaceLocal(updated)
	return updated.Clone(), nil
}

// Replace validates the draft and sends the full record, replacing the
// matching cache entry on success.
func (m *Manager) Replace(ctx context.Context, id int, draft domain.TaskDraft) (*domain.Task, error) {
	tok, err := m.token()
	if err != nil {
		return nil, err
	}

	draft.ApplyDefaults()
	if verr := draft.Validate(domain.DateOf(m.clock.Now())); verr != nil {
		return nil, verr
	}

	updated, err := m.api.Replace(ctx, tok, id, draft)
	if err != nil {
		return nil, fmt.Errorf("replace task %d: %w", id, err)
	}

	m.replaceLocal(updated)
	return updated.Clone(), nil
}

// Remove deletes the task server-side, then removes the matching cache entry.
// Removing an already-removed id surfaces ErrTaskNotFound; the local state is
// unaffected either way.
func (m *Manager) Remove(ctx context.Context, id int) error {
	tok, err := m.token()
	if err != nil {
		return err
	}

	if err := m.api.Delete(ctx, tok, id); err != nil {
		return fmt.Errorf("remove task %d: %w", id, err)
	}

	m.mu.Lock()
	m.tasks = deleteByID(m.tasks, id)
	m.mu.Unlock()
	return nil
}

// ClearAll deletes every cached task, issuing the deletes concurrently and
// aggregating the results. On any failure the first error is surfaced and the
// cache is resynchronized with a fresh Load, since already-deleted entries
// are not rolled back and server state may have diverged.
func (m *Manager) ClearAll(ctx context.Context) error {
	tok, err := m.token()
	if err != nil {
		return err
	}

	m.mu.Lock()
	ids := make([]int, 0, len(m.tasks))
	for _, t := range m.tasks {
		ids = append(ids, t.ID)
	}
	m.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := m.api.Delete(gctx, tok, id); err != nil {
				return fmt.Errorf("delete task %d: %w", id, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if _, loadErr := m.Load(ctx); loadErr != nil {
			m.logger.Warn("resync after partial clear failed", "error", loadErr)
		}
		return fmt.Errorf("clear tasks: %w", err)
	}

	m.Reset()
	return nil
}

// Query pushes filtering down to the server and returns the results without
// touching the cache. Used when the caller wants the server's view (remote
// search, ordering, pagination) rather than the local mirror.
func (m *Manager) Query(ctx context.Context, opts domain.ListOptions) ([]*domain.Task, error) {
	tok, err := m.token()
	if err != nil {
		return nil, err
	}
	tasks, err := m.api.List(ctx, tok, opts)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// Find is a pure local lookup with no network call, used for edit-form
// pre-population. ok is false when the id is not cached.
func (m *Manager) Find(id int) (*domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return nil, false
}

// Snapshot returns a read-only copy of the collection in cache order.
func (m *Manager) Snapshot() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]*domain.Task, len(m.tasks))
	for i, t := range m.tasks {
		snapshot[i] = t.Clone()
	}
	return snapshot
}

// Visible returns the filtered snapshot of the collection.
func (m *Manager) Visible(filter domain.TaskFilter) []*domain.Task {
	return domain.Visible(m.Snapshot(), filter)
}

// Len returns the number of cached tasks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// replaceLocal swaps the cached entry with the same ID. Responses arriving
// for entries that were removed in the meantime are dropped.
func (m *Manager) replaceLocal(updated *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == updated.ID {
			m.tasks[i] = updated
			return
		}
	}
}

func deleteByID(tasks []*domain.Task, id int) []*domain.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
