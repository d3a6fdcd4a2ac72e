// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockAuthAPI is a test double for domain.AuthAPI.
type MockAuthAPI struct {
	Token    string
	Identity domain.Identity
	Google   domain.Session

	AuthErr     error
	IdentityErr error
	RegisterErr error
	GoogleErr   error

	Registered []domain.RegisterInput
	AuthCalls  int
}

// Authenticate exchanges credentials for the configured token.
func (m *MockAuthAPI) Authenticate(_ context.Context, _, _ string) (string, error) {
	m.AuthCalls++
	if m.AuthErr != nil {
		return "", m.AuthErr
	}
	return m.Token, nil
}

// FetchIdentity returns the configured identity.
func (m *MockAuthAPI) FetchIdentity(_ context.Context, _ string) (domain.Identity, error) {
	if m.IdentityErr != nil {
		return domain.Identity{}, m.IdentityErr
	}
	return m.Identity, nil
}

// Register records the registration input.
func (m *MockAuthAPI) Register(_ context.Context, in domain.RegisterInput) error {
	if m.RegisterErr != nil {
		return m.RegisterErr
	}
	m.Registered = append(m.Registered, in)
	return nil
}

// ExchangeGoogleToken returns the configured session.
func (m *MockAuthAPI) ExchangeGoogleToken(_ context.Context, _ string) (domain.Session, error) {
	if m.GoogleErr != nil {
		return domain.Session{}, m.GoogleErr
	}
	return m.Google, nil
}

// MockTaskAPI is an in-memory test double for domain.TaskAPI. It assigns IDs
// like the real service and lists newest-first.
type MockTaskAPI struct {
	mu     sync.Mutex
	Tasks  map[int]*domain.Task
	NextID int
	Calls  int

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr map[int]error
}

// NewMockTaskAPI creates a MockTaskAPI with initialized maps.
func NewMockTaskAPI() *MockTaskAPI {
	return &MockTaskAPI{
		Tasks:     make(map[int]*domain.Task),
		NextID:    1,
		DeleteErr: make(map[int]error),
	}
}

// Seed adds a task directly, bypassing the API surface.
func (m *MockTaskAPI) Seed(t *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks[t.ID] = t
	if t.ID >= m.NextID {
		m.NextID = t.ID + 1
	}
}

// CallCount returns how many API calls were made.
func (m *MockTaskAPI) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// List returns all tasks newest-first.
func (m *MockTaskAPI) List(_ context.Context, _ string, _ domain.ListOptions) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Task, 0, len(m.Tasks))
	for id := m.NextID - 1; id >= 1; id-- {
		if t, ok := m.Tasks[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

// Create stores the draft under a fresh ID and echoes it back.
func (m *MockTaskAPI) Create(_ context.Context, _ string, draft domain.TaskDraft) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	task := &domain.Task{
		ID:          m.NextID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      draft.Status,
	}
	m.Tasks[task.ID] = task
	m.NextID++
	return task.Clone(), nil
}

// Update applies the set patch fields.
func (m *MockTaskAPI) Update(_ context.Context, _ string, id int, patch domain.TaskPatch) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	return task.Clone(), nil
}

// Replace swaps the full record.
func (m *MockTaskAPI) Replace(_ context.Context, _ string, id int, draft domain.TaskDraft) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if _, ok := m.Tasks[id]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	task := &domain.Task{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      draft.Status,
	}
	m.Tasks[id] = task
	return task.Clone(), nil
}

// Delete removes a task, honoring per-ID configured failures.
func (m *MockTaskAPI) Delete(_ context.Context, _ string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if err := m.DeleteErr[id]; err != nil {
		return err
	}
	if _, ok := m.Tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// MockCredentialStore is an in-memory test double for domain.CredentialStore.
type MockCredentialStore struct {
	Session  *domain.Session
	SaveErr  error
	ClearErr error
}

// Save stores the session in memory.
func (m *MockCredentialStore) Save(s domain.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Session = &s
	return nil
}

// Load returns the stored session or domain.ErrNoSession.
func (m *MockCredentialStore) Load() (domain.Session, error) {
	if m.Session == nil {
		return domain.Session{}, domain.ErrNoSession
	}
	return *m.Session, nil
}

// Clear drops the stored session.
func (m *MockCredentialStore) Clear() error {
	m.Session = nil
	return m.ClearErr
}
