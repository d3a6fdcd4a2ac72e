// Package session owns the authentication state: the bearer credential, the
// resolved identity, and their durable persistence across process restarts.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Manager is the single source of truth for "who is logged in". All writes to
// the credential store go through it; other components only read the
// in-memory projection.
type Manager struct {
	auth   domain.AuthAPI
	store  domain.CredentialStore
	logger *slog.Logger

	mu       sync.Mutex
	state    domain.SessionState
	session  domain.Session
	onChange func(token string)
}

// NewManager creates a session manager. The initial state is Unauthenticated
// until Restore or a login operation succeeds.
func NewManager(auth domain.AuthAPI, store domain.CredentialStore, logger *slog.Logger) *Manager {
	return &Manager{
		auth:   auth,
		store:  store,
		logger: logger,
		state:  domain.StateUnauthenticated,
	}
}

// OnCredentialChange registers a hook invoked after every committed credential
// change. The hook receives the new token, or "" after logout.
func (m *Manager) OnCredentialChange(fn func(token string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// State returns the current authentication state.
func (m *Manager) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active session. ok is false when unauthenticated.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.state == domain.StateAuthenticated
}

// Token returns the active bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.StateAuthenticated {
		return ""
	}
	return m.session.Token
}

// Restore hydrates the session from the durable store. It never touches the
// network: validity of a restored credential is discovered lazily on the
// first failed API call. Returns false when no complete session is stored.
func (m *Manager) Restore() (domain.Session, bool) {
	stored, err := m.store.Load()
	if err != nil {
		m.mu.Lock()
		m.state = domain.StateUnauthenticated
		m.session = domain.Session{}
		m.mu.Unlock()
		return domain.Session{}, false
	}

	m.mu.Lock()
	m.state = domain.StateAuthenticated
	m.session = stored
	m.mu.Unlock()
	return stored, true
}

// Login exchanges the identifier/secret pair for a session. On success the
// identity is fetched with the fresh token before the session is committed;
// if that secondary fetch fails, the identity is derived from the submitted
// identifier instead. Login is never blocked on the profile fetch.
func (m *Manager) Login(ctx context.Context, identifier, secret string) (domain.Session, error) {
	m.setState(domain.StateAuthenticating)

	token, err := m.auth.Authenticate(ctx, identifier, secret)
	if err != nil {
		m.setState(domain.StateUnauthenticated)
		return domain.Session{}, err
	}

	identity, err := m.auth.FetchIdentity(ctx, token)
	if err != nil || identity.IsZero() {
		if err != nil {
			m.logger.Warn("identity fetch failed, deriving from identifier", "error", err)
		}
		identity = domain.Identity{Username: identifier, Email: identifier}
	}

	session := domain.Session{Token: token, Identity: identity}
	if err := m.commit(session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Register creates an account and immediately logs in with the same
// credentials. The auto-login is contractual, not an optimization: callers
// observe an authenticated session after a successful registration.
func (m *Manager) Register(ctx context.Context, name, identifier, secret string) (domain.Session, error) {
	in := domain.RegisterInput{
		Username: identifier,
		Email:    identifier,
		Password: secret,
		Name:     name,
	}
	if err := m.auth.Register(ctx, in); err != nil {
		return domain.Session{}, err
	}
	return m.Login(ctx, identifier, secret)
}

// GoogleLogin exchanges a Google ID token for a session. Unlike Login, the
// server response must carry the identity inline; a response missing either
// the credential or the identity fails with ErrInvalidResponse.
func (m *Manager) GoogleLogin(ctx context.Context, idToken string) (domain.Session, error) {
	m.setState(domain.StateAuthenticating)

	session, err := m.auth.ExchangeGoogleToken(ctx, idToken)
	if err != nil {
		m.setState(domain.StateUnauthenticated)
		return domain.Session{}, err
	}
	if session.Token == "" || session.Identity.IsZero() {
		m.setState(domain.StateUnauthenticated)
		return domain.Session{}, domain.ErrInvalidResponse
	}

	if err := m.commit(session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Logout clears the credential, the identity and the durable store. It never
// fails: a store error is logged and the in-memory state is cleared anyway.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear credential store", "error", err)
	}

	m.mu.Lock()
	m.state = domain.StateUnauthenticated
	m.session = domain.Session{}
	hook := m.onChange
	m.mu.Unlock()

	if hook != nil {
		hook("")
	}
}

// commit stores the session durably, updates in-memory state and fires the
// credential-change hook. The hook runs outside the lock so it may read back
// the manager's state.
func (m *Manager) commit(session domain.Session) error {
	if err := m.store.Save(session); err != nil {
		m.setState(domain.StateUnauthenticated)
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.state = domain.StateAuthenticated
	m.session = session
	hook := m.onChange
	m.mu.Unlock()

	if hook != nil {
		hook(session.Token)
	}
	return nil
}

func (m *Manager) setState(s domain.SessionState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
