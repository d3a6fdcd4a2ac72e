package domain

import (
	"context"
	"time"
)

// AuthAPI talks to the authentication endpoints of the remote service.
type AuthAPI interface {
	// Authenticate exchanges credentials for a bearer token.
	// Returns ErrInvalidCredentials when the server rejects the pair.
	Authenticate(ctx context.Context, username, password string) (string, error)

	// FetchIdentity resolves the profile of the token's owner.
	FetchIdentity(ctx context.Context, token string) (Identity, error)

	// Register creates a new account. Returns a *ConflictError when the
	// identifier is already taken, a *ValidationError on field errors.
	Register(ctx context.Context, in RegisterInput) error

	// ExchangeGoogleToken trades a Google ID token for a session.
	// Both token and identity must be present in the response.
	ExchangeGoogleToken(ctx context.Context, idToken string) (Session, error)
}

// RegisterInput contains the parameters for account registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string // Optional display name
}

// TaskAPI talks to the task endpoints of the remote service.
// Every call carries the session's bearer token.
type TaskAPI interface {
	// List retrieves the task set, newest-first.
	List(ctx context.Context, token string, opts ListOptions) ([]*Task, error)

	// Create submits a draft and returns the server's echo with assigned ID.
	Create(ctx context.Context, token string, draft TaskDraft) (*Task, error)

	// Update sends only the set fields of the patch (PATCH).
	// Returns ErrTaskNotFound if the identifier is absent server-side.
	Update(ctx context.Context, token string, id int, patch TaskPatch) (*Task, error)

	// Replace sends the full record (PUT).
	Replace(ctx context.Context, token string, id int, draft TaskDraft) (*Task, error)

	// Delete removes a task. Returns ErrTaskNotFound for unknown identifiers.
	Delete(ctx context.Context, token string, id int) error
}

// ListOptions are passed through to the server as query parameters.
// Zero values are omitted.
type ListOptions struct {
	Status   Status
	Priority Priority
	Search   string
	Ordering string
	Page     int
}

// CredentialStore persists the session across process restarts.
// Single-writer discipline: only the session manager commits or clears it.
type CredentialStore interface {
	// Save commits the session durably.
	Save(session Session) error

	// Load reads the stored session. Returns ErrNoSession when no complete
	// session (token plus identity) is stored.
	Load() (Session, error)

	// Clear removes any stored session. Clearing an empty store is a no-op.
	Clear() error
}

// ConfigLoader loads application configuration from files.
type ConfigLoader interface {
	// Load returns the configuration merged over defaults.
	Load() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
