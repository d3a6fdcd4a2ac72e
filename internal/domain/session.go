package domain

// Identity is the resolved profile of the authenticated user.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"` // Display name, may be empty
}

// IsZero returns true if the identity has not been resolved.
func (i Identity) IsZero() bool {
	return i.Username == "" && i.Email == ""
}

// DisplayName returns the best available human-readable name.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Username != "" {
		return i.Username
	}
	return i.Email
}

// Session pairs a bearer credential with the identity it authenticates.
// A stored session is restorable only when both parts are present.
type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"user"`
}

// SessionState is the authentication lifecycle state.
type SessionState int

const (
	StateUnauthenticated SessionState = iota // No credential
	StateAuthenticating                      // Login/register/federated exchange in flight
	StateAuthenticated                       // Credential (and identity) committed
)

// String returns the string representation of the state.
func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
