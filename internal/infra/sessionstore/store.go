// Package sessionstore persists the session (bearer token plus identity) as
// a JSON file, the durable equivalent of the browser's local storage.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Ensure Store implements domain.CredentialStore.
var _ domain.CredentialStore = (*Store)(nil)

// FileName is the session file name within the data directory.
const FileName = "session.json"

// Store implements domain.CredentialStore using a JSON file. Token and
// identity are stored together and are only restorable together.
type Store struct {
	path string
}

// New creates a Store for the given file path. The file does not need to
// exist; it is created on first save.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session file location under the user data
// directory (XDG_DATA_HOME or ~/.local/share).
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "taskdeck", FileName)
}

// Save commits the session durably. The write is atomic: a temp file is
// written and renamed over the previous one.
func (s *Store) Save(session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Load reads the stored session. A missing file, an unreadable file, or a
// file missing either the token or the identity all report ErrNoSession:
// a half-written session is never restored.
func (s *Store) Load() (domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.Session{}, domain.ErrNoSession
	}
	if session.Token == "" || session.Identity.IsZero() {
		return domain.Session{}, domain.ErrNoSession
	}
	return session, nil
}

// Clear removes the stored session. Clearing an absent file is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
