// Package session owns the authenticated identity and bearer credential.
// The store is the single writer: login fills it, logout and unauthorized
// responses clear it, and everything else only reads. State is persisted so
// a session survives process restarts until the collaborator rejects it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/stockdeck/stockdeck/internal/domain"
)

const stateFileName = "session.json"

// state is the on-disk shape. Absence of the file means "logged out".
type state struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Token string      `json:"token"`
}

// Store holds the active identity and credential.
type Store struct {
	path string

	mu       sync.RWMutex
	identity domain.Identity
	token    string
	signedIn bool
}

// NewStore creates a store persisting under the given home directory. Call
// Restore to pick up a session left by a previous run.
func NewStore(home string) *Store {
	return &Store{path: filepath.Join(home, stateFileName)}
}

// Path returns the file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Restore loads persisted state if present. A missing file is not an error;
// it simply leaves the store signed out. A corrupt file is discarded so the
// user can log in again.
func (s *Store) Restore() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("session: read %s: %w", s.path, err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		_ = os.Remove(s.path)
		return nil
	}
	if st.Token == "" || !st.Role.Valid() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = domain.Identity{Name: st.Name, Email: st.Email, Role: st.Role}
	s.token = st.Token
	s.signedIn = true
	return nil
}

// SignIn records the identity and credential and persists them.
func (s *Store) SignIn(id domain.Identity, token string) error {
	if token == "" {
		return fmt.Errorf("session: token is required")
	}
	if !id.Role.Valid() {
		return fmt.Errorf("session: identity role %q is not valid", id.Role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
	s.token = token
	s.signedIn = true
	return s.persist()
}

// Clear discards the identity and credential and removes the persisted file.
// Used on logout and whenever the collaborator answers unauthorized.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = domain.Identity{}
	s.token = ""
	s.signedIn = false
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}

// Token returns the active bearer credential, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the active identity and whether one is present.
func (s *Store) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.signedIn
}

// SignedIn reports whether a credential is held.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session: ensure dir: %w", err)
	}
	encoded, err := json.MarshalIndent(state{
		Name:  s.identity.Name,
		Email: s.identity.Email,
		Role:  s.identity.Role,
		Token: s.token,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode state: %w", err)
	}
	if err := os.WriteFile(s.path, append(encoded, '\n'), 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}
