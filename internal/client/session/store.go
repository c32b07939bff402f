// Package session holds the client's authenticated state.
//
// A Store starts logged out. LoadFromStorage restores a previously persisted
// session without checking the token's expiry: a stale token only surfaces
// when the server rejects it, and the caller is expected to Logout then.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Persisted keys.
const (
	KeyUser   = "user"
	KeyEditID = "editId"
)

// State is the in-memory session.
type State struct {
	LoggedIn bool
	UserID   string
	Role     string
	Token    string
}

// Payload is what Login persists under KeyUser.
type Payload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// Store is the session state of one client process. Writes from separate
// processes sharing the same Storage are last-writer-wins.
type Store struct {
	mu      sync.Mutex
	storage Storage
	state   State
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Login sets the logged-in state and persists p.
func (s *Store) Login(p Payload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{LoggedIn: true, UserID: p.UserID, Role: p.Role, Token: p.Token}
	if err := s.storage.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout resets the state and removes the persisted session and edit marker.
// The in-memory state is cleared and both keys are attempted even when
// storage fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	var errs []error
	if err := s.storage.Remove(KeyUser); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}
	if err := s.storage.Remove(KeyEditID); err != nil {
		errs = append(errs, fmt.Errorf("clear edit target: %w", err))
	}
	return errors.Join(errs...)
}

// LoadFromStorage restores the persisted session. An absent or undecodable
// value leaves the store logged out; only a storage read failure is an error.
func (s *Store) LoadFromStorage() error {
	raw, ok, err := s.storage.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	if !ok {
		return nil
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.Token == "" {
		return nil
	}
	s.state = State{LoggedIn: true, UserID: p.UserID, Role: p.Role, Token: p.Token}
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// SetEditTarget records the listing currently being edited.
func (s *Store) SetEditTarget(id string) error {
	return s.storage.Set(KeyEditID, id)
}

func (s *Store) EditTarget() (string, bool, error) {
	return s.storage.Get(KeyEditID)
}

func (s *Store) ClearEditTarget() error {
	return s.storage.Remove(KeyEditID)
}
