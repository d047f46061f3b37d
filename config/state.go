package config

import (
	"sync"

	"github.com/onyx-dot-app/desktop-core/logger"
)

// State is the process-wide handle to the current configuration. It is
// created once at startup and passed to every component that needs config
// access; there is no ambient singleton.
//
// Reads take the shared lock and return a value copy. Updates take the
// exclusive lock, persist through the store, and commit the new value only
// if the save succeeded — so the in-memory value and the on-disk file never
// diverge after a successful update, and concurrent updates serialize.
type State struct {
	mu      sync.RWMutex
	current Config
	store   *Store
}

// NewState loads the configuration through store and wraps it in a State.
func NewState(store *Store) *State {
	return &State{
		current: store.Load(),
		store:   store,
	}
}

// Read returns a copy of the current configuration.
func (s *State) Read() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ServerURL returns the current server URL.
func (s *State) ServerURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ServerURL
}

// WindowTitle returns the current window title.
func (s *State) WindowTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.WindowTitle
}

// Store returns the backing store (for path queries).
func (s *State) Store() *Store {
	return s.store
}

// Update applies f to the current configuration under the exclusive lock.
// If f fails, or persisting the result fails, the prior state is left
// intact in memory and on disk and the error is returned.
func (s *State) Update(f func(Config) (Config, error)) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := f(s.current)
	if err != nil {
		return s.current, err
	}

	if err := s.store.Save(next); err != nil {
		logger.WithComponent("config").Error("failed to save config", "error", err)
		return s.current, err
	}

	s.current = next
	return next, nil
}

// SetServerURL validates, normalizes, persists, and commits a new server
// URL, returning the stored form.
func (s *State) SetServerURL(raw string) (string, error) {
	cfg, err := s.Update(func(cur Config) (Config, error) {
		normalized, err := NormalizeServerURL(raw)
		if err != nil {
			return Config{}, err
		}
		cur.ServerURL = normalized
		return cur, nil
	})
	if err != nil {
		return "", err
	}
	return cfg.ServerURL, nil
}

// Reset restores and persists the default configuration.
func (s *State) Reset() error {
	_, err := s.Update(func(Config) (Config, error) {
		return Default(), nil
	})
	return err
}
