// Package credential persists the user-supplied API key for cloud models.
// It is a convenience store, not a security boundary: the value is kept in
// clear text with no expiry, mirroring the browser client it replaces.
package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

// storageKey is the settings row under which the API key is stored.
const storageKey = "llm_api_key"

// Store holds the cloud API key in memory and in the settings table.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	cached string
}

// NewStore creates a Store over an opened database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Set writes the credential to both the in-memory cache and the settings
// table so it survives restarts.
func (s *Store) Set(ctx context.Context, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, storageKey, value); err != nil {
		return fmt.Errorf("could not persist credential: %w", err)
	}

	s.mu.Lock()
	s.cached = value
	s.mu.Unlock()
	return nil
}

// Get reads the credential from persistent storage. A missing row is an
// empty credential, not an error.
func (s *Store) Get(ctx context.Context) (string, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", storageKey)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("could not read credential: %w", err)
	}

	s.mu.Lock()
	s.cached = value
	s.mu.Unlock()
	return value, nil
}

// Cached returns the last value seen by Set or Get without touching the
// database. Used by the CLI to display key status.
func (s *Store) Cached() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}
