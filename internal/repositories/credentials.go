package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// CredentialStore implements [Store] over the credentials table in SQLite.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a new [CredentialStore] with the given database connection
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Get retrieves the value stored under key.
func (s *CredentialStore) Get(key string) (string, error) {
	query := `SELECT value FROM credentials WHERE key = ?`

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential: %w", err)
	}

	return value, nil
}

// Set inserts or replaces the value stored under key.
func (s *CredentialStore) Set(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not an error.
func (s *CredentialStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	return nil
}
