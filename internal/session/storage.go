package session

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Durable storage keys. The string "undefined" shows up in stores written by
// earlier console builds and must read as absent, never as a value.
const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyPermissions = "permissions"
)

// Storage is the durable key/value store backing the session: token, user
// and permissions survive restarts here.
type Storage struct {
	db *sql.DB
}

// OpenStorage opens (creating if needed) the sqlite file at path.
func OpenStorage(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session_store (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// Get returns the stored value, or "" when the key is absent or holds one of
// the junk markers.
func (s *Storage) Get(key string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return ""
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return ""
	}
	return value
}

func (s *Storage) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Clear removes the given keys; missing keys are not an error.
func (s *Storage) Clear(keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM session_store WHERE key = ?`, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Storage) Close() error {
	return s.db.Close()
}
