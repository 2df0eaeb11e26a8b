// Package storage is a flat key -> JSON string store kept in the shared SQLite
// database. It plays the role browser local storage played for the storefront:
// whole values are rewritten on every change and read back on every load.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const Schema = `
CREATE TABLE IF NOT EXISTS kv(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL
);`

type KV struct{ db *sqlx.DB }

func NewKV(db *sqlx.DB) *KV { return &KV{db: db} }

// Get returns the raw value and whether the key exists.
func (s *KV) Get(key string) (string, bool, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *KV) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}

func (s *KV) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// GetJSON decodes the value under key into dst. It reports false when the key
// is absent; a value that does not decode is returned as an error.
func (s *KV) GetJSON(key string, dst any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, &CorruptError{Key: key, Err: err}
	}
	return true, nil
}

func (s *KV) SetJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(b))
}

// CorruptError reports a stored value that is no longer valid JSON for its shape.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return "storage: corrupt value for " + e.Key + ": " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }
