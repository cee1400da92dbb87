// Package session persists browser sessions in sqlite so that logins
// survive a restart. Storage implements fiber.Storage and is plugged
// into the session middleware.
package session

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

// NewStorage opens (or creates) the session database at path.
func NewStorage(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
		k TEXT PRIMARY KEY,
		v BLOB NOT NULL,
		exp INTEGER NOT NULL DEFAULT 0
	)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Get returns the value for key, or nil when the key is missing or
// expired. Expired rows are removed lazily.
func (s *Storage) Get(key string) ([]byte, error) {
	var (
		val []byte
		exp int64
	)
	err := s.db.QueryRow("SELECT v, exp FROM sessions WHERE k = ?", key).Scan(&val, &exp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if exp != 0 && exp <= time.Now().Unix() {
		_, _ = s.db.Exec("DELETE FROM sessions WHERE k = ?", key)
		return nil, nil
	}
	return val, nil
}

// Set stores the value for key. A zero exp means no expiry.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	var expAt int64
	if exp > 0 {
		expAt = time.Now().Add(exp).Unix()
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO sessions (k, v, exp) VALUES (?, ?, ?)", key, val, expAt)
	return err
}

func (s *Storage) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE k = ?", key)
	return err
}

func (s *Storage) Reset() error {
	_, err := s.db.Exec("DELETE FROM sessions")
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}
