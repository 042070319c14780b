// Package prefs persists the single theme preference. It is a
// collaborator from the core's point of view: a write failure is
// logged by the caller and never touches task or inbox state.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Store manages SQLite persistence for preferences.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the preferences database under dir and
// ensures the schema exists.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "prefs.db"))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Theme returns the stored theme, defaulting to light.
func (s *Store) Theme() (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = 'theme'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return v, nil
}

func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES ('theme', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, theme)
	if err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}
