// Package directory is the operational data layer: the places, people,
// trapping requests, cats and clinic appointments the assistant's tools
// read, plus the tables those tools write (reminders, staff messages,
// saved lookups, journal entries).
//
// It also hosts the two resolution heuristics the tools lean on: fuzzy
// entity resolution (resolver.go) and colloquial region expansion
// (regions.go).
package directory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the directory database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the directory database at path and
// ensures the schema exists. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragma: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for seeding and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

var nonDigits = regexp.MustCompile(`\D+`)

// NormalizePhone reduces a phone number to bare digits, dropping a leading
// US country code on 11-digit numbers. Mirrors the intake pipeline's
// normalization so stored and queried numbers compare equal.
func NormalizePhone(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}

var spaceRun = regexp.MustCompile(`\s+`)

// normalizeText lowercases and collapses whitespace for matching.
func normalizeText(s string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}
