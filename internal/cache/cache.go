// Package cache persists resolved BibTeX entries in a local SQLite
// database keyed by the preprocessed identifier, so repeated lookups of
// the same identifier skip the network.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is a cached resolution.
type Entry struct {
	Identifier string
	Kind       string
	BibTeX     string
	ResolvedAt time.Time
}

// Cache wraps a SQLite resolution cache.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path, creating
// parent directories as needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS resolutions (
			identifier TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			bibtex TEXT NOT NULL,
			resolved_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached entry for an identifier. ok is false on a miss.
func (c *Cache) Get(identifier string) (entry Entry, ok bool, err error) {
	row := c.db.QueryRow(
		`SELECT identifier, kind, bibtex, resolved_at FROM resolutions WHERE identifier = ?`,
		identifier,
	)

	var resolvedAt int64
	err = row.Scan(&entry.Identifier, &entry.Kind, &entry.BibTeX, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache entry: %w", err)
	}
	entry.ResolvedAt = time.Unix(resolvedAt, 0)
	return entry, true, nil
}

// Put stores or replaces the cached entry for an identifier.
func (c *Cache) Put(entry Entry) error {
	resolvedAt := entry.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now()
	}
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO resolutions (identifier, kind, bibtex, resolved_at)
		 VALUES (?, ?, ?, ?)`,
		entry.Identifier, entry.Kind, entry.BibTeX, resolvedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes the cached entry for an identifier, if present.
func (c *Cache) Delete(identifier string) error {
	if _, err := c.db.Exec(`DELETE FROM resolutions WHERE identifier = ?`, identifier); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM resolutions`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
