// Package store persists the progression tables as JSON documents under the
// data directory. A table is a whole file; every save is a full rewrite.
// Callers own the policy for load failures.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ascent/internal/logging"
)

// Store reads and writes named JSON tables in a single directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk location of a table.
func (s *Store) Path(table string) string {
	return filepath.Join(s.dir, table+".json")
}

// Load decodes the named table into out. A missing table surfaces the
// underlying fs.ErrNotExist so callers can distinguish first run from a
// corrupt file.
func (s *Store) Load(table string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(table))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse table %s: %w", table, err)
	}

	logging.StoreDebug("Loaded table %s (%d bytes)", table, len(data))
	return nil
}

// Save rewrites the named table. The bytes go to a temp file first and are
// renamed into place, so a crash mid-save leaves the previous table intact.
func (s *Store) Save(table string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table %s: %w", table, err)
	}

	tmp := s.Path(table) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}
	if err := os.Rename(tmp, s.Path(table)); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", table, err)
	}

	logging.StoreDebug("Saved table %s (%d bytes)", table, len(data))
	return nil
}
