// Package session persists session history in SQLite: one session per
// user per calendar day, with the interactions logged inside it. The
// engine never reads this data; it feeds greetings and the history
// listing in the CLI.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ascent/internal/logging"
)

// Store wraps the session history database.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Interaction is one recorded exchange within a session.
type Interaction struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStore opens (or creates) the SQLite database at the given path.
func NewStore(path string) (*Store, error) {
	logging.Session("Opening session store at %s", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.SessionDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.SessionDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	// synchronous=NORMAL is safe with WAL and much faster than FULL
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.SessionDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.SessionDebug("Session store schema ready")
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, day)
	);
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		summary TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSession returns the session ID for the user's current calendar
// day, creating the row on first use. INSERT OR IGNORE keeps creation
// idempotent across concurrent callers.
func (s *Store) EnsureSession(userID string, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ensureSessionLocked(userID, now)
}

func (s *Store) ensureSessionLocked(userID string, now time.Time) (string, error) {
	day := now.Format("2006-01-02")
	id := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO sessions (id, user_id, day, started_at) VALUES (?, ?, ?, ?)`,
		id, userID, day, now.UTC(),
	)
	if err != nil {
		logging.SessionError("Failed to ensure session for %s: %v", userID, err)
		return "", err
	}

	var existing string
	err = s.db.QueryRow(
		`SELECT id FROM sessions WHERE user_id = ? AND day = ?`, userID, day,
	).Scan(&existing)
	if err != nil {
		return "", err
	}

	logging.SessionDebug("Session for %s on %s: %s", userID, day, existing)
	return existing, nil
}

// RecordInteraction logs one exchange under the user's current daily
// session.
func (s *Store) RecordInteraction(userID, kind, summary string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID, err := s.ensureSessionLocked(userID, now)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO interactions (session_id, user_id, kind, summary, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, userID, kind, summary, now.UTC(),
	)
	if err != nil {
		logging.SessionError("Failed to record interaction for %s: %v", userID, err)
		return err
	}

	logging.SessionDebug("Recorded %s interaction for %s", kind, userID)
	return nil
}

// RecentInteractions returns the user's interactions, newest first.
func (s *Store) RecentInteractions(userID string, limit int) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT session_id, user_id, kind, summary, created_at
		 FROM interactions
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		logging.SessionError("Failed to query interactions for %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.SessionID, &in.UserID, &in.Kind, &in.Summary, &in.CreatedAt); err != nil {
			continue
		}
		out = append(out, in)
	}

	logging.SessionDebug("Retrieved %d interactions for %s", len(out), userID)
	return out, rows.Err()
}

// LastSeen returns the timestamp of the user's most recent interaction.
// ok is false when the user has no history yet.
func (s *Store) LastSeen(userID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ts time.Time
	err := s.db.QueryRow(
		`SELECT created_at FROM interactions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID,
	).Scan(&ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return ts, true, nil
}
