package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"f2yaml/internal/domain"
	"f2yaml/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store implements ports.SessionStore using SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements SessionStore
var _ ports.SessionStore = (*Store)(nil)

// Open opens (or creates) the state database at dbPath
func Open(dbPath string) (*Store, error) {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory store for tests
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			sr_code TEXT NOT NULL DEFAULT '',
			sr_doc TEXT NOT NULL DEFAULT '',
			active_link TEXT NOT NULL DEFAULT '',
			entry_start TEXT NOT NULL DEFAULT '',
			timer_state INTEGER NOT NULL DEFAULT 0,
			segment_start TEXT NOT NULL DEFAULT '',
			accumulated_ms INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO session (id) VALUES (1);
		CREATE TABLE IF NOT EXISTS time_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			link TEXT NOT NULL,
			sr_code TEXT NOT NULL,
			started_at TEXT NOT NULL,
			stopped_at TEXT NOT NULL,
			minutes INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_time_entries_stopped ON time_entries(stopped_at);
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// LoadSession returns the persisted session
func (s *Store) LoadSession(ctx context.Context) (*domain.Session, error) {
	var (
		sess         domain.Session
		state        int
		segmentStart string
		accumulated  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT sr_code, sr_doc, active_link, entry_start, timer_state, segment_start, accumulated_ms
		FROM session WHERE id = 1
	`).Scan(&sess.SRCode, &sess.SRDocPath, &sess.ActiveLink, &sess.EntryStart, &state, &segmentStart, &accumulated)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess.Timer.State = domain.TimerState(state)
	sess.Timer.Accumulated = time.Duration(accumulated) * time.Millisecond
	if segmentStart != "" {
		t, err := time.Parse(time.RFC3339Nano, segmentStart)
		if err != nil {
			return nil, fmt.Errorf("load session: bad segment start %q: %w", segmentStart, err)
		}
		sess.Timer.SegmentStart = t
	}
	return &sess, nil
}

// SaveSession persists the session
func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	return saveSession(ctx, s.db, sess)
}

// FinishEntry saves the session and records the entry in one transaction
func (s *Store) FinishEntry(ctx context.Context, sess *domain.Session, e *domain.TimeEntry) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := saveSession(ctx, tx, sess); err != nil {
			return err
		}
		return recordEntry(ctx, tx, e)
	})
}

// ListEntries returns the most recent runs, newest first
func (s *Store) ListEntries(ctx context.Context, limit int) ([]domain.TimeEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, link, sr_code, started_at, stopped_at, minutes
		FROM time_entries ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		var (
			e                domain.TimeEntry
			started, stopped string
		)
		if err := rows.Scan(&e.ID, &e.Link, &e.SRCode, &started, &stopped, &e.Minutes); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.StartedAt, _ = time.Parse(time.RFC3339, started)
		e.StoppedAt, _ = time.Parse(time.RFC3339, stopped)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
