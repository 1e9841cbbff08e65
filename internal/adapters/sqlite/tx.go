package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"f2yaml/internal/domain"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn in a transaction, rolling back on error
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func saveSession(ctx context.Context, db execer, sess *domain.Session) error {
	var segmentStart string
	if !sess.Timer.SegmentStart.IsZero() {
		segmentStart = sess.Timer.SegmentStart.Format(time.RFC3339Nano)
	}

	_, err := db.ExecContext(ctx, `
		UPDATE session SET
			sr_code = ?, sr_doc = ?, active_link = ?, entry_start = ?,
			timer_state = ?, segment_start = ?, accumulated_ms = ?
		WHERE id = 1
	`, sess.SRCode, sess.SRDocPath, sess.ActiveLink, sess.EntryStart,
		int(sess.Timer.State), segmentStart, sess.Timer.Accumulated.Milliseconds())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func recordEntry(ctx context.Context, db execer, e *domain.TimeEntry) error {
	res, err := db.ExecContext(ctx, `
		INSERT INTO time_entries (link, sr_code, started_at, stopped_at, minutes)
		VALUES (?, ?, ?, ?, ?)
	`, e.Link, e.SRCode, e.StartedAt.Format(time.RFC3339), e.StoppedAt.Format(time.RFC3339), e.Minutes)
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}
