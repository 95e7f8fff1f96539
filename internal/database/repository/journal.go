package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// JournalRepo records editing sessions and their gestures.
type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) StartSession(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, title, seed_count, started_at)
	VALUES (?, ?, ?, ?)
	`, s.ID, s.Title, s.SeedCount, s.StartedAt)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

func (r *JournalRepo) Append(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO journal_entries(id, session_id, seq, gesture, idx, to_idx, item, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.SessionID, e.Seq, e.Gesture, e.Index, e.To, e.Item, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append entry %d: %w", e.Seq, err)
	}
	return nil
}

// ListSession returns a session's entries in gesture order. limit <= 0 returns all.
func (r *JournalRepo) ListSession(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	q := `SELECT id, session_id, seq, gesture, idx, to_idx, item, created_at
	FROM journal_entries WHERE session_id = ? ORDER BY seq`
	args := []any{sessionID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Gesture, &e.Index, &e.To, &e.Item, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestSession returns the most recently started session, or nil when there is none.
func (r *JournalRepo) LatestSession(ctx context.Context) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, seed_count, started_at FROM sessions
	ORDER BY started_at DESC, rowid DESC LIMIT 1
	`)
	var s Session
	if err := row.Scan(&s.ID, &s.Title, &s.SeedCount, &s.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Sessions lists sessions newest first.
func (r *JournalRepo) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.id, s.title, s.seed_count, s.started_at, COUNT(e.id)
	FROM sessions s LEFT JOIN journal_entries e ON e.session_id = s.id
	GROUP BY s.id
	ORDER BY s.started_at DESC, s.rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Title, &s.SeedCount, &s.StartedAt, &s.Entries); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
