package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/rowedit/internal/database"
)

// MaintenanceService houses destructive journal actions surfaced through the CLI.
type MaintenanceService struct {
	DB  *sql.DB
	Log zerolog.Logger
}

// Reset wipes every journaled session. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"journal_entries", "sessions"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	// space is reclaimed best effort; the rows are already gone
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil {
		s.Log.Debug().Err(err).Msg("vacuum failed")
		return nil
	}
	s.Log.Debug().Msg("journal vacuumed")
	return nil
}

// Prune keeps the newest keep sessions and deletes the rest, returning how many
// sessions were removed.
func (s *MaintenanceService) Prune(ctx context.Context, keep int) (int, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	if keep < 0 {
		return 0, fmt.Errorf("maintenance: keep must be >= 0, got %d", keep)
	}
	var removed int
	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		const stale = `SELECT id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT -1 OFFSET ?`
		if _, err := tx.ExecContext(ctx, `DELETE FROM journal_entries WHERE session_id IN (`+stale+`)`, keep); err != nil {
			return fmt.Errorf("prune entries: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id IN (`+stale+`)`, keep)
		if err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = int(n)
		return nil
	})
	return removed, err
}
