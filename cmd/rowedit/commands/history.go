package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jask/rowedit/internal/database/repository"
	"github.com/jask/rowedit/internal/service"
)

type historyOptions struct {
	session  string
	limit    int
	sessions bool
	prune    int
	reset    bool
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	h := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled gestures",
		Long: `history prints the gestures of one session, by default the latest.

--sessions lists all sessions. --prune N keeps the newest N sessions and
--reset deletes the whole journal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()
			if e.journal == nil {
				return errors.New("journal disabled (journal.path is empty)")
			}
			return runHistory(cmd, e, h)
		},
	}

	cmd.Flags().StringVar(&h.session, "session", "", "session ID (default latest)")
	cmd.Flags().IntVar(&h.limit, "limit", 0, "maximum entries to print (0 = all)")
	cmd.Flags().BoolVar(&h.sessions, "sessions", false, "list sessions instead of entries")
	cmd.Flags().IntVar(&h.prune, "prune", -1, "keep only the newest N sessions")
	cmd.Flags().BoolVar(&h.reset, "reset", false, "delete every journaled session")
	cmd.MarkFlagsMutuallyExclusive("sessions", "prune", "reset", "session")

	return cmd
}

func runHistory(cmd *cobra.Command, e *env, h *historyOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	maint := &service.MaintenanceService{DB: e.db, Log: e.log}

	switch {
	case h.reset:
		if err := maint.Reset(ctx); err != nil {
			return err
		}
		e.log.Warn().Msg("journal reset")
		_, err := fmt.Fprintln(out, "journal cleared")
		return err
	case h.prune >= 0:
		n, err := maint.Prune(ctx, h.prune)
		if err != nil {
			return err
		}
		e.log.Info().Int("removed", n).Int("kept", h.prune).Msg("journal pruned")
		_, err = fmt.Fprintf(out, "removed %d sessions\n", n)
		return err
	case h.sessions:
		list, err := e.journal.Sessions(ctx)
		if err != nil {
			return err
		}
		return writeSessions(out, list)
	}

	id := h.session
	if id == "" {
		latest, err := e.journal.LatestSession(ctx)
		if err != nil {
			return err
		}
		if latest == nil {
			_, err := fmt.Fprintln(out, "no sessions")
			return err
		}
		id = latest.ID
	}
	entries, err := e.journal.ListSession(ctx, id, h.limit)
	if err != nil {
		return err
	}
	return writeEntries(out, id, entries)
}

func writeSessions(w io.Writer, sessions []repository.Session) error {
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w, "%s  %s  %-20s  %d rows  %d entries\n",
			s.ID, s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Title, s.SeedCount, s.Entries); err != nil {
			return err
		}
	}
	return nil
}

func writeEntries(w io.Writer, sessionID string, entries []repository.Entry) error {
	if _, err := fmt.Fprintf(w, "session %s\n", sessionID); err != nil {
		return err
	}
	for _, en := range entries {
		pos := fmt.Sprintf("%d", en.Index)
		if en.Gesture == string(service.GestureMove) {
			pos = fmt.Sprintf("%d->%d", en.Index, en.To)
		}
		if _, err := fmt.Fprintf(w, "  %d %s %s %s\n", en.Seq, en.Gesture, pos, en.Item); err != nil {
			return err
		}
	}
	return nil
}
