package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/rowedit/internal/ordered"
	"github.com/jask/rowedit/internal/service"
	"github.com/jask/rowedit/internal/tui"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the list editor (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), opts)
		},
	}
}

func runEditor(ctx context.Context, opts *rootOptions) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.Close()

	ed := service.NewEditor(ordered.New(e.cfg.List.Seed...), e.editorJournal(), e.log, e.cfg.List.NewItemLabel)
	if err := ed.Begin(ctx, e.cfg.List.Title); err != nil {
		return err
	}
	e.log.Info().Str("session", ed.SessionID).Int("rows", ed.Store.Count()).Msg("editor started")

	app := tui.New(ctx, e.cfg.List, ed)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run editor: %w", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Wait(flushCtx); err != nil {
		e.log.Warn().Err(err).Str("session", ed.SessionID).Msg("journal not flushed")
	}
	e.log.Info().Str("session", ed.SessionID).Strs("items", ed.Store.Items()).Msg("editor closed")
	return nil
}
