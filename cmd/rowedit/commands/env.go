package commands

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/jask/rowedit/internal/config"
	"github.com/jask/rowedit/internal/database"
	"github.com/jask/rowedit/internal/database/repository"
	"github.com/jask/rowedit/internal/logging"
	"github.com/jask/rowedit/internal/service"
)

// env is what every command needs: config, a logger and the optional journal.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	db      *sql.DB
	journal *repository.JournalRepo

	logCloser io.Closer
}

func setup(opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	e := &env{cfg: cfg, log: log, logCloser: closer}

	if cfg.Journal.Path != "" {
		db, err := database.OpenMigrated(cfg.Journal.Path)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		e.db = db
		e.journal = repository.NewJournalRepo(db)
	}
	log.Debug().Str("journal", cfg.Journal.Path).Int("seed", len(cfg.List.Seed)).Msg("configured")
	return e, nil
}

// editorJournal returns the journal as a service.Journal, nil when disabled.
func (e *env) editorJournal() service.Journal {
	if e.journal == nil {
		return nil
	}
	return e.journal
}

func (e *env) Close() error {
	if e.db != nil {
		_ = e.db.Close()
	}
	return e.logCloser.Close()
}
