package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/rowedit/internal/database"
	"github.com/jask/rowedit/internal/database/repository"
	"github.com/jask/rowedit/internal/ordered"
)

type memJournal struct {
	sessions []repository.Session
	entries  []repository.Entry
	err      error
}

func (j *memJournal) StartSession(_ context.Context, s repository.Session) error {
	j.sessions = append(j.sessions, s)
	return nil
}

func (j *memJournal) Append(_ context.Context, e repository.Entry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, e)
	return nil
}

func newTestEditor(journal Journal, seed ...string) (*EditorService, *bytes.Buffer) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	return NewEditor(ordered.New(seed...), journal, log, "new row"), &buf
}

func TestEditorGestures(t *testing.T) {
	t.Parallel()

	ed, logs := newTestEditor(nil, "A", "B", "C", "D")

	ev, err := ed.Select(1)
	require.NoError(t, err)
	require.Equal(t, Event{Seq: 1, Gesture: GestureSelect, Index: 1, To: 1, Item: "B", At: ev.At}, ev)
	require.Equal(t, []string{"A", "B", "C", "D"}, ed.Store.Items())

	ev, err = ed.Move(3, 0)
	require.NoError(t, err)
	require.Equal(t, GestureMove, ev.Gesture)
	require.Equal(t, "D", ev.Item)
	require.Equal(t, []string{"D", "A", "B", "C"}, ed.Store.Items())

	ev, err = ed.Delete(1)
	require.NoError(t, err)
	require.Equal(t, "A", ev.Item)
	require.Equal(t, []string{"D", "B", "C"}, ed.Store.Items())

	ev, err = ed.Add("")
	require.NoError(t, err)
	require.Equal(t, "new row", ev.Item)
	require.Equal(t, 4, ev.Seq)

	_, err = ed.Add("X")
	require.NoError(t, err)
	require.Equal(t, []string{"X", "new row", "D", "B", "C"}, ed.Store.Items())

	require.Contains(t, logs.String(), `"message":"selected"`)
	require.Contains(t, logs.String(), `"message":"deleted"`)
	require.Contains(t, logs.String(), `"component":"editor"`)
}

func TestEditorOutOfRangeDoesNotAdvance(t *testing.T) {
	t.Parallel()

	ed, _ := newTestEditor(nil, "A", "B")

	_, err := ed.Delete(2)
	require.ErrorIs(t, err, ordered.ErrIndexOutOfRange)
	_, err = ed.Move(-1, 0)
	require.ErrorIs(t, err, ordered.ErrIndexOutOfRange)
	_, err = ed.Select(5)
	require.ErrorIs(t, err, ordered.ErrIndexOutOfRange)
	require.Equal(t, []string{"A", "B"}, ed.Store.Items())

	ev, err := ed.Select(0)
	require.NoError(t, err)
	require.Equal(t, 1, ev.Seq)
}

func TestEditorRecord(t *testing.T) {
	t.Parallel()

	j := &memJournal{}
	ed, _ := newTestEditor(j, "A", "B", "C")
	require.NoError(t, ed.Begin(context.Background(), "title"))
	require.Len(t, j.sessions, 1)
	require.Equal(t, ed.SessionID, j.sessions[0].ID)
	require.Equal(t, 3, j.sessions[0].SeedCount)

	ev, err := ed.Move(0, 2)
	require.NoError(t, err)
	require.NoError(t, ed.Record(context.Background(), ev))
	require.Len(t, j.entries, 1)
	require.Equal(t, repository.Entry{
		ID: j.entries[0].ID, SessionID: ed.SessionID, Seq: 1, Gesture: "move",
		Index: 0, To: 2, Item: "A", CreatedAt: ev.At,
	}, j.entries[0])

	j.err = errors.New("disk full")
	err = ed.Record(context.Background(), ev)
	require.ErrorContains(t, err, "disk full")
}

func TestEditorRecordWithoutJournal(t *testing.T) {
	t.Parallel()

	ed, _ := newTestEditor(nil, "A")
	require.NoError(t, ed.Begin(context.Background(), "t"))
	ev, err := ed.Add("B")
	require.NoError(t, err)
	require.NoError(t, ed.Record(context.Background(), ev))
}

func TestEditorJournalsToSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewJournalRepo(db)

	ed, _ := newTestEditor(repo, "A", "B", "C", "D")
	require.NoError(t, ed.Begin(ctx, "sqlite"))
	for _, step := range []func() (Event, error){
		func() (Event, error) { return ed.Add("X") },
		func() (Event, error) { return ed.Move(0, 4) },
		func() (Event, error) { return ed.Delete(0) },
	} {
		ev, err := step()
		require.NoError(t, err)
		require.NoError(t, ed.Record(ctx, ev))
	}

	entries, err := repo.ListSession(ctx, ed.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "add", entries[0].Gesture)
	require.Equal(t, "move", entries[1].Gesture)
	require.Equal(t, 4, entries[1].To)
	require.Equal(t, "delete", entries[2].Gesture)
	require.Equal(t, "A", entries[2].Item)

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))
	sessions, err := repo.Sessions(ctx)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestMaintenancePrune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewJournalRepo(db)

	var ids []string
	for i := 0; i < 3; i++ {
		ed, _ := newTestEditor(repo, "A")
		require.NoError(t, ed.Begin(ctx, "s"))
		ev, err := ed.Add("")
		require.NoError(t, err)
		require.NoError(t, ed.Record(ctx, ev))
		ids = append(ids, ed.SessionID)
	}

	m := &MaintenanceService{DB: db}
	removed, err := m.Prune(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	sessions, err := repo.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, ids[2], sessions[0].ID)

	_, err = m.Prune(ctx, -1)
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Parallel()

	ed, _ := newTestEditor(nil, "apple", "banana", "grape", "Pineapple")

	cases := []struct {
		query string
		want  int
	}{
		{"banana", 1},
		{"BANAN", 1},
		{"grap", 2},
		{"apple", 0},
		{"pine", 3},
		{"bnana", 1},
	}
	for _, tc := range cases {
		got, ok := ed.Find(tc.query)
		require.True(t, ok, tc.query)
		require.Equal(t, tc.want, got, tc.query)
	}

	_, ok := ed.Find("  ")
	require.False(t, ok)

	empty, _ := newTestEditor(nil)
	_, ok = empty.Find("a")
	require.False(t, ok)
}

func TestMaintenanceResetLogsVacuum(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var buf bytes.Buffer
	m := &MaintenanceService{DB: db, Log: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	require.NoError(t, m.Reset(ctx))
	require.Contains(t, buf.String(), `"message":"journal vacuumed"`)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	buf.Reset()
	require.Error(t, m.Reset(cancelled))
	require.NotContains(t, buf.String(), "vacuumed")
}
