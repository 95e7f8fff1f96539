package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/rowedit/internal/database"
	"github.com/jask/rowedit/internal/database/repository"
	"github.com/jask/rowedit/internal/ordered"
)

// Gesture names a user action on the list.
type Gesture string

const (
	GestureSelect Gesture = "select"
	GestureDelete Gesture = "delete"
	GestureAdd    Gesture = "add"
	GestureMove   Gesture = "move"
)

// Event is the outcome of one successful gesture. For moves Index is the
// source row and To the destination; otherwise To equals Index.
type Event struct {
	Seq     int       `json:"seq"`
	Gesture Gesture   `json:"gesture"`
	Index   int       `json:"index"`
	To      int       `json:"to"`
	Item    string    `json:"item"`
	At      time.Time `json:"at"`
}

// Journal is where the editor records events. *repository.JournalRepo satisfies it.
type Journal interface {
	StartSession(ctx context.Context, s repository.Session) error
	Append(ctx context.Context, e repository.Entry) error
}

// EditorService translates list gestures into store operations.
type EditorService struct {
	Store        *ordered.Store[string]
	Journal      Journal
	NewItemLabel string
	SessionID    string

	log zerolog.Logger
	seq int
}

// NewEditor wires an editor over store. journal may be nil.
func NewEditor(store *ordered.Store[string], journal Journal, log zerolog.Logger, newItemLabel string) *EditorService {
	e := &EditorService{
		Store:        store,
		Journal:      journal,
		NewItemLabel: newItemLabel,
		SessionID:    uuid.NewString(),
		log:          log.With().Str("component", "editor").Logger(),
	}
	store.Subscribe(func(c ordered.Change[string]) {
		e.log.Debug().Str("kind", string(c.Kind)).Int("index", c.Index).Int("to", c.To).Str("item", c.Item).Int("count", store.Count()).Msg("list changed")
	})
	return e
}

// Begin opens a journal session for this editor. It is a no-op without a journal.
func (e *EditorService) Begin(ctx context.Context, title string) error {
	if e.Journal == nil {
		return nil
	}
	return e.Journal.StartSession(ctx, repository.Session{
		ID:        e.SessionID,
		Title:     title,
		SeedCount: e.Store.Count(),
		StartedAt: database.Now(),
	})
}

// Select reads the row at index without changing the list.
func (e *EditorService) Select(index int) (Event, error) {
	item, err := e.Store.ItemAt(index)
	if err != nil {
		return Event{}, fmt.Errorf("select: %w", err)
	}
	ev := e.next(GestureSelect, index, index, item)
	e.log.Info().Int("index", index).Str("item", item).Msg("selected")
	return ev, nil
}

// Delete removes the row at index.
func (e *EditorService) Delete(index int) (Event, error) {
	item, err := e.Store.RemoveAt(index)
	if err != nil {
		return Event{}, fmt.Errorf("delete: %w", err)
	}
	ev := e.next(GestureDelete, index, index, item)
	e.log.Info().Int("index", index).Str("item", item).Msg("deleted")
	return ev, nil
}

// Add inserts a row at the top. An empty label uses NewItemLabel.
func (e *EditorService) Add(label string) (Event, error) {
	if label == "" {
		label = e.NewItemLabel
	}
	if err := e.Store.InsertAt(0, label); err != nil {
		return Event{}, fmt.Errorf("add: %w", err)
	}
	ev := e.next(GestureAdd, 0, 0, label)
	e.log.Info().Str("item", label).Msg("added")
	return ev, nil
}

// Move relocates the row at src to dst in a single store call.
func (e *EditorService) Move(src, dst int) (Event, error) {
	if err := e.Store.MoveItem(src, dst); err != nil {
		return Event{}, fmt.Errorf("move: %w", err)
	}
	item, _ := e.Store.ItemAt(dst)
	ev := e.next(GestureMove, src, dst, item)
	e.log.Info().Int("from", src).Int("to", dst).Str("item", item).Msg("moved")
	return ev, nil
}

// Record appends ev to the journal. It is a no-op without a journal.
func (e *EditorService) Record(ctx context.Context, ev Event) error {
	if e.Journal == nil {
		return nil
	}
	err := e.Journal.Append(ctx, repository.Entry{
		ID:        uuid.NewString(),
		SessionID: e.SessionID,
		Seq:       ev.Seq,
		Gesture:   string(ev.Gesture),
		Index:     ev.Index,
		To:        ev.To,
		Item:      ev.Item,
		CreatedAt: ev.At,
	})
	if err != nil {
		e.log.Error().Err(err).Int("seq", ev.Seq).Msg("journal append failed")
		return fmt.Errorf("record %s: %w", ev.Gesture, err)
	}
	return nil
}

func (e *EditorService) next(g Gesture, index, to int, item string) Event {
	e.seq++
	return Event{Seq: e.seq, Gesture: g, Index: index, To: to, Item: item, At: database.Now()}
}
