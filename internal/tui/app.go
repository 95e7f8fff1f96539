package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rowedit/internal/config"
	"github.com/jask/rowedit/internal/ordered"
	"github.com/jask/rowedit/internal/service"
)

// App is the editable list screen.
type App struct {
	ctx    context.Context
	editor *service.EditorService
	cfg    config.ListConfig
	keys   keyMap

	cursor int
	offset int
	width  int
	height int
	status string

	editing  bool
	dragging bool
	dragFrom int
	finding  bool
	query    string

	pending sync.WaitGroup
}

func New(ctx context.Context, cfg config.ListConfig, editor *service.EditorService) *App {
	return &App{
		ctx:     ctx,
		editor:  editor,
		cfg:     cfg,
		keys:    defaultKeys(),
		editing: cfg.StartEditing,
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.scroll()
	case tea.KeyMsg:
		switch {
		case a.finding:
			return a.handleFindKey(m)
		case a.dragging:
			return a.handleDragKey(m)
		default:
			return a.handleKey(m)
		}
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case !a.editing && key.Matches(m, a.keys.Select):
		ev, err := a.editor.Select(a.cursor)
		if err != nil {
			a.status = "nothing to select"
			return a, nil
		}
		a.status = "selected: " + ev.Item
		return a, a.recordCmd(ev)
	case key.Matches(m, a.keys.Edit):
		a.editing = !a.editing
		a.status = ""
	case key.Matches(m, a.keys.Find):
		a.finding = true
		a.query = ""
	case !a.editing && key.Matches(m, a.keys.Add):
		ev, err := a.editor.Add("")
		if err != nil {
			return a, errCmd(err)
		}
		a.cursor = 0
		a.scroll()
		a.status = "added: " + ev.Item
		return a, a.recordCmd(ev)
	case key.Matches(m, a.keys.Delete):
		ev, err := a.editor.Delete(a.cursor)
		if err != nil {
			a.status = "nothing to delete"
			return a, nil
		}
		a.clamp()
		a.status = "deleted: " + ev.Item
		return a, a.recordCmd(ev)
	case a.editing && key.Matches(m, a.keys.Grab):
		item, err := a.editor.Store.ItemAt(a.cursor)
		if err != nil {
			return a, nil
		}
		a.dragging = true
		a.dragFrom = a.cursor
		a.status = "moving: " + item
	}
	return a, nil
}

func (a *App) handleDragKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.String() == "ctrl+c":
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Cancel):
		a.dragging = false
		a.cursor = a.dragFrom
		a.scroll()
		a.status = "move cancelled"
	case key.Matches(m, a.keys.Drop):
		a.dragging = false
		ev, err := a.editor.Move(a.dragFrom, a.cursor)
		if err != nil {
			a.cursor = a.dragFrom
			return a, errCmd(err)
		}
		a.status = fmt.Sprintf("moved: %s (%d -> %d)", ev.Item, ev.Index, ev.To)
		return a, a.recordCmd(ev)
	}
	return a, nil
}

func (a *App) handleFindKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.finding = false
		a.query = ""
	case tea.KeyEnter:
		a.finding = false
		idx, ok := a.editor.Find(a.query)
		if !ok {
			a.status = "no match"
			return a, nil
		}
		a.cursor = idx
		a.scroll()
		item, _ := a.editor.Store.ItemAt(idx)
		a.status = "found: " + item
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if r := []rune(a.query); len(r) > 0 {
			a.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.query += " "
	case tea.KeyRunes:
		a.query += string(m.Runes)
	}
	return a, nil
}

// rows is what the list shows: the store's items, or the drop preview while
// a row is being dragged.
func (a *App) rows() []string {
	items := a.editor.Store.Items()
	if !a.dragging {
		return items
	}
	preview, err := ordered.Move(items, a.dragFrom, a.cursor)
	if err != nil {
		return items
	}
	return preview
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clamp()
}

func (a *App) clamp() {
	n := a.editor.Store.Count()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.scroll()
}

// scroll keeps the cursor inside the visible window.
func (a *App) scroll() {
	visible := a.visibleRows()
	if visible <= 0 {
		a.offset = 0
		return
	}
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+visible {
		a.offset = a.cursor - visible + 1
	}
	if limit := a.editor.Store.Count() - visible; a.offset > limit {
		a.offset = limit
	}
	if a.offset < 0 {
		a.offset = 0
	}
}

// visibleRows returns how many list rows fit, or 0 when the height is unknown.
func (a *App) visibleRows() int {
	if a.height <= 0 {
		return 0
	}
	// title, find prompt, help and status
	v := a.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

func (a *App) recordCmd(ev service.Event) tea.Cmd {
	if a.editor.Journal == nil {
		return nil
	}
	a.pending.Add(1)
	// writes outlive the program's context so a gesture made just before
	// quitting still lands
	ctx := context.WithoutCancel(a.ctx)
	return func() tea.Msg {
		defer a.pending.Done()
		if err := a.editor.Record(ctx, ev); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// Wait blocks until every journal write started by Update has finished, or
// until ctx is done.
func (a *App) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("journal writes pending: %w", ctx.Err())
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

// messages
type errMsg struct{ error }
