package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dragStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (a *App) View() string {
	var b strings.Builder
	title := a.cfg.Title
	switch {
	case a.dragging:
		title += " [moving]"
	case a.editing:
		title += " [editing]"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	rows := a.rows()
	if len(rows) == 0 {
		b.WriteString("  (no rows)\n")
	}
	start, end := a.offset, len(rows)
	if v := a.visibleRows(); v > 0 && start+v < end {
		end = start + v
	}
	for i := start; i < end; i++ {
		switch {
		case i == a.cursor && a.dragging:
			b.WriteString(dragStyle.Render("≡ "+rows[i]) + "\n")
		case i == a.cursor:
			b.WriteString(cursorStyle.Render("▶ "+rows[i]) + "\n")
		default:
			b.WriteString(fmt.Sprintf("  %s\n", rows[i]))
		}
	}

	if a.finding {
		b.WriteString("find: " + a.query + "\n")
	}
	b.WriteString(helpLine(a.bindings()))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}
