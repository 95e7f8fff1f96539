package script

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jask/rowedit/internal/service"
)

// WriteText prints the events and the final list, one per line.
func WriteText(w io.Writer, res Result) error {
	if _, err := fmt.Fprintln(w, "events:"); err != nil {
		return err
	}
	for _, ev := range res.Events {
		pos := fmt.Sprintf("%d", ev.Index)
		if ev.Gesture == service.GestureMove {
			pos = fmt.Sprintf("%d->%d", ev.Index, ev.To)
		}
		if _, err := fmt.Fprintf(w, "  %d %s %s %s\n", ev.Seq, ev.Gesture, pos, ev.Item); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "items:"); err != nil {
		return err
	}
	for i, item := range res.Items {
		if _, err := fmt.Fprintf(w, "  %d %s\n", i, item); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints res as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
