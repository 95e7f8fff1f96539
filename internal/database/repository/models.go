package repository

import "time"

// Session represents one run of the editor.
type Session struct {
	ID        string
	Title     string
	SeedCount int
	StartedAt time.Time
	Entries   int // filled by Sessions only
}

// Entry represents one journaled gesture.
type Entry struct {
	ID        string
	SessionID string
	Seq       int
	Gesture   string
	Index     int
	To        int
	Item      string
	CreatedAt time.Time
}
