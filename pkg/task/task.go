package task

import (
	"fmt"
	"time"
)

// dateOnly is the layout of a start date sent without a time of day
const dateOnly = "2006-01-02"

// Task is a single dated to-do item as exchanged with the backend.
// The server owns its existence; the client never stores one.
type Task struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
}

// Key returns the identifier used to address the task on deletion.
// Servers that assign ids are addressed by id, all others by label.
func (t Task) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Label
}

// String is the text a rendered row shows for the task
func (t Task) String() string {
	return fmt.Sprintf("%s - %s", t.Label, t.StartDate)
}

// Start parses the start date.
// ok is false when the date is missing or malformed.
func (t Task) Start() (start time.Time, ok bool) {
	if t.StartDate == "" {
		return time.Time{}, false
	}
	if s, err := time.Parse(time.RFC3339Nano, t.StartDate); err == nil {
		return s, true
	}
	// date-only values are UTC midnight, like browsers do it
	if s, err := time.Parse(dateOnly, t.StartDate); err == nil {
		return s, true
	}
	return time.Time{}, false
}

// Overdue reports whether the task started strictly before now.
// It is recomputed on every render and never sent to the server.
func (t Task) Overdue(now time.Time) bool {
	start, ok := t.Start()
	return ok && start.Before(now)
}
