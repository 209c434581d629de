// Package page is the surface task operations render to and read input
// from. It stands in for a document: a handful of named input fields, one
// list of rows, and events that handlers are bound to.
package page

import "context"

// Field names an input on the page
type Field string

const (
	FieldLabel      Field = "task-label"
	FieldDate       Field = "task-date"
	FieldSearchText Field = "search-text"
	FieldSearchDate Field = "search-date"
)

// Event is something a user (or the page itself) does that handlers react to
type Event int

const (
	// EventReady fires once, when the page has finished setting up
	EventReady Event = iota
	EventAdd
	EventSearchText
	EventSearchDate
)

func (e Event) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventAdd:
		return "add"
	case EventSearchText:
		return "search-text"
	case EventSearchDate:
		return "search-date"
	}
	return "unknown"
}

type Handler func(ctx context.Context)

// Row is one line of the task list
type Row struct {
	Text string
	// Completed marks a task whose date has passed
	Completed bool
	// Placeholder rows stand in for an empty list and carry no delete control
	Placeholder bool
	// Delete is the row's delete control, nil for placeholders
	Delete Handler
}

type Page interface {
	Value(Field) string
	SetValue(Field, string)

	ClearList()
	AppendRow(Row)

	Bind(Event, Handler)
}
