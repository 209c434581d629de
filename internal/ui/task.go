package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskclient/internal/page"
)

var (
	TaskIcon      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle     = lipgloss.NewStyle().Bold(true)
	TaskCompleted = lipgloss.NewStyle().Foreground(Secondary).Strikethrough(true)
	TaskEmpty     = lipgloss.NewStyle().Foreground(Faded).Italic(true)

	DeleteHint = lipgloss.NewStyle().Foreground(Red).Padding(0, 1).Render("[d]elete")

	undone = TaskIcon.Copy().Foreground(Secondary).Render("•")
	done   = TaskIcon.Copy().Foreground(Green).Render("✓")
)

// RenderRow draws a single list row. The cursor row is highlighted and
// shows its delete control.
func RenderRow(r page.Row, selected bool) string {
	if r.Placeholder {
		return TaskIcon.Render(" ") + TaskEmpty.Render(r.Text)
	}
	icon, title := undone, TaskTitle
	if r.Completed {
		icon, title = done, TaskCompleted
	}
	if selected {
		title = title.Copy().Background(Cursor)
	}
	s := icon + title.Render(r.Text)
	if selected && r.Delete != nil {
		s += DeleteHint
	}
	return s
}

// PlainRow is RenderRow without styling, for output that is not a terminal.
func PlainRow(r page.Row) string {
	switch {
	case r.Placeholder:
		return r.Text
	case r.Completed:
		return "✓ " + r.Text
	}
	return "• " + r.Text
}
