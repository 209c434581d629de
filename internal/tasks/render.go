package tasks

import (
	"context"
	"time"

	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/pkg/task"
)

// Placeholder is the text of the single row shown for an empty list
const Placeholder = "No tasks available"

// Renderer projects a collection of tasks onto the page list
type Renderer struct {
	Page page.Page
	Now  func() time.Time
	// OnDelete is called when a row's delete control is activated
	OnDelete func(context.Context, task.Task)
}

// Render replaces the whole list with one row per task
func (r *Renderer) Render(tasks []task.Task) {
	r.Page.ClearList()
	if len(tasks) == 0 {
		r.Page.AppendRow(page.Row{Text: Placeholder, Placeholder: true})
		return
	}
	now := r.now()
	for _, t := range tasks {
		t := t
		r.Page.AppendRow(page.Row{
			Text:      t.String(),
			Completed: t.Overdue(now),
			Delete: func(ctx context.Context) {
				if r.OnDelete != nil {
					r.OnDelete(ctx, t)
				}
			},
		})
	}
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
