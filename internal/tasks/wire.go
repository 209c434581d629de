package tasks

import (
	"context"
	"errors"

	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/pkg/task"
)

// Wire binds the page events to the operations.
// Errors end up in the log, the page never shows them.
func Wire(p page.Page, o *Operations) {
	o.renderer.OnDelete = func(ctx context.Context, t task.Task) {
		o.report("deleting task", o.Delete(ctx, t))
	}
	p.Bind(page.EventReady, func(ctx context.Context) {
		_, err := o.Load(ctx)
		o.report("loading tasks", err)
	})
	p.Bind(page.EventAdd, func(ctx context.Context) {
		o.report("adding task", o.Add(ctx))
	})
	filter := func(ctx context.Context) {
		_, err := o.Filter(ctx)
		o.report("filtering tasks", err)
	}
	p.Bind(page.EventSearchText, filter)
	p.Bind(page.EventSearchDate, filter)
}

func (o *Operations) report(action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrSuperseded):
		o.log.WithField("action", action).Debug(err)
	default:
		o.log.WithError(err).Error("error " + action)
	}
}
