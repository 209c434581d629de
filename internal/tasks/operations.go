package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/pkg/task"
	"github.com/td0m/taskclient/pkg/task/date"
)

var ErrSuperseded = errors.New("superseded by a newer request")

// Backend is the tasks resource as the operations need it
type Backend interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, t task.Task) (created *task.Task, ok bool, err error)
	DeleteTask(ctx context.Context, key string) (ok bool, err error)
}

type Operations struct {
	backend  Backend
	page     page.Page
	renderer *Renderer
	log      logrus.FieldLogger
	match    task.DateMatch
	now      func() time.Time

	list latest
}

type Options struct {
	Logger    logrus.FieldLogger
	DateMatch task.DateMatch
	Now       func() time.Time
}

func New(b Backend, p page.Page, opts Options) *Operations {
	o := &Operations{
		backend: b,
		page:    p,
		log:     opts.Logger,
		match:   opts.DateMatch,
		now:     opts.Now,
	}
	if o.log == nil {
		o.log = logrus.StandardLogger()
	}
	if o.now == nil {
		o.now = time.Now
	}
	o.renderer = &Renderer{Page: p, Now: o.now}
	return o
}

// Renderer is the renderer the operations draw with. Its OnDelete is
// left for the caller to bind.
func (o *Operations) Renderer() *Renderer {
	return o.renderer
}

// Load fetches every task and renders it
func (o *Operations) Load(ctx context.Context) ([]task.Task, error) {
	ctx, commit, done := o.list.begin(ctx)
	defer done()

	o.log.Debug("loading tasks")
	tasks, err := o.backend.ListTasks(ctx)
	if err != nil {
		if !commit(nil) {
			return nil, ErrSuperseded
		}
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if !commit(func() { o.renderer.Render(tasks) }) {
		return nil, ErrSuperseded
	}
	o.log.WithField("count", len(tasks)).Debug("tasks loaded")
	return tasks, nil
}

// Add submits the task typed into the label and date fields.
// Blank fields are rejected without a request.
func (o *Operations) Add(ctx context.Context) error {
	label := o.page.Value(page.FieldLabel)
	input := o.page.Value(page.FieldDate)
	if strings.TrimSpace(label) == "" || strings.TrimSpace(input) == "" {
		o.log.Info("label and start date are required to add a task")
		return nil
	}
	startDate, err := date.Normalize(input, o.now())
	if err != nil {
		return fmt.Errorf("start date %q: %w", input, err)
	}
	t := task.Task{Label: label, StartDate: startDate}
	o.log.WithField("task", t).Debug("adding task")
	created, ok, err := o.backend.CreateTask(ctx, t)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	if !ok {
		// suppressed failure, already logged by the client
		return nil
	}
	o.log.WithField("created", created).Debug("task added")

	o.page.SetValue(page.FieldLabel, "")
	o.page.SetValue(page.FieldDate, "")
	_, err = o.Load(ctx)
	return err
}

// Delete removes t on the server, then reloads
func (o *Operations) Delete(ctx context.Context, t task.Task) error {
	o.log.WithField("key", t.Key()).Debug("deleting task")
	ok, err := o.backend.DeleteTask(ctx, t.Key())
	if err != nil {
		return fmt.Errorf("deleting task %q: %w", t.Key(), err)
	}
	if !ok {
		return nil
	}
	_, err = o.Load(ctx)
	return err
}

// Filter fetches every task and renders those matching the search fields.
// Nothing is filtered server-side.
func (o *Operations) Filter(ctx context.Context) ([]task.Task, error) {
	f := task.Filter{
		Text:  o.page.Value(page.FieldSearchText),
		Date:  o.page.Value(page.FieldSearchDate),
		Match: o.match,
	}
	ctx, commit, done := o.list.begin(ctx)
	defer done()

	tasks, err := o.backend.ListTasks(ctx)
	if err != nil {
		if !commit(nil) {
			return nil, ErrSuperseded
		}
		return nil, fmt.Errorf("filtering tasks: %w", err)
	}
	filtered := f.Apply(tasks)
	if !commit(func() { o.renderer.Render(filtered) }) {
		return nil, ErrSuperseded
	}
	o.log.WithFields(logrus.Fields{
		"text":  f.Text,
		"date":  f.Date,
		"total": len(tasks),
		"shown": len(filtered),
	}).Debug("tasks filtered")
	return filtered, nil
}
