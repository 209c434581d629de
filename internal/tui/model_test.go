package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/taskclient/internal/api"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/internal/tasks"
	"github.com/td0m/taskclient/pkg/task"
)

// backend serves a fixed list and counts deletes
type backend struct {
	mu      sync.Mutex
	tasks   []task.Task
	deletes []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(b.tasks)
	case http.MethodDelete:
		b.deletes = append(b.deletes, r.URL.EscapedPath())
		b.tasks = b.tasks[1:]
	}
}

func setup(t *testing.T, ts ...task.Task) (*Model, *backend) {
	t.Helper()
	b := &backend{tasks: ts}
	s := httptest.NewServer(b)
	t.Cleanup(s.Close)

	p := page.NewMemory()
	ops := tasks.New(api.New(s.URL, api.Options{}), p, tasks.Options{
		Now: func() time.Time { return time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC) },
	})
	tasks.Wire(p, ops)
	m := New(context.Background(), p)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, b
}

// run executes cmd and feeds its message back, like the program would
func run(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	m.Update(cmd())
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Init(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t,
		task.Task{Label: "Test Task", StartDate: "2024-05-20T12:00:00Z"},
		task.Task{Label: "Later", StartDate: "2024-06-01T12:00:00Z"},
	)
	cmd := m.Init()
	is.Equal(m.status(), "loading…")
	is.True(strings.Contains(m.View(), "loading…"))
	run(m, cmd)

	is.Equal(len(m.rows), 2)
	is.Equal(m.rows[0].Text, "Test Task - 2024-05-20T12:00:00Z")
	is.True(m.rows[0].Completed)
	is.True(!m.rows[1].Completed)
	// completed rows are struck through rune by rune, pending ones stay whole
	view := m.View()
	is.True(strings.Contains(view, "Later - 2024-06-01T12:00:00Z"))
	is.True(strings.Contains(view, "2 tasks"))
}

func TestModel_Empty(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)
	run(m, m.Init())
	is.True(strings.Contains(m.View(), "No tasks available"))
	is.True(strings.Contains(m.View(), "0 tasks"))
}

func TestModel_Focus(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)
	is.Equal(focus(m.bar.Value()), focusLabel)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	is.Equal(focus(m.bar.Value()), focusDate)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	is.Equal(focus(m.bar.Value()), focusList)
}

func TestModel_Typing(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)
	for _, r := range "New" {
		m.Update(key(string(r)))
	}
	is.Equal(m.page.Value(page.FieldLabel), "New")

	// enter submits instead of typing
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	is.True(cmd != nil)
	is.Equal(m.label.Value(), "New")
}

func TestModel_Search(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)
	m.setFocus(focusSearchText)
	before := m.pending
	m.Update(key("x"))
	is.Equal(m.page.Value(page.FieldSearchText), "x")
	// one filter per keystroke
	is.Equal(m.pending, before+1)
}

func TestModel_Delete(t *testing.T) {
	is := is.New(t)
	m, b := setup(t,
		task.Task{Label: "Test Task", StartDate: "2024-05-20T12:00:00Z"},
		task.Task{Label: "Later", StartDate: "2024-06-01T12:00:00Z"},
	)
	run(m, m.Init())
	m.setFocus(focusList)

	_, cmd := m.Update(key("d"))
	run(m, cmd)
	is.Equal(b.deletes, []string{"/v1/tasks/Test%20Task"})
	is.Equal(len(m.rows), 1)
	is.True(strings.Contains(m.View(), "Later"))
}

func TestModel_SyncClearsInputs(t *testing.T) {
	is := is.New(t)
	m, _ := setup(t)
	m.label.SetValue("typed")
	m.page.SetValue(page.FieldLabel, "")
	m.pending++
	m.Update(syncMsg{})
	is.Equal(m.label.Value(), "")
}
