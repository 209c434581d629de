package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/td0m/taskclient/pkg/task"
)

type request struct {
	Method string
	Path   string
	Body   string
}

// fakeBackend keeps tasks in memory and records what it was asked
type fakeBackend struct {
	mu       sync.Mutex
	tasks    []task.Task
	requests []request
	fail     bool
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bs, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, request{r.Method, r.URL.EscapedPath(), string(bs)})
	if b.fail {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	switch r.Method {
	case http.MethodGet:
		ts := append([]task.Task{}, b.tasks...)
		json.NewEncoder(w).Encode(ts)
	case http.MethodPost:
		var t task.Task
		json.Unmarshal(bs, &t)
		b.tasks = append(b.tasks, t)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(t)
	case http.MethodDelete:
		key := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
		kept := []task.Task{}
		for _, t := range b.tasks {
			if t.Key() != key {
				kept = append(kept, t)
			}
		}
		b.tasks = kept
	}
}

// execute runs the root command against backend and captures stdout
func execute(t *testing.T, backend *fakeBackend, args ...string) (string, error) {
	t.Helper()
	s := httptest.NewServer(backend)
	t.Cleanup(s.Close)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args,
		"--api-url", s.URL,
		"--config", filepath.Join(t.TempDir(), "missing.json"),
	))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	backend := &fakeBackend{tasks: []task.Task{
		{Label: "Test Task", StartDate: "2024-05-20T12:00:00Z"},
		{Label: "Far Away", StartDate: "2999-01-01T00:00:00Z"},
	}}
	out, err := execute(t, backend, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Task - 2024-05-20T12:00:00Z")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Far Away - 2999-01-01T00:00:00Z")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestList_Empty(t *testing.T) {
	out, err := execute(t, &fakeBackend{}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks available")
}

func TestList_Errors(t *testing.T) {
	t.Run("propagate fails the command", func(t *testing.T) {
		_, err := execute(t, &fakeBackend{fail: true}, "list")
		assert.Error(t, err)
	})
	t.Run("suppress shows no data", func(t *testing.T) {
		out, err := execute(t, &fakeBackend{fail: true}, "list", "--error-policy", "suppress")
		assert.NoError(t, err)
		assert.Contains(t, out, "No tasks available")
	})
	t.Run("unknown policy is rejected", func(t *testing.T) {
		_, err := execute(t, &fakeBackend{}, "list", "--error-policy", "retry")
		assert.Error(t, err)
	})
}

func TestAdd(t *testing.T) {
	backend := &fakeBackend{}
	out, err := execute(t, backend, "add", "New Task", "2024-05-20T12:00:00Z")
	require.NoError(t, err)

	require.Len(t, backend.requests, 2)
	assert.Equal(t, http.MethodPost, backend.requests[0].Method)
	assert.JSONEq(t, `{"label":"New Task","start_date":"2024-05-20T12:00:00.000Z"}`, backend.requests[0].Body)
	assert.Equal(t, http.MethodGet, backend.requests[1].Method)
	assert.Contains(t, out, "New Task - 2024-05-20T12:00:00.000Z")
}

func TestAdd_Blank(t *testing.T) {
	backend := &fakeBackend{}
	_, err := execute(t, backend, "add", " ", "tomorrow")
	assert.Error(t, err)
	assert.Empty(t, backend.requests)
}

func TestDelete(t *testing.T) {
	backend := &fakeBackend{tasks: []task.Task{
		{Label: "Test Task", StartDate: "2024-05-20T12:00:00Z"},
	}}
	out, err := execute(t, backend, "delete", "Test Task")
	require.NoError(t, err)

	require.Len(t, backend.requests, 2)
	assert.Equal(t, request{Method: http.MethodDelete, Path: "/v1/tasks/Test%20Task"}, backend.requests[0])
	assert.Equal(t, http.MethodGet, backend.requests[1].Method)
	assert.Contains(t, out, "No tasks available")
}

func TestFilter(t *testing.T) {
	backend := &fakeBackend{tasks: []task.Task{
		{Label: "Test Task 1", StartDate: "2024-05-20T12:00:00Z"},
		{Label: "Other Task", StartDate: "2024-05-21T12:00:00Z"},
	}}
	out, err := execute(t, backend, "filter", "--text", "test", "--date", "2024-05-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Task 1")
	assert.NotContains(t, out, "Other Task")

	out, err = execute(t, backend, "filter", "--date", "2024-05-2", "--date-match", "exact")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks available")
}
