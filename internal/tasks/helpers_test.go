package tasks

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/td0m/taskclient/internal/api"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/pkg/task"
)

var now = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

type call struct {
	Method string
	Path   string
	Body   string
}

// server is a fake tasks backend that records every request it serves
type server struct {
	mu     sync.Mutex
	tasks  []task.Task
	calls  []call
	failOn string
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bs, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{Method: r.Method, Path: r.URL.EscapedPath(), Body: string(bs)})
	if r.Method == s.failOn {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	switch r.Method {
	case http.MethodGet:
		ts := s.tasks
		if ts == nil {
			ts = []task.Task{}
		}
		json.NewEncoder(w).Encode(ts)
	case http.MethodPost:
		var t task.Task
		json.Unmarshal(bs, &t)
		s.tasks = append(s.tasks, t)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(t)
	case http.MethodDelete:
		key := strings.TrimPrefix(r.URL.Path, api.TasksPath+"/")
		for i, t := range s.tasks {
			if t.Key() == key {
				s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
				break
			}
		}
		io.WriteString(w, `{"status":200}`)
	}
}

func (s *server) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *server) count(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

type fixture struct {
	srv  *server
	page *page.Memory
	ops  *Operations
	logs *test.Hook
}

func newFixture(t *testing.T, policy api.Policy, tasks ...task.Task) fixture {
	t.Helper()
	srv := &server{tasks: tasks}
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	return newFixtureAt(t, hs.URL, policy, srv)
}

func newFixtureAt(t *testing.T, url string, policy api.Policy, srv *server) fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	client := api.New(url, api.Options{Logger: log, Policy: policy})
	p := page.NewMemory()
	ops := New(client, p, Options{Logger: log, Now: func() time.Time { return now }})
	return fixture{srv: srv, page: p, ops: ops, logs: hook}
}

func texts(rows []page.Row) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.Text)
	}
	return out
}

func unreachableURL() string {
	s := httptest.NewServer(http.NotFoundHandler())
	s.Close()
	return s.URL
}
