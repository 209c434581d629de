package page

import (
	"context"
	"sync"
)

var _ Page = &Memory{}

// Memory is a page held entirely in memory. It is safe for concurrent
// use, handlers may run on any goroutine.
type Memory struct {
	mu       sync.Mutex
	values   map[Field]string
	rows     []Row
	handlers map[Event][]Handler
	version  uint64
}

func NewMemory() *Memory {
	return &Memory{
		values:   map[Field]string{},
		handlers: map[Event][]Handler{},
	}
}

func (m *Memory) Value(f Field) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[f]
}

func (m *Memory) SetValue(f Field, v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[f] = v
	m.version++
}

func (m *Memory) ClearList() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	m.version++
}

func (m *Memory) AppendRow(r Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
	m.version++
}

func (m *Memory) Bind(e Event, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[e] = append(m.handlers[e], h)
}

// Fire runs the handlers bound to e, in the order they were bound
func (m *Memory) Fire(ctx context.Context, e Event) {
	m.mu.Lock()
	hs := append([]Handler(nil), m.handlers[e]...)
	m.mu.Unlock()
	for _, h := range hs {
		h(ctx)
	}
}

// Rows returns a copy of the rendered list
func (m *Memory) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Row(nil), m.rows...)
}

// Version increases on every mutation, so readers can tell when to redraw
func (m *Memory) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}
