package tasks

import (
	"context"
	"sync"
)

// latest hands out a single slot: beginning a new call cancels the one
// before it, so only the most recent call may still render.
type latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// begin returns a context for the new call, a commit that runs render
// only while the call is still the most recent one, and a func to
// release the slot. commit(nil) only reports whether the call is current.
func (l *latest) begin(ctx context.Context) (context.Context, func(render func()) bool, func()) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	// render runs under the lock, a newer call cannot begin halfway through
	commit := func(render func()) bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.seq != seq {
			return false
		}
		if render != nil {
			render()
		}
		return true
	}
	done := func() {
		l.mu.Lock()
		if l.seq == seq {
			l.cancel = nil
		}
		l.mu.Unlock()
		cancel()
	}
	return ctx, commit, done
}
