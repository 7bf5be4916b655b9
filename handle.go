package taskpool

import (
	"context"
	"sync"
)

// Outcome is the value delivered through a Handle: either the
// submitter's result or the failure that prevented it.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Handle is the one-shot result receiver returned by every submission.
// It is resolved exactly once when the task completes, fails, times
// out, or is orphaned by Clear/Shutdown. A task cancelled with Cancel
// is discarded by the dispatcher without resolving its handle.
type Handle[T any] struct {
	ch       chan Outcome[T]
	once     sync.Once
	mu       sync.Mutex
	outcome  Outcome[T]
	resolved bool
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{ch: make(chan Outcome[T], 1)}
}

// resolve delivers the outcome. Only the first call has any effect.
func (h *Handle[T]) resolve(v T, err error) {
	h.once.Do(func() {
		o := Outcome[T]{Value: v, Err: err}
		h.mu.Lock()
		h.outcome = o
		h.resolved = true
		h.mu.Unlock()
		h.ch <- o
		close(h.ch)
	})
}

// Wait blocks until the handle is resolved or ctx is done, whichever
// comes first. It is safe to call from multiple goroutines, and more
// than once per goroutine, unlike a bare receive on Done().
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	h.mu.Lock()
	if h.resolved {
		o := h.outcome
		h.mu.Unlock()
		return o.Value, o.Err
	}
	h.mu.Unlock()

	select {
	case o, ok := <-h.ch:
		if !ok {
			h.mu.Lock()
			o = h.outcome
			h.mu.Unlock()
		}
		return o.Value, o.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is ready once the handle is resolved.
func (h *Handle[T]) Done() <-chan Outcome[T] { return h.ch }
