package taskpool

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/azargarov/taskpool/task"
)

// Submit enqueues fn at Medium priority, with no timeout, anonymously.
func Submit[T any](p *Pool, fn func() (T, error)) (*Handle[T], error) {
	return submitGeneral(p, "", "", task.Medium, 0, fn)
}

// SubmitWithPriority enqueues fn anonymously at the given priority and
// timeout (zero timeout means no bound).
func SubmitWithPriority[T any](p *Pool, priority task.Priority, timeout time.Duration, fn func() (T, error)) (*Handle[T], error) {
	return submitGeneral(p, "", "", priority, timeout, fn)
}

// SubmitWithInfo is the general submission form: an optional id (empty
// means anonymous), a description, a priority, an optional timeout,
// and the closure to run.
func SubmitWithInfo[T any](p *Pool, id, description string, priority task.Priority, timeout time.Duration, fn func() (T, error)) (*Handle[T], error) {
	return submitGeneral(p, id, description, priority, timeout, fn)
}

// SubmitBatch submits each closure anonymously at the same priority
// and timeout.
func SubmitBatch[T any](p *Pool, fns []func() (T, error), priority task.Priority, timeout time.Duration) ([]*Handle[T], error) {
	handles := make([]*Handle[T], 0, len(fns))
	for _, fn := range fns {
		h, err := submitGeneral(p, "", "", priority, timeout, fn)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// SubmitBatchWithPrefix submits each closure with id "{idPrefix}-{index}"
// and description "{descPrefix} {index}".
func SubmitBatchWithPrefix[T any](p *Pool, idPrefix, descPrefix string, fns []func() (T, error), priority task.Priority, timeout time.Duration) ([]*Handle[T], error) {
	handles := make([]*Handle[T], 0, len(fns))
	for i, fn := range fns {
		id := fmt.Sprintf("%s-%d", idPrefix, i)
		desc := fmt.Sprintf("%s %d", descPrefix, i)
		h, err := submitGeneral(p, id, desc, priority, timeout, fn)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// submitGeneral is the shared submission path: reject if the pool is
// shutting down or the id is already registered, build the task
// record and its erased thunks, enqueue it, and wake one worker.
func submitGeneral[T any](p *Pool, id, description string, priority task.Priority, timeout time.Duration, fn func() (T, error)) (*Handle[T], error) {
	handle := newHandle[T]()

	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		return nil, ErrShuttingDown
	}
	if id != "" {
		if _, exists := p.registry.Lookup(id); exists {
			p.mu.Unlock()
			return nil, ErrDuplicateID
		}
	}

	p.logger.Debug("submitting task",
		zap.String("id", id),
		zap.String("description", description),
		zap.String("priority", priority.String()),
	)

	run := buildRun(p, handle, timeout, fn)
	orphan := func(err error) { handle.resolve(zeroValue[T](), err) }

	rec := task.New(id, description, priority, timeout, run, orphan)
	rec.SubmitTime = p.now()

	p.queue.Push(rec)
	if id != "" {
		p.registry.InsertUnique(id, rec)
	}

	p.metrics.IncTotalSubmitted()
	p.metrics.SetQueueDepth(int64(p.queue.Len()))

	p.dispatchCond.Signal()
	p.mu.Unlock()

	return handle, nil
}

func zeroValue[T any]() T {
	var z T
	return z
}

// buildRun closes over the submitter's closure and handle, producing
// the thunk the dispatcher invokes outside the queue lock.
func buildRun[T any](p *Pool, handle *Handle[T], timeout time.Duration, fn func() (T, error)) func() (task.Status, string) {
	return func() (task.Status, string) {
		if timeout <= 0 {
			return runDirect(p, handle, fn)
		}
		return runWithTimeout(p, handle, timeout, fn)
	}
}

// runDirect executes fn on the current worker goroutine with no
// timeout bound.
func runDirect[T any](p *Pool, handle *Handle[T], fn func() (T, error)) (task.Status, string) {
	v, err := fn()
	if err != nil {
		msg := err.Error()
		p.metrics.IncFailed()
		handle.resolve(v, &TaskFailure{Message: msg})
		return task.Failed, msg
	}
	handle.resolve(v, nil)
	return task.Completed, ""
}
