package taskpool

import (
	"time"

	"github.com/azargarov/taskpool/task"
)

// runWithTimeout runs the closure on an auxiliary goroutine while the
// worker races its completion against a deadline. On timeout, the
// handle resolves with Timeout and the auxiliary goroutine is left to
// finish on its own — it is not cancelled or signalled.
func runWithTimeout[T any](p *Pool, handle *Handle[T], timeout time.Duration, fn func() (T, error)) (task.Status, string) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)

	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			msg := r.err.Error()
			p.metrics.IncFailed()
			handle.resolve(r.v, &TaskFailure{Message: msg})
			return task.Failed, msg
		}
		handle.resolve(r.v, nil)
		return task.Completed, ""

	case <-timer.C:
		p.metrics.IncTimedOut()
		msg := (&Timeout{Duration: timeout}).Error()
		handle.resolve(zeroValue[T](), &Timeout{Duration: timeout})
		return task.Failed, msg
	}
}
