package taskpool

import (
	"errors"
	"fmt"
	"time"
)

// Submission-path and lifecycle-control errors.
var (
	// ErrShuttingDown is returned by a submission made after the pool
	// has begun shutting down.
	ErrShuttingDown = errors.New("taskpool: pool is shutting down")

	// ErrDuplicateID is returned when a named submission reuses an id
	// still present in the registry.
	ErrDuplicateID = errors.New("taskpool: task id already registered")

	// ErrResizeOnStopped is returned by Resize after Shutdown.
	ErrResizeOnStopped = errors.New("taskpool: cannot resize a stopped pool")

	// ErrMaxBelowCurrent is returned by SetMaxWorkers when the proposed
	// ceiling is below the current worker count.
	ErrMaxBelowCurrent = errors.New("taskpool: max workers below current worker count")

	// ErrTaskCleared resolves a pending handle whose task was dropped
	// by Clear before it ran.
	ErrTaskCleared = errors.New("taskpool: task was cleared before it ran")

	// ErrPoolShutdown resolves a pending handle whose task was still
	// queued when Shutdown drained the pool.
	ErrPoolShutdown = errors.New("taskpool: pool shut down before task ran")
)

// TaskFailure is the result-handle error for a closure that returned
// an error during execution.
type TaskFailure struct {
	Message string
}

func (e *TaskFailure) Error() string { return "taskpool: task failed: " + e.Message }

// Timeout is the result-handle error for a task whose deadline elapsed
// before the closure completed.
type Timeout struct {
	Duration time.Duration
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("taskpool: task timed out after %s", e.Duration)
}
