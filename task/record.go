package task

import "time"

// Record is a task's immutable identity plus its mutable execution
// status. All status/error mutation happens under the pool's single
// queue mutex; Record carries no lock of its own.
type Record struct {
	ID          string
	Description string
	Priority    Priority
	SubmitTime  time.Time
	Timeout     time.Duration

	status Status
	err    string

	// run executes the submitter's closure and reports the terminal
	// status the worker should record, plus an error message for
	// Failed outcomes. run resolves the submitter's result handle
	// itself; the worker never touches it directly.
	run func() (Status, string)

	// orphan resolves the result handle without running the closure,
	// used when a still-Waiting task is discarded by Clear or Shutdown.
	orphan func(error)
}

// New builds a Waiting record around run/orphan thunks produced by the
// submission path. run and orphan must not be nil.
func New(id, description string, priority Priority, timeout time.Duration, run func() (Status, string), orphan func(error)) *Record {
	return &Record{
		ID:          id,
		Description: description,
		Priority:    priority,
		Timeout:     timeout,
		status:      Waiting,
		run:         run,
		orphan:      orphan,
	}
}

// Status returns the record's current lifecycle state. Callers must
// hold the pool's queue mutex.
func (r *Record) Status() Status { return r.status }

// SetStatus transitions the record's lifecycle state. Callers must
// hold the pool's queue mutex.
func (r *Record) SetStatus(s Status) { r.status = s }

// Err returns the error message recorded for a Failed task.
func (r *Record) Err() string { return r.err }

// SetErr records the error message for a Failed task.
func (r *Record) SetErr(msg string) { r.err = msg }

// Run invokes the task's thunk. It must be called outside the queue
// mutex: the thunk may block on a timeout deadline.
func (r *Record) Run() (Status, string) { return r.run() }

// Orphan resolves the result handle without executing the task, used
// when the record is discarded while still Waiting.
func (r *Record) Orphan(err error) {
	if r.orphan != nil {
		r.orphan(err)
	}
}
