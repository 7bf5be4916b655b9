// Package pqueue implements the pool's pending-task store: a
// container/heap ordered by (priority desc, submit time asc).
package pqueue

import (
	"container/heap"

	"github.com/azargarov/taskpool/task"
)

// Queue is a max-heap of *task.Record ordered by (Priority desc,
// SubmitTime asc). It is not safe for concurrent use; callers must
// serialize access with their own lock.
type Queue struct {
	h recordHeap
}

// New returns an empty priority queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push inserts rec into the queue.
func (q *Queue) Push(rec *task.Record) {
	heap.Push(&q.h, rec)
}

// Pop removes and returns the highest-priority, earliest-submitted
// record. It returns false if the queue is empty.
func (q *Queue) Pop() (*task.Record, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*task.Record), true
}

// Len returns the number of records currently queued.
func (q *Queue) Len() int { return q.h.Len() }

// Clear discards all queued records and returns the removed records.
// The caller is responsible for resolving any orphaned handles.
func (q *Queue) Clear() []*task.Record {
	drained := make([]*task.Record, len(q.h))
	copy(drained, q.h)
	q.h = q.h[:0]
	return drained
}

type recordHeap []*task.Record

func (h recordHeap) Len() int { return len(h) }

func (h recordHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].SubmitTime.Before(h[j].SubmitTime)
}

func (h recordHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *recordHeap) Push(x any) {
	*h = append(*h, x.(*task.Record))
}

func (h *recordHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}
