package pqueue

import (
	"testing"
	"time"

	"github.com/azargarov/taskpool/task"
)

func newRecord(id string, priority task.Priority, submit time.Time) *task.Record {
	rec := task.New(id, id, priority, 0, func() (task.Status, string) { return task.Completed, "" }, func(error) {})
	rec.SubmitTime = submit
	return rec
}

func TestPopOrdersByPriorityThenSubmitTime(t *testing.T) {
	q := New()
	base := time.Now()

	q.Push(newRecord("low-1", task.Low, base))
	q.Push(newRecord("high-1", task.High, base.Add(time.Millisecond)))
	q.Push(newRecord("medium-1", task.Medium, base.Add(2*time.Millisecond)))
	q.Push(newRecord("high-2", task.High, base.Add(3*time.Millisecond)))

	want := []string{"high-1", "high-2", "medium-1", "low-1"}
	for _, id := range want {
		rec, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned false; expected %q", id)
		}
		if rec.ID != id {
			t.Fatalf("Pop() = %q; want %q", rec.ID, id)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop() on empty queue returned true")
	}
}

func TestFIFOWithinSamePriority(t *testing.T) {
	q := New()
	base := time.Now()
	for i := 0; i < 5; i++ {
		q.Push(newRecord(string(rune('a'+i)), task.Medium, base.Add(time.Duration(i)*time.Millisecond)))
	}
	for i := 0; i < 5; i++ {
		rec, ok := q.Pop()
		if !ok {
			t.Fatal("Pop() returned false before queue drained")
		}
		want := string(rune('a' + i))
		if rec.ID != want {
			t.Fatalf("Pop() at position %d = %q; want %q", i, rec.ID, want)
		}
	}
}

func TestLenAndClear(t *testing.T) {
	q := New()
	base := time.Now()
	q.Push(newRecord("a", task.Low, base))
	q.Push(newRecord("b", task.High, base))

	if got := q.Len(); got != 2 {
		t.Fatalf("Len() = %d; want 2", got)
	}

	drained := q.Clear()
	if len(drained) != 2 {
		t.Fatalf("Clear() returned %d records; want 2", len(drained))
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() after Clear() = %d; want 0", got)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop() after Clear() returned true")
	}
}
