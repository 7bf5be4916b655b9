package registry

import (
	"testing"

	"github.com/azargarov/taskpool/task"
)

func newRecord(id string) *task.Record {
	return task.New(id, id, task.Medium, 0, func() (task.Status, string) { return task.Completed, "" }, func(error) {})
}

func TestInsertUniqueRejectsDuplicate(t *testing.T) {
	r := New()
	if !r.InsertUnique("a", newRecord("a")) {
		t.Fatal("first InsertUnique(\"a\") returned false")
	}
	if r.InsertUnique("a", newRecord("a")) {
		t.Fatal("second InsertUnique(\"a\") returned true; want false")
	}
	if got := r.Len(); got != 1 {
		t.Fatalf("Len() = %d; want 1", got)
	}
}

func TestLookupAndRemove(t *testing.T) {
	r := New()
	rec := newRecord("a")
	r.InsertUnique("a", rec)

	got, ok := r.Lookup("a")
	if !ok || got != rec {
		t.Fatalf("Lookup(\"a\") = (%v, %v); want (%v, true)", got, ok, rec)
	}

	r.Remove("a")
	if _, ok := r.Lookup("a"); ok {
		t.Fatal("Lookup(\"a\") after Remove returned true")
	}

	// Remove of an absent id is a no-op, not a panic.
	r.Remove("missing")
}

func TestClearDrainsAndResetsRegistry(t *testing.T) {
	r := New()
	r.InsertUnique("a", newRecord("a"))
	r.InsertUnique("b", newRecord("b"))

	drained := r.Clear()
	if len(drained) != 2 {
		t.Fatalf("Clear() returned %d records; want 2", len(drained))
	}
	if got := r.Len(); got != 0 {
		t.Fatalf("Len() after Clear() = %d; want 0", got)
	}
	if _, ok := r.Lookup("a"); ok {
		t.Fatal("Lookup(\"a\") after Clear() returned true")
	}
}
