// Package registry maps named-task ids to their shared task record: a
// plain map, synchronized entirely by the caller's lock.
package registry

import "github.com/azargarov/taskpool/task"

// Registry is an id -> *task.Record map. It is not safe for concurrent
// use; callers must serialize access with their own lock, the same
// lock that guards the priority queue.
type Registry struct {
	m map[string]*task.Record
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{m: make(map[string]*task.Record)}
}

// InsertUnique adds rec under id. It reports false without modifying
// the registry if id is already present.
func (r *Registry) InsertUnique(id string, rec *task.Record) bool {
	if _, exists := r.m[id]; exists {
		return false
	}
	r.m[id] = rec
	return true
}

// Lookup returns the record registered under id, if any.
func (r *Registry) Lookup(id string) (*task.Record, bool) {
	rec, ok := r.m[id]
	return rec, ok
}

// Remove deletes id from the registry. It is a no-op if id is absent.
func (r *Registry) Remove(id string) {
	delete(r.m, id)
}

// Clear empties the registry and returns the records it held, so the
// caller can resolve any handles that are being orphaned.
func (r *Registry) Clear() []*task.Record {
	drained := make([]*task.Record, 0, len(r.m))
	for _, rec := range r.m {
		drained = append(drained, rec)
	}
	r.m = make(map[string]*task.Record)
	return drained
}

// Len returns the number of named tasks currently registered.
func (r *Registry) Len() int { return len(r.m) }
