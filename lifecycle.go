package taskpool

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/azargarov/taskpool/task"
)

// Pause stops workers from acquiring new work once their current task
// finishes; in-flight tasks run to completion.
func (p *Pool) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
	p.logger.Info("pool paused")
}

// Resume clears the paused flag and wakes workers to re-evaluate the
// queue.
func (p *Pool) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
	p.dispatchCond.Broadcast()
	p.logger.Info("pool resumed")
}

// Resize grows or shrinks the pool to n workers, clamped to
// [0, MaxWorkers]. Growing spawns workers with fresh ids; shrinking
// retires the highest-numbered worker slots and blocks until they
// exit.
func (p *Pool) Resize(n int) error {
	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		return ErrResizeOnStopped
	}
	if n < 0 {
		n = 0
	}
	if n > p.maxWorkers {
		n = p.maxWorkers
	}

	current := len(p.workers)
	p.logger.Info("resizing pool",
		zap.Int("from", current),
		zap.Int("to", n),
		zap.Int("max_workers", p.maxWorkers),
	)

	if n > current {
		for i := 0; i < n-current; i++ {
			p.spawnWorkerLocked()
		}
		p.mu.Unlock()
		return nil
	}

	if n == current {
		p.mu.Unlock()
		return nil
	}

	// n < current: retire the tail slots by descending id.
	toRetire := make([]*workerSlot, 0, current-n)
	ids := make([]int, 0, len(p.workers))
	for id := range p.workers {
		ids = append(ids, id)
	}
	sortInts(ids)
	for _, id := range ids[n:] {
		slot := p.workers[id]
		p.retireSet[id] = struct{}{}
		toRetire = append(toRetire, slot)
	}
	p.mu.Unlock()

	p.dispatchCond.Broadcast()

	for _, slot := range toRetire {
		<-slot.done
	}

	return nil
}

func sortInts(ids []int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// SetMaxWorkers raises or lowers the worker ceiling. It fails if the
// proposed ceiling is below the current worker count.
func (p *Pool) SetMaxWorkers(m int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m < len(p.workers) {
		return ErrMaxBelowCurrent
	}
	p.maxWorkers = m
	p.logger.Info("max workers set", zap.Int("max_workers", m))
	return nil
}

// WaitForIdle blocks until the queue is empty and no worker is active,
// or the pool is stopping.
func (p *Pool) WaitForIdle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.stopping && !(p.queue.Len() == 0 && p.metrics.ActiveWorkers() == 0) {
		p.drainCond.Wait()
	}
}

// Clear discards all pending tasks, resolving their handles with
// ErrTaskCleared. In-flight tasks are unaffected.
func (p *Pool) Clear() {
	p.mu.Lock()
	drained := p.queue.Clear()
	p.registry.Clear()
	p.metrics.SetQueueDepth(0)
	p.mu.Unlock()

	for _, rec := range drained {
		rec.Orphan(ErrTaskCleared)
	}

	p.logger.Info("cleared pending tasks", zap.Int("count", len(drained)))
}

// Cancel transitions the named task from Waiting to Cancelled. It
// reports false if the task is unknown or not in the Waiting state.
func (p *Pool) Cancel(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.registry.Lookup(id)
	if !ok {
		p.logger.Error("cancel: task not found", zap.String("id", id))
		return false
	}
	if rec.Status() != task.Waiting {
		p.logger.Error("cancel: task not waiting",
			zap.String("id", id),
			zap.String("status", rec.Status().String()),
		)
		return false
	}

	rec.SetStatus(task.Cancelled)
	p.logger.Info("cancelled task", zap.String("id", id))
	return true
}

// Status returns the named task's current status, or task.NotFound if
// the id is unknown.
func (p *Pool) Status(id string) task.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec, ok := p.registry.Lookup(id)
	if !ok {
		return task.NotFound
	}
	return rec.Status()
}

// StatusString is Status rendered as text.
func (p *Pool) StatusString(id string) string {
	return p.Status(id).String()
}

// Shutdown sets the stop flag, wakes all workers, and joins them. Any
// tasks still queued are drained and their handles resolved with
// ErrPoolShutdown. It is idempotent and bounded by ctx: a second call
// simply re-joins the already-stopped pool, and the caller's context
// governs how long the join may take.
func (p *Pool) Shutdown(ctx context.Context) (err error) {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopping = true
		p.mu.Unlock()
		p.logger.Info("shutdown begin")
		p.dispatchCond.Broadcast()
	})

	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				err = multierr.Append(err, panicToError(r))
			}
			close(done)
		}()
		p.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.Lock()
	drained := p.queue.Clear()
	registryLeftover := p.registry.Clear()
	p.metrics.SetQueueDepth(0)
	p.drainCond.Broadcast()
	p.mu.Unlock()

	orphaned := uniqueRecords(drained, registryLeftover)
	for _, rec := range orphaned {
		rec.Orphan(ErrPoolShutdown)
	}

	p.logger.Info("shutdown complete", zap.Int("orphaned", len(orphaned)))
	return err
}

// Stop is a convenience for Shutdown(context.Background()).
func (p *Pool) Stop() { _ = p.Shutdown(context.Background()) }

func panicToError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return errAsPanic{r}
}

type errAsPanic struct{ v any }

func (e errAsPanic) Error() string { return "taskpool: recovered panic during shutdown join" }

// uniqueRecords merges the queue-drain and registry-drain sets,
// de-duplicating records that appear in both (a named, still-Waiting
// task is present in both the queue and the registry at shutdown).
func uniqueRecords(a, b []*task.Record) []*task.Record {
	seen := make(map[*task.Record]struct{}, len(a)+len(b))
	out := make([]*task.Record, 0, len(a)+len(b))
	for _, rec := range a {
		if _, ok := seen[rec]; !ok {
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}
	for _, rec := range b {
		if _, ok := seen[rec]; !ok {
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}
