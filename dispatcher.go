package taskpool

import (
	"time"

	"go.uber.org/zap"

	"github.com/azargarov/taskpool/task"
)

// runWorker is the per-worker dispatch loop: wait, acquire, execute,
// repeat until told to exit.
func (p *Pool) runWorker(slot *workerSlot) {
	defer p.wg.Done()

	p.logger.Debug("worker started", zap.Int("worker_id", slot.id))

	for {
		rec, exit := p.acquire(slot)
		if exit {
			return
		}
		if rec == nil {
			continue
		}

		p.execute(slot, rec)
	}
}

// acquire waits for runnable work (or a reason to exit), then pops and
// claims the next non-cancelled record. Callers get (nil, false) if
// they should simply loop back to wait (the queue went empty mid-drain).
func (p *Pool) acquire(slot *workerSlot) (rec *task.Record, exit bool) {
	p.mu.Lock()

	for {
		if p.stopping {
			break
		}
		if _, retiring := p.retireSet[slot.id]; retiring {
			break
		}
		if !p.paused && p.queue.Len() > 0 {
			break
		}
		p.dispatchCond.Wait()
	}

	if p.stopping {
		delete(p.workers, slot.id)
		p.mu.Unlock()
		p.logger.Debug("worker exiting: pool stopped", zap.Int("worker_id", slot.id))
		close(slot.done)
		return nil, true
	}

	if _, retiring := p.retireSet[slot.id]; retiring {
		delete(p.retireSet, slot.id)
		delete(p.workers, slot.id)
		p.mu.Unlock()
		p.logger.Debug("worker exiting: retired", zap.Int("worker_id", slot.id))
		close(slot.done)
		return nil, true
	}

	for {
		candidate, ok := p.queue.Pop()
		if !ok {
			p.metrics.SetQueueDepth(0)
			p.mu.Unlock()
			return nil, false
		}

		if candidate.ID != "" {
			if cur, found := p.registry.Lookup(candidate.ID); found && cur.Status() == task.Cancelled {
				p.registry.Remove(candidate.ID)
				p.metrics.SetQueueDepth(int64(p.queue.Len()))
				p.logger.Debug("skipping cancelled task", zap.String("id", candidate.ID))
				continue
			}
		}

		candidate.SetStatus(task.Running)
		p.metrics.SetQueueDepth(int64(p.queue.Len()))
		p.metrics.SetActiveWorkers(p.metrics.ActiveWorkers() + 1)
		p.mu.Unlock()
		p.logger.Debug("worker acquired task",
			zap.Int("worker_id", slot.id),
			zap.String("id", candidate.ID),
			zap.String("description", candidate.Description),
		)
		return candidate, false
	}
}

// execute runs rec's thunk outside the queue lock, records its
// execution time, then records the terminal status and registry
// cleanup under the lock.
func (p *Pool) execute(slot *workerSlot, rec *task.Record) {
	start := time.Now()
	status, errMsg := rec.Run()
	elapsed := time.Since(start)

	p.metrics.AddExecNanos(elapsed.Nanoseconds())

	p.mu.Lock()
	p.metrics.SetActiveWorkers(p.metrics.ActiveWorkers() - 1)
	rec.SetStatus(status)
	rec.SetErr(errMsg)
	if status == task.Completed {
		p.metrics.IncCompleted()
	}
	if rec.ID != "" {
		p.registry.Remove(rec.ID)
	}
	p.drainCond.Broadcast()
	p.mu.Unlock()

	p.logger.Debug("task completed",
		zap.Int("worker_id", slot.id),
		zap.String("id", rec.ID),
		zap.String("status", status.String()),
		zap.Duration("elapsed", elapsed),
	)
}
