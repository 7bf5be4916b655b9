// Package taskpool implements a priority-scheduled worker pool: a
// fixed-to-elastic set of goroutine workers that pull user-supplied
// closures from a shared priority queue, execute them under per-task
// timeout supervision, and resolve one-shot result handles exactly
// once. Lifecycle controls (pause, resume, resize, cancel, drain,
// shutdown) and runtime metrics are exposed alongside.
//
// One mutex guards the priority queue, the task registry, the
// retire-set, and the paused flag; two condition variables coordinate
// dispatch and idle-waiting.
package taskpool

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/azargarov/taskpool/logging"
	"github.com/azargarov/taskpool/metrics"
	"github.com/azargarov/taskpool/pqueue"
	"github.com/azargarov/taskpool/registry"
)

// Pool is a priority-scheduled worker pool. Use New to construct one;
// the zero value is not usable.
type Pool struct {
	mu           sync.Mutex
	dispatchCond *sync.Cond
	drainCond    *sync.Cond

	queue    *pqueue.Queue
	registry *registry.Registry

	paused      bool
	stopping    bool
	stopOnce    sync.Once
	retireSet   map[int]struct{}
	workers     map[int]*workerSlot
	nextID      int
	maxWorkers  int
	wg          sync.WaitGroup

	metrics *metrics.Metrics
	logger  *logging.Logger
}

type workerSlot struct {
	id   int
	done chan struct{}
}

// New constructs a Pool and spawns its initial workers.
func New(opts Options) (*Pool, error) {
	opts.FillDefaults()

	logger, err := logging.New(opts.LogLevel, opts.LogToConsole, opts.LogFilePath)
	if err != nil {
		return nil, err
	}

	max := maxWorkersFor(opts.InitialWorkers)
	initial := opts.InitialWorkers
	if initial > max {
		initial = max
	}

	p := &Pool{
		queue:      pqueue.New(),
		registry:   registry.New(),
		retireSet:  make(map[int]struct{}),
		workers:    make(map[int]*workerSlot),
		maxWorkers: max,
		metrics:    metrics.New(),
		logger:     logger,
	}
	p.dispatchCond = sync.NewCond(&p.mu)
	p.drainCond = sync.NewCond(&p.mu)

	p.logger.Info("pool created",
		zap.Int("initial_workers", initial),
		zap.Int("max_workers", max),
	)

	p.mu.Lock()
	for i := 0; i < initial; i++ {
		p.spawnWorkerLocked()
	}
	p.mu.Unlock()

	return p, nil
}

// spawnWorkerLocked starts a new worker with a fresh id. Callers must
// hold p.mu.
func (p *Pool) spawnWorkerLocked() {
	id := p.nextID
	p.nextID++
	slot := &workerSlot{id: id, done: make(chan struct{})}
	p.workers[id] = slot
	p.wg.Add(1)
	go p.runWorker(slot)
}

// WorkerCount returns the number of live workers.
func (p *Pool) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// ActiveWorkerCount returns the number of workers currently executing
// a task.
func (p *Pool) ActiveWorkerCount() int {
	return int(p.metrics.ActiveWorkers())
}

// WaitingWorkerCount returns WorkerCount - ActiveWorkerCount.
func (p *Pool) WaitingWorkerCount() int {
	return p.WorkerCount() - p.ActiveWorkerCount()
}

// QueueDepth returns the number of tasks currently pending.
func (p *Pool) QueueDepth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// CompletedCount returns the running count of successfully completed
// tasks.
func (p *Pool) CompletedCount() uint64 { return p.metrics.Completed() }

// FailedCount returns the running count of failed tasks. Timed-out
// tasks are counted separately and are not included.
func (p *Pool) FailedCount() uint64 { return p.metrics.Failed() }

// IsStopping reports whether Shutdown has been called.
func (p *Pool) IsStopping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopping
}

// MaxWorkers returns the current worker ceiling.
func (p *Pool) MaxWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxWorkers
}

// MetricsReport returns a formatted multi-line metrics snapshot.
func (p *Pool) MetricsReport() string { return p.metrics.Report() }

func (p *Pool) now() time.Time { return time.Now() }
