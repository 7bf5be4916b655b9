// Package metrics provides the pool's atomic counters, peak-tracking
// gauges, and text report formatter.
package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics holds the pool's runtime counters and gauges. All methods
// are safe for concurrent use; reads are relaxed and may observe
// slightly stale values.
type Metrics struct {
	totalSubmitted atomic.Uint64
	completed      atomic.Uint64
	failed         atomic.Uint64
	timedOut       atomic.Uint64
	totalExecNanos atomic.Uint64

	_ [40]byte // padding to avoid false sharing with the gauges below

	activeWorkers     atomic.Int64
	peakActiveWorkers atomic.Int64
	queueDepth        atomic.Int64
	peakQueueDepth    atomic.Int64

	startTime time.Time
}

// New returns a Metrics whose start time is now.
func New() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func casPeak(peak *atomic.Int64, v int64) {
	for {
		cur := peak.Load()
		if v <= cur {
			return
		}
		if peak.CompareAndSwap(cur, v) {
			return
		}
	}
}

// IncTotalSubmitted records a new submission.
func (m *Metrics) IncTotalSubmitted() { m.totalSubmitted.Add(1) }

// TotalSubmitted returns the running submission count.
func (m *Metrics) TotalSubmitted() uint64 { return m.totalSubmitted.Load() }

// IncCompleted records a successful task completion.
func (m *Metrics) IncCompleted() { m.completed.Add(1) }

// Completed returns the running completed-task count.
func (m *Metrics) Completed() uint64 { return m.completed.Load() }

// IncFailed records a task that failed (not via timeout).
func (m *Metrics) IncFailed() { m.failed.Add(1) }

// Failed returns the running failed-task count.
func (m *Metrics) Failed() uint64 { return m.failed.Load() }

// IncTimedOut records a task whose timeout elapsed.
func (m *Metrics) IncTimedOut() { m.timedOut.Add(1) }

// TimedOut returns the running timed-out-task count.
func (m *Metrics) TimedOut() uint64 { return m.timedOut.Load() }

// AddExecNanos accumulates task execution time.
func (m *Metrics) AddExecNanos(n int64) {
	if n < 0 {
		return
	}
	m.totalExecNanos.Add(uint64(n))
}

// SetActiveWorkers records the current number of executing workers and
// updates the observed peak.
func (m *Metrics) SetActiveWorkers(n int64) {
	m.activeWorkers.Store(n)
	casPeak(&m.peakActiveWorkers, n)
}

// ActiveWorkers returns the current active-worker gauge.
func (m *Metrics) ActiveWorkers() int64 { return m.activeWorkers.Load() }

// PeakActiveWorkers returns the highest active-worker count observed.
func (m *Metrics) PeakActiveWorkers() int64 { return m.peakActiveWorkers.Load() }

// SetQueueDepth records the current queue length and updates the
// observed peak.
func (m *Metrics) SetQueueDepth(n int64) {
	m.queueDepth.Store(n)
	casPeak(&m.peakQueueDepth, n)
}

// QueueDepth returns the current queue-depth gauge.
func (m *Metrics) QueueDepth() int64 { return m.queueDepth.Load() }

// PeakQueueDepth returns the highest queue depth observed.
func (m *Metrics) PeakQueueDepth() int64 { return m.peakQueueDepth.Load() }

func (m *Metrics) averageExecMillis() float64 {
	completed := m.completed.Load()
	if completed == 0 {
		return 0
	}
	return float64(m.totalExecNanos.Load()) / float64(completed) / 1e6
}

func (m *Metrics) uptime() time.Duration {
	return time.Since(m.startTime)
}

func (m *Metrics) throughput() float64 {
	uptime := m.uptime().Seconds()
	if uptime <= 0 {
		return 0
	}
	return float64(m.completed.Load()) / uptime
}

// Report renders a multi-line, human-readable snapshot of the pool's
// metrics.
func (m *Metrics) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "worker pool metrics report:\n")
	fmt.Fprintf(&b, "  uptime: %s\n", m.uptime().Round(time.Millisecond))
	fmt.Fprintf(&b, "  total submitted: %d\n", m.TotalSubmitted())
	fmt.Fprintf(&b, "  completed: %d\n", m.Completed())
	fmt.Fprintf(&b, "  failed: %d\n", m.Failed())
	fmt.Fprintf(&b, "  timed out: %d\n", m.TimedOut())
	fmt.Fprintf(&b, "  active workers: %d\n", m.ActiveWorkers())
	fmt.Fprintf(&b, "  peak active workers: %d\n", m.PeakActiveWorkers())
	fmt.Fprintf(&b, "  queue depth: %d\n", m.QueueDepth())
	fmt.Fprintf(&b, "  peak queue depth: %d\n", m.PeakQueueDepth())
	fmt.Fprintf(&b, "  average task exec time: %.3f ms\n", m.averageExecMillis())
	fmt.Fprintf(&b, "  throughput: %.3f tasks/sec\n", m.throughput())
	return b.String()
}
