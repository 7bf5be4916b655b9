package metrics

import (
	"strings"
	"testing"
)

func TestCountersAccumulate(t *testing.T) {
	m := New()
	m.IncTotalSubmitted()
	m.IncTotalSubmitted()
	m.IncCompleted()
	m.IncFailed()
	m.IncTimedOut()

	if got := m.TotalSubmitted(); got != 2 {
		t.Fatalf("TotalSubmitted() = %d; want 2", got)
	}
	if got := m.Completed(); got != 1 {
		t.Fatalf("Completed() = %d; want 1", got)
	}
	if got := m.Failed(); got != 1 {
		t.Fatalf("Failed() = %d; want 1", got)
	}
	if got := m.TimedOut(); got != 1 {
		t.Fatalf("TimedOut() = %d; want 1", got)
	}
}

func TestGaugesTrackPeak(t *testing.T) {
	m := New()

	m.SetActiveWorkers(3)
	m.SetActiveWorkers(1)
	if got := m.ActiveWorkers(); got != 1 {
		t.Fatalf("ActiveWorkers() = %d; want 1", got)
	}
	if got := m.PeakActiveWorkers(); got != 3 {
		t.Fatalf("PeakActiveWorkers() = %d; want 3 (peak must not regress)", got)
	}

	m.SetQueueDepth(5)
	m.SetQueueDepth(0)
	if got := m.QueueDepth(); got != 0 {
		t.Fatalf("QueueDepth() = %d; want 0", got)
	}
	if got := m.PeakQueueDepth(); got != 5 {
		t.Fatalf("PeakQueueDepth() = %d; want 5", got)
	}
}

func TestNegativeExecNanosIgnored(t *testing.T) {
	m := New()
	m.AddExecNanos(-1)
	m.IncCompleted()
	if got := m.averageExecMillis(); got != 0 {
		t.Fatalf("averageExecMillis() = %f; want 0 after a negative AddExecNanos", got)
	}
}

func TestReportContainsAllFields(t *testing.T) {
	m := New()
	m.IncTotalSubmitted()
	m.IncCompleted()
	m.AddExecNanos(1_000_000)

	report := m.Report()
	for _, want := range []string{
		"uptime:", "total submitted:", "completed:", "failed:",
		"timed out:", "active workers:", "peak active workers:",
		"queue depth:", "peak queue depth:", "average task exec time:",
		"throughput:",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("Report() missing %q:\n%s", want, report)
		}
	}
}
