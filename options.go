package taskpool

import (
	"runtime"

	"github.com/azargarov/taskpool/logging"
)

// Options configures a new Pool.
type Options struct {
	// InitialWorkers is the number of workers spawned at construction.
	// It is clamped to MaxWorkers after defaults are applied.
	InitialWorkers int

	// LogLevel filters which log events the pool emits.
	LogLevel logging.Level

	// LogToConsole enables writing log events to stdout.
	LogToConsole bool

	// LogFilePath, if non-empty, tees log events to this file.
	LogFilePath string
}

// FillDefaults normalizes zero-value fields so a caller never has to
// specify every field.
func (o *Options) FillDefaults() {
	if o.InitialWorkers <= 0 {
		o.InitialWorkers = runtime.GOMAXPROCS(0)
	}
}

// maxWorkersFor derives the pool's worker ceiling:
// max(initial*2, hardware parallelism).
func maxWorkersFor(initial int) int {
	hw := runtime.GOMAXPROCS(0)
	if initial*2 > hw {
		return initial * 2
	}
	return hw
}
