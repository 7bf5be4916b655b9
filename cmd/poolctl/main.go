// Command poolctl is a small demonstration harness for the taskpool
// library: it loads a YAML task scenario, runs it against a pool, and
// prints the resulting metrics report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/azargarov/taskpool"
	"github.com/azargarov/taskpool/internal/backoff"
	"github.com/azargarov/taskpool/logging"
	"github.com/azargarov/taskpool/task"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML task scenario file")
	flag.Parse()

	sf, err := loadScenarioOrDefault(*scenarioPath)
	if err != nil {
		log.Fatalf("poolctl: %v", err)
	}

	level, err := parseLogLevel(sf.Pool.LogLevel)
	if err != nil {
		log.Fatalf("poolctl: %v", err)
	}

	pool, err := taskpool.New(taskpool.Options{
		InitialWorkers: sf.Pool.InitialWorkers,
		LogLevel:       level,
		LogToConsole:   true,
	})
	if err != nil {
		log.Fatalf("poolctl: %v", err)
	}

	runScenario(pool, sf)

	pool.WaitForIdle()
	fmt.Println(pool.MetricsReport())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		log.Printf("poolctl: shutdown: %v", err)
	}
}

func runScenario(pool *taskpool.Pool, sf *scenarioFile) {
	for _, tc := range sf.Tasks {
		priority, _ := parsePriority(tc.Priority)
		count := tc.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			tc := tc
			id := uuid.NewString()
			submitWithRetry(pool, id, tc, priority)
		}
	}
}

// submitWithRetry recovers from a submission rejected with
// ErrShuttingDown (e.g. during a rolling restart) by retrying with a
// jittered backoff.
func submitWithRetry(pool *taskpool.Pool, id string, tc taskConfig, priority task.Priority) {
	bo := backoff.New(10*time.Millisecond, 200*time.Millisecond, time.Now().UnixNano())

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := taskpool.SubmitWithInfo(pool, id, tc.Description, priority, tc.timeout(), func() (int, error) {
			if tc.SleepMillis > 0 {
				time.Sleep(tc.sleep())
			}
			return 0, nil
		})
		if err == nil {
			return
		}
		if !errors.Is(err, taskpool.ErrShuttingDown) {
			log.Printf("poolctl: submit %s: %v", id, err)
			return
		}
		time.Sleep(bo.Next())
	}
}

func parseLogLevel(s string) (logging.Level, error) {
	switch s {
	case "", "info":
		return logging.LevelInfo, nil
	case "none":
		return logging.None, nil
	case "error":
		return logging.LevelError, nil
	case "warn":
		return logging.LevelWarn, nil
	case "debug":
		return logging.LevelDebug, nil
	default:
		return logging.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func loadScenarioOrDefault(path string) (*scenarioFile, error) {
	if path == "" {
		return defaultScenario(), nil
	}
	return loadScenario(path)
}

func defaultScenario() *scenarioFile {
	return &scenarioFile{
		Pool: poolConfig{InitialWorkers: 2, LogLevel: "info"},
		Tasks: []taskConfig{
			{Description: "background sweep", Priority: "low", SleepMillis: 20, Count: 3},
			{Description: "user request", Priority: "medium", SleepMillis: 10, Count: 5},
			{Description: "alert", Priority: "critical", Count: 1},
		},
	}
}
