package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/azargarov/taskpool/task"
)

// scenarioFile is the on-disk shape of a demo workload description.
type scenarioFile struct {
	Pool  poolConfig   `yaml:"pool"`
	Tasks []taskConfig `yaml:"tasks"`
}

type poolConfig struct {
	InitialWorkers int    `yaml:"initial_workers"`
	LogLevel       string `yaml:"log_level"`
}

type taskConfig struct {
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	SleepMillis int    `yaml:"sleep_ms"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	Count       int    `yaml:"count"`
}

func loadScenario(path string) (*scenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("poolctl: read scenario file: %w", err)
	}
	var sf scenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("poolctl: parse scenario file: %w", err)
	}
	if err := sf.validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

func (sf *scenarioFile) validate() error {
	if sf.Pool.InitialWorkers < 0 {
		return fmt.Errorf("poolctl: pool.initial_workers must be non-negative")
	}
	for i, t := range sf.Tasks {
		if _, err := parsePriority(t.Priority); err != nil {
			return fmt.Errorf("poolctl: tasks[%d]: %w", i, err)
		}
		if t.Count < 0 {
			return fmt.Errorf("poolctl: tasks[%d]: count must be non-negative", i)
		}
	}
	return nil
}

func parsePriority(s string) (task.Priority, error) {
	switch s {
	case "", "medium":
		return task.Medium, nil
	case "low":
		return task.Low, nil
	case "high":
		return task.High, nil
	case "critical":
		return task.Critical, nil
	default:
		return task.Medium, fmt.Errorf("unknown priority %q", s)
	}
}

func (t taskConfig) sleep() time.Duration {
	return time.Duration(t.SleepMillis) * time.Millisecond
}

func (t taskConfig) timeout() time.Duration {
	return time.Duration(t.TimeoutMs) * time.Millisecond
}
