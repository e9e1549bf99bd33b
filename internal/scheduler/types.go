package scheduler

import (
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// SchedulingStrategyType selects how submitted tasks are routed to workers.
type SchedulingStrategyType int

const (
	// SchedulingRoundRobin gives every worker its own FIFO mailbox and routes
	// task id to worker id % WorkerCount, regardless of load.
	SchedulingRoundRobin SchedulingStrategyType = iota
	// SchedulingShared puts every task on one mailbox that all workers consume.
	SchedulingShared
	// SchedulingLeastLoaded uses per-worker mailboxes but routes each task to
	// the worker with the shortest backlog.
	SchedulingLeastLoaded
)

var strategyNames = map[SchedulingStrategyType]string{
	SchedulingRoundRobin:  "round-robin",
	SchedulingShared:      "shared",
	SchedulingLeastLoaded: "least-loaded",
}

// String returns the name used in config files and CLI flags.
func (s SchedulingStrategyType) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SchedulingStrategyType(%d)", int(s))
}

// ParseStrategy maps a name produced by String back to its type.
func ParseStrategy(name string) (SchedulingStrategyType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range strategyNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown scheduling strategy %q (want round-robin, shared or least-loaded)", name)
}

// AllStrategies lists every strategy in declaration order.
func AllStrategies() []SchedulingStrategyType {
	return []SchedulingStrategyType{SchedulingRoundRobin, SchedulingShared, SchedulingLeastLoaded}
}

// ProcessorConfig holds all configuration for a pool of workers and task scheduling.
type ProcessorConfig[T, R any] struct {
	// Number of worker goroutines in the pool.
	WorkerCount int

	// The scheduling strategy used for distributing tasks.
	SchedulingStrategy SchedulingStrategyType

	// Optional token bucket rate limiter applied per task (may be nil).
	RateLimiter *rate.Limiter

	// Hook called before a task starts.
	BeforeTaskStart func(T)

	// Hook called after a task ends (receives the input, result, and error if any).
	OnTaskEnd func(T, R, error)
}
