package engine

import (
	"fmt"

	"github.com/utkarsh5026/matmul/metrics"
)

// Counter names reported to the registry passed to WithMetrics.
const (
	MetricCalls      = "engine.multiply.calls"
	MetricErrors     = "engine.multiply.errors"
	MetricInflight   = "engine.multiply.inflight"
	MetricDispatched = "engine.cells.dispatched"
)

// WorkerMetric returns the name of the counter tracking cells computed by worker id.
func WorkerMetric(id int) string {
	return fmt.Sprintf("worker.%d.cells", id)
}

// MetricNames lists every counter an engine with the given worker count may
// touch. It is meant for metrics.NewFixed.
func MetricNames(workers int) []string {
	names := []string{MetricCalls, MetricErrors, MetricInflight, MetricDispatched}
	for i := range workers {
		names = append(names, WorkerMetric(i))
	}
	return names
}

// recorder forwards counter updates to an optional registry. Registry errors
// never fail a multiplication.
type recorder struct {
	r metrics.Registry
}

func (rec recorder) inc(name string) {
	if rec.r == nil {
		return
	}
	if err := rec.r.Increment(name); err != nil {
		debugLog("metrics: increment %s: %v", name, err)
	}
}

func (rec recorder) dec(name string) {
	if rec.r == nil {
		return
	}
	if err := rec.r.Decrement(name); err != nil {
		debugLog("metrics: decrement %s: %v", name, err)
	}
}
