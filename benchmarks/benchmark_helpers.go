package benchmarks

import (
	"context"
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/utkarsh5026/matmul/engine"
	"github.com/utkarsh5026/matmul/matrix"
)

// routingConfig defines a benchmark configuration for a routing policy
type routingConfig struct {
	name string
	opts []engine.Option
}

// getAllRoutings returns every routing policy with workerCount workers
func getAllRoutings(workerCount int, extra ...engine.Option) []routingConfig {
	out := make([]routingConfig, 0, 3)
	for _, r := range engine.Routings() {
		opts := append([]engine.Option{engine.WithWorkerCount(workerCount), engine.WithRouting(r)}, extra...)
		out = append(out, routingConfig{name: r.String(), opts: opts})
	}
	return out
}

// runRoutingBenchmark runs a benchmark function for all routing policies
func runRoutingBenchmark(b *testing.B, routings []routingConfig, benchFunc func(b *testing.B, r routingConfig)) {
	for _, r := range routings {
		b.Run(r.name, func(b *testing.B) {
			benchFunc(b, r)
		})
	}
}

// startEngine starts an engine for the duration of the benchmark.
func startEngine[T matrix.Numeric](b *testing.B, opts ...engine.Option) *engine.Engine[T] {
	b.Helper()
	e := engine.NewEngine[T](opts...)
	if err := e.Start(context.Background()); err != nil {
		b.Fatalf("Start: %v", err)
	}
	b.Cleanup(func() { _ = e.Shutdown(0) })
	return e
}

// =============================================================================
// Operand Generators
// =============================================================================

// randomFloats builds a rows×cols matrix of uniform values in [-1, 1)
func randomFloats(seed uint64, rows, cols int) *matrix.Matrix[float64] {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return matrix.MustNew(data, rows, cols)
}

// randomInts builds a rows×cols matrix of small integers
func randomInts(seed uint64, rows, cols int) *matrix.Matrix[int] {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := make([]int, rows*cols)
	for i := range data {
		data[i] = rng.IntN(19) - 9
	}
	return matrix.MustNew(data, rows, cols)
}

// reportCells reports throughput in output cells per second.
func reportCells(b *testing.B, cellsPerOp int) {
	b.ReportMetric(float64(cellsPerOp*b.N)/b.Elapsed().Seconds(), "cells/s")
}

// percentile returns the p-th percentile (0..100) of latencies.
func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}
