package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/utkarsh5026/matmul/engine"
	"github.com/utkarsh5026/matmul/matrix"
	"github.com/utkarsh5026/matmul/metrics"
)

// =============================================================================
// Throughput
// =============================================================================

func BenchmarkComprehensive_ThroughputWorkerScaling(b *testing.B) {
	x, y := randomFloats(1, 64, 64), randomFloats(2, 64, 64)

	for _, workers := range []int{1, 2, 4, 8, 16} {
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			e := startEngine[float64](b, engine.WithWorkerCount(workers))
			b.ResetTimer()
			for b.Loop() {
				if _, err := e.Multiply(context.Background(), x, y); err != nil {
					b.Fatal(err)
				}
			}
			reportCells(b, 64*64)
		})
	}
}

func BenchmarkComprehensive_ThroughputSizeScaling(b *testing.B) {
	for _, n := range []int{8, 32, 64, 128} {
		x, y := randomFloats(3, n, n), randomFloats(4, n, n)
		b.Run(fmt.Sprintf("Size_%d", n), func(b *testing.B) {
			e := startEngine[float64](b, engine.WithWorkerCount(8))
			b.ResetTimer()
			for b.Loop() {
				if _, err := e.Multiply(context.Background(), x, y); err != nil {
					b.Fatal(err)
				}
			}
			reportCells(b, n*n)
		})
	}
}

// =============================================================================
// Features
// =============================================================================

func BenchmarkComprehensive_FeaturesBaseline(b *testing.B) {
	x, y := randomInts(5, 32, 32), randomInts(6, 32, 32)
	e := startEngine[int](b, engine.WithWorkerCount(4))

	for b.Loop() {
		_, _ = e.Multiply(context.Background(), x, y)
	}
}

func BenchmarkComprehensive_FeaturesWithHooks(b *testing.B) {
	x, y := randomInts(5, 32, 32), randomInts(6, 32, 32)
	e := startEngine[int](b,
		engine.WithWorkerCount(4),
		engine.WithBeforeCell(func(engine.Cell[int]) {}),
		engine.WithOnCellEnd(func(engine.Cell[int], int, error) {}),
	)

	for b.Loop() {
		_, _ = e.Multiply(context.Background(), x, y)
	}
}

func BenchmarkComprehensive_FeaturesWithMetrics(b *testing.B) {
	x, y := randomInts(5, 32, 32), randomInts(6, 32, 32)

	registries := []struct {
		name string
		reg  metrics.Registry
	}{
		{"Map", metrics.NewMap()},
		{"Fixed", metrics.NewFixed(engine.MetricNames(4)...)},
		{"Sharded", metrics.NewSharded(16)},
	}

	for _, r := range registries {
		b.Run(r.name, func(b *testing.B) {
			e := startEngine[int](b, engine.WithWorkerCount(4), engine.WithMetrics(r.reg))
			for b.Loop() {
				_, _ = e.Multiply(context.Background(), x, y)
			}
		})
	}
}

func BenchmarkComprehensive_FeaturesWithCPUAffinity(b *testing.B) {
	x, y := randomFloats(7, 64, 64), randomFloats(8, 64, 64)

	for _, pinned := range []bool{false, true} {
		b.Run(fmt.Sprintf("Pinned_%t", pinned), func(b *testing.B) {
			e := startEngine[float64](b, engine.WithWorkerCount(4), engine.WithCPUAffinity(pinned))
			for b.Loop() {
				_, _ = e.Multiply(context.Background(), x, y)
			}
		})
	}
}

// =============================================================================
// Memory
// =============================================================================

func BenchmarkComprehensive_MemoryAllocationPerCell(b *testing.B) {
	x, y := randomFloats(9, 16, 16), randomFloats(10, 16, 16)
	e := startEngine[float64](b, engine.WithWorkerCount(4))

	b.ReportAllocs()
	for b.Loop() {
		_, _ = e.Multiply(context.Background(), x, y)
	}
}

// =============================================================================
// Latency
// =============================================================================

func BenchmarkComprehensive_LatencyDistribution(b *testing.B) {
	x, y := randomFloats(11, 32, 32), randomFloats(12, 32, 32)
	e := startEngine[float64](b, engine.WithWorkerCount(4))

	latencies := make([]time.Duration, 0, 1024)
	for b.Loop() {
		start := time.Now()
		_, _ = e.Multiply(context.Background(), x, y)
		latencies = append(latencies, time.Since(start))
	}

	b.ReportMetric(float64(percentile(latencies, 50).Microseconds()), "p50-µs")
	b.ReportMetric(float64(percentile(latencies, 95).Microseconds()), "p95-µs")
	b.ReportMetric(float64(percentile(latencies, 99).Microseconds()), "p99-µs")
}

// =============================================================================
// Comparison
// =============================================================================

func BenchmarkComprehensive_ComparisonSequential(b *testing.B) {
	x, y := randomFloats(13, 64, 64), randomFloats(14, 64, 64)

	for b.Loop() {
		_, _ = matrix.MultiplyNaive(x, y)
	}
	reportCells(b, 64*64)
}

func BenchmarkComprehensive_ComparisonEngine(b *testing.B) {
	x, y := randomFloats(13, 64, 64), randomFloats(14, 64, 64)
	e := startEngine[float64](b, engine.WithWorkerCount(8))

	for b.Loop() {
		_, _ = e.Multiply(context.Background(), x, y)
	}
	reportCells(b, 64*64)
}

// BenchmarkComprehensive_ComparisonOneShot measures the package-level
// Multiply, which pays for starting and joining workers on every call.
func BenchmarkComprehensive_ComparisonOneShot(b *testing.B) {
	x, y := randomFloats(13, 64, 64), randomFloats(14, 64, 64)

	for b.Loop() {
		_, _ = engine.Multiply(context.Background(), x, y, engine.WithWorkerCount(8))
	}
	reportCells(b, 64*64)
}
