package engine

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/utkarsh5026/matmul/matrix"
)

// routingConfig names one routing policy under test.
type routingConfig struct {
	name string
	opts []Option
}

// getAllRoutings returns one configuration per routing policy.
func getAllRoutings(workerCount int, additionalOpts ...Option) []routingConfig {
	var out []routingConfig
	for _, r := range Routings() {
		opts := append([]Option{WithWorkerCount(workerCount), WithRouting(r)}, additionalOpts...)
		out = append(out, routingConfig{name: r.String(), opts: opts})
	}
	return out
}

// runRoutingTest runs testFunc once per routing policy.
func runRoutingTest(t *testing.T, testFunc func(t *testing.T, rc routingConfig), workerCount int, additionalOpts ...Option) {
	for _, rc := range getAllRoutings(workerCount, additionalOpts...) {
		t.Run(rc.name, func(t *testing.T) {
			testFunc(t, rc)
		})
	}
}

// startEngine builds and starts an engine and registers its shutdown.
func startEngine[T matrix.Numeric](t *testing.T, opts ...Option) *Engine[T] {
	t.Helper()
	e := NewEngine[T](opts...)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = e.Shutdown(5 * time.Second) })
	return e
}

func randomMatrix(rng *rand.Rand, rows, cols int) *matrix.Matrix[int] {
	data := make([]int, rows*cols)
	for i := range data {
		data[i] = rng.IntN(201) - 100
	}
	return matrix.MustNew(data, rows, cols)
}

// jitter wraps the cell computation with a random delay so replies complete
// out of order.
func jitter[T matrix.Numeric](e *Engine[T], maxDelay time.Duration) {
	e.compute = func(ctx context.Context, c Cell[T]) (T, error) {
		time.Sleep(time.Duration(rand.Int64N(int64(maxDelay) + 1)))
		return computeCell(ctx, c)
	}
}
