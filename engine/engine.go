package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/matmul/internal/cpu"
	"github.com/utkarsh5026/matmul/internal/scheduler"
	"github.com/utkarsh5026/matmul/internal/types"
	"github.com/utkarsh5026/matmul/matrix"
	"golang.org/x/sync/errgroup"
)

// Engine is a long-running, reusable matrix multiplier. It owns a fixed set
// of worker goroutines created by Start and joined by Shutdown; any number of
// Multiply calls, including concurrent ones, share them in between.
//
// Type parameters:
//   - T: The matrix element type
type Engine[T matrix.Numeric] struct {
	cfg   *engineConfig
	pconf *scheduler.ProcessorConfig[Cell[T], T]
	rec   recorder
	// compute produces one cell's value; tests swap it to inject faults.
	compute types.ProcessFunc[Cell[T], T]
	mu      sync.RWMutex
	state   *engineState[T]
}

// engineState holds the runtime state of a started engine.
type engineState[T matrix.Numeric] struct {
	cancel   context.CancelFunc
	started  atomic.Bool
	shutdown atomic.Bool
	strategy scheduler.SchedulingStrategy[Cell[T], T]
	done     chan struct{} // Closed when all workers have exited
}

// NewEngine creates an engine configured by opts. No workers run until Start.
//
// Default configuration:
//   - workers: DefaultWorkerCount (4)
//   - routing: RoutingRoundRobin
//   - no rate limit, no CPU pinning, no call timeout, no metrics
//
// NewEngine panics if a hook option was registered for a different element type.
//
// Example:
//
//	eng := NewEngine[int](WithWorkerCount(8), WithRouting(RoutingLeastLoaded))
func NewEngine[T matrix.Numeric](opts ...Option) *Engine[T] {
	cfg := createConfig(opts...)
	return &Engine[T]{
		cfg:     cfg,
		pconf:   processorConfig[T](cfg),
		rec:     recorder{r: cfg.registry},
		compute: computeCell[T],
	}
}

// Start launches the workers. ctx bounds their lifetime: once it is done,
// queued cells fail and the engine stops accepting work.
//
// Returns an error if the engine was already started, even if it has since
// been shut down.
func (e *Engine[T]) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != nil && e.state.started.Load() {
		return ErrAlreadyStarted
	}

	strategy, err := scheduler.CreateSchedulingStrategy(e.pconf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	state := &engineState[T]{
		strategy: strategy,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	e.state = state
	state.started.Store(true)

	var g errgroup.Group
	for i := range e.cfg.workerCount {
		g.Go(func() error {
			return e.runWorker(ctx, state, i)
		})
	}

	go func() {
		err := g.Wait()
		cancel()
		close(state.done)
		debugLog("all %d workers exited (err=%v)", e.cfg.workerCount, err)
	}()

	debugLog("started %d workers, routing=%s", e.cfg.workerCount, e.cfg.routing)
	return nil
}

func (e *Engine[T]) runWorker(ctx context.Context, state *engineState[T], id int) error {
	if e.cfg.pinWorkers {
		release, err := cpu.PinWorker(id)
		if err != nil {
			debugLog("worker %d: %v", id, err)
		}
		defer release()
	}

	counter := WorkerMetric(id)
	process := func(ctx context.Context, c Cell[T]) (T, error) {
		e.rec.inc(counter)
		return e.compute(ctx, c)
	}

	return state.strategy.Worker(ctx, int64(id), process, types.CompleteFuture[Cell[T], T])
}

// Multiply computes a·b on the engine's workers.
//
// Dimensions are checked before anything is dispatched. Every cell becomes one
// work item; replies are awaited in submission order and written by index.
// Any failure discards the partial result. See the package documentation for
// the errors returned.
func (e *Engine[T]) Multiply(ctx context.Context, a, b *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	e.rec.inc(MetricCalls)
	e.rec.inc(MetricInflight)
	defer e.rec.dec(MetricInflight)

	c, err := e.multiply(ctx, a, b)
	if err != nil {
		e.rec.inc(MetricErrors)
		debugLog("multiply failed: %v", err)
		return nil, err
	}
	return c, nil
}

// MustMultiply is like Multiply with a background context but panics with
// the error Multiply would have returned.
func (e *Engine[T]) MustMultiply(a, b *matrix.Matrix[T]) *matrix.Matrix[T] {
	c, err := e.Multiply(context.Background(), a, b)
	if err != nil {
		panic(err)
	}
	return c
}

func (e *Engine[T]) multiply(ctx context.Context, a, b *matrix.Matrix[T]) (*matrix.Matrix[T], error) {
	if err := matrix.CheckProduct(a, b); err != nil {
		return nil, err
	}

	state, err := e.running()
	if err != nil {
		return nil, err
	}

	if e.cfg.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.callTimeout)
		defer cancel()
	}

	rows, cols := a.Rows(), b.Cols()
	tasks := make([]*types.SubmittedTask[Cell[T], T], 0, rows*cols)

	// Submit one row of the output at a time so workers start while the rest
	// is still being gathered.
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", matrix.ErrChannelFailure, err)
		}

		batch := make([]*types.SubmittedTask[Cell[T], T], cols)
		for j := range cols {
			cell, err := newCell(a, b, i, j)
			if err != nil {
				return nil, err
			}
			batch[j] = types.NewSubmittedTask[Cell[T], T](cell, int64(cell.Index))
		}

		n, err := state.strategy.SubmitBatch(batch)
		for range n {
			e.rec.inc(MetricDispatched)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: submit row %d: %w", matrix.ErrChannelFailure, i, err)
		}
		tasks = append(tasks, batch...)
	}

	data := make([]T, rows*cols)
	for _, t := range tasks {
		v, key, err := t.Future.GetWithContext(ctx)
		if err != nil {
			return nil, replyError(t.Id, err)
		}
		data[key] = v
	}

	return matrix.New(data, rows, cols)
}

// replyError classifies the error carried by (or raised while waiting for)
// the reply of cell id.
func replyError(id int64, err error) error {
	if errors.Is(err, matrix.ErrLengthMismatch) {
		return fmt.Errorf("cell %d: %w", id, err)
	}
	return fmt.Errorf("%w: cell %d: %w", matrix.ErrChannelFailure, id, err)
}

// running returns the state of a started, not yet shut down engine.
func (e *Engine[T]) running() (*engineState[T], error) {
	e.mu.RLock()
	state := e.state
	e.mu.RUnlock()

	if state == nil || !state.started.Load() {
		return nil, ErrNotStarted
	}
	if state.shutdown.Load() {
		return nil, fmt.Errorf("%w: %w", matrix.ErrChannelFailure, ErrAlreadyShutDown)
	}
	return state, nil
}

// Shutdown stops accepting new cells, lets workers drain what is queued and
// waits for them to exit.
//
// Parameters:
//   - timeout: Maximum duration to wait (0 = wait forever). When it expires the
//     workers are cancelled, queued cells fail, and ErrShutdownTimeout is
//     returned at once. Cells already running finish in the background.
//
// Example:
//
//	eng.Start(ctx)
//	defer eng.Shutdown(10 * time.Second)
func (e *Engine[T]) Shutdown(timeout time.Duration) error {
	e.mu.Lock()
	state := e.state
	if state == nil || !state.started.Load() {
		e.mu.Unlock()
		return ErrNotStarted
	}

	if !state.shutdown.CompareAndSwap(false, true) {
		e.mu.Unlock()
		return ErrAlreadyShutDown
	}
	e.mu.Unlock()

	// Workers drain their queues and exit.
	state.strategy.Shutdown()

	if err := waitUntil(state.done, timeout); err != nil {
		state.cancel()
		return err
	}
	return nil
}

// Workers returns the configured number of workers.
func (e *Engine[T]) Workers() int {
	return e.cfg.workerCount
}

// Backlog returns the number of queued cells per queue, or nil before Start.
// Round-robin and least-loaded routing report one entry per worker; shared
// routing reports a single queue.
func (e *Engine[T]) Backlog() []int {
	e.mu.RLock()
	state := e.state
	e.mu.RUnlock()

	if state == nil {
		return nil
	}
	return state.strategy.Backlog()
}

// Multiply computes a·b on a private engine built from opts, which is started
// before the call and shut down after it.
func Multiply[T matrix.Numeric](ctx context.Context, a, b *matrix.Matrix[T], opts ...Option) (*matrix.Matrix[T], error) {
	if err := matrix.CheckProduct(a, b); err != nil {
		return nil, err
	}

	e := NewEngine[T](opts...)
	if err := e.Start(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = e.Shutdown(0) }()

	return e.Multiply(ctx, a, b)
}

// waitUntil blocks until d is closed or timeout elapses (0 = no timeout).
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
