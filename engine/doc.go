// Package engine multiplies dense matrices on a long-lived pool of worker
// goroutines.
//
// Each output cell C[i][j] is an independent dot product of row i of A and
// column j of B. The engine turns every cell into a work item carrying owned
// copies of both vectors, routes it to a worker, and collects the scalar
// replies into the output buffer by cell index. Replies are awaited in
// submission order, so the result is the same however the workers interleave.
//
// # Quick Start
//
//	eng := engine.NewEngine[float64](engine.WithWorkerCount(8))
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Shutdown(5 * time.Second)
//
//	c, err := eng.Multiply(ctx, a, b)
//
// For a one-off product, the package-level Multiply starts and stops a
// private engine around a single call:
//
//	c, err := engine.Multiply(ctx, a, b, engine.WithWorkerCount(4))
//
// # Routing
//
// By default cell idx = i*B.Cols()+j goes to worker idx % P, regardless of
// load (WithRouting(RoutingRoundRobin)). RoutingLeastLoaded picks the worker
// with the shortest backlog and RoutingShared puts every cell on one queue
// that all workers consume. The product does not depend on the policy.
//
// # Errors
//
// Errors are matched with errors.Is against the matrix package sentinels:
//
//   - matrix.ErrInvalidDimensions: A.Cols() != B.Rows(). Nothing is dispatched.
//   - matrix.ErrLengthMismatch: a worker was handed vectors of unequal length.
//   - matrix.ErrChannelFailure: a reply was never delivered. A worker panicked,
//     the engine stopped, or ctx ended. Context errors are wrapped as well, so
//     errors.Is(err, context.Canceled) also holds.
//
// A failed call never returns a partial matrix.
//
// # Metrics
//
// WithMetrics attaches a metrics.Registry. The engine counts calls, errors,
// in-flight calls, dispatched cells and cells per worker; see MetricNames.
package engine
