package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/matmul/internal/types"
)

var (
	ErrSchedulerClosed error = errors.New("scheduler is closed")

	// ErrWorkerPanic wraps a panic recovered while a worker ran a task.
	ErrWorkerPanic = errors.New("worker panic")
)

// executeSubmitted executes a submitted task and hands the result to the handler,
// which normally completes the task's future.
func executeSubmitted[T, R any](ctx context.Context, s *types.SubmittedTask[T, R], conf *ProcessorConfig[T, R], executor types.ProcessFunc[T, R], handler types.ResultHandler[T, R]) error {
	result, err := executeTask(ctx, conf, s.Task, executor)
	handler(s, types.NewResult(result, s.Id, err))
	return err
}

// executeTask encapsulates the common logic for executing a task with hooks, rate limiting, and processing.
// It handles rate limiting, hook execution (BeforeTaskStart and OnTaskEnd), and panic recovery.
func executeTask[T, R any](
	ctx context.Context,
	conf *ProcessorConfig[T, R],
	task T,
	processFn types.ProcessFunc[T, R],
) (R, error) {
	if conf.RateLimiter != nil {
		if err := conf.RateLimiter.Wait(ctx); err != nil {
			var zero R
			// Rate limiter's error doesn't wrap context errors, so check context explicitly
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, err
		}
	}

	if conf.BeforeTaskStart != nil {
		conf.BeforeTaskStart(task)
	}

	result, err := processWithRecovery(ctx, task, processFn)

	if conf.OnTaskEnd != nil {
		conf.OnTaskEnd(task, result, err)
	}

	return result, err
}

// processWithRecovery executes a task with panic recovery.
// A panic is converted to an error wrapping ErrWorkerPanic so the worker
// survives and the waiting future still gets an answer.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn types.ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}

// failPending answers every task in pending with err.
func failPending[T, R any](pending []*types.SubmittedTask[T, R], h types.ResultHandler[T, R], err error) {
	if len(pending) > 0 {
		debugLog("failing %d pending tasks: %v", len(pending), err)
	}
	var zero R
	for _, t := range pending {
		h(t, types.NewResult(zero, t.Id, err))
	}
}
