package scheduler

import (
	"context"
	"errors"

	"github.com/utkarsh5026/matmul/internal/types"
)

// SchedulingStrategy defines the behavior for distributing tasks to workers.
type SchedulingStrategy[T any, R any] interface {
	// Submit accepts a task into the scheduling system.
	// It decides which queue the task lands on.
	Submit(task *types.SubmittedTask[T, R]) error

	// SubmitBatch accepts multiple tasks at once.
	// Returns the number of tasks successfully submitted and an error if any occurred.
	SubmitBatch(tasks []*types.SubmittedTask[T, R]) (int, error)

	// Shutdown closes the queues. Workers drain what is already queued and exit.
	Shutdown()

	// Worker runs the event loop of one worker until its queue is closed and
	// drained (nil) or ctx is done (ctx.Err()).
	Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], resHandler types.ResultHandler[T, R]) error

	// Backlog returns the number of queued tasks per queue.
	Backlog() []int
}

// CreateSchedulingStrategy builds the strategy selected by conf.
func CreateSchedulingStrategy[T, R any](conf *ProcessorConfig[T, R]) (SchedulingStrategy[T, R], error) {
	if conf.WorkerCount <= 0 {
		return nil, errors.New("worker count must be positive")
	}

	switch conf.SchedulingStrategy {
	case SchedulingShared:
		return newSharedStrategy(conf), nil

	case SchedulingLeastLoaded:
		return newPartitionedStrategy(conf, leastLoaded[T, R]), nil

	case SchedulingRoundRobin:
		return newPartitionedStrategy(conf, roundRobin[T, R]), nil

	default:
		return nil, errors.New("unknown scheduling strategy: " + conf.SchedulingStrategy.String())
	}
}
