package scheduler

import (
	"context"
	"errors"

	"github.com/utkarsh5026/matmul/internal/types"
)

// routeFunc picks the mailbox a task is delivered to.
type routeFunc[T, R any] func(s *partitionedStrategy[T, R], t *types.SubmittedTask[T, R]) int

// partitionedStrategy gives each worker a dedicated, unbounded FIFO mailbox.
// Worker i consumes only boxes[i], so tasks routed to the same worker run
// strictly in submission order.
type partitionedStrategy[T any, R any] struct {
	config *ProcessorConfig[T, R]
	boxes  []*mailbox[*types.SubmittedTask[T, R]]
	route  routeFunc[T, R]
}

func newPartitionedStrategy[T any, R any](conf *ProcessorConfig[T, R], route routeFunc[T, R]) *partitionedStrategy[T, R] {
	s := &partitionedStrategy[T, R]{
		config: conf,
		boxes:  make([]*mailbox[*types.SubmittedTask[T, R]], conf.WorkerCount),
		route:  route,
	}
	for i := range s.boxes {
		s.boxes[i] = newMailbox[*types.SubmittedTask[T, R]]()
	}
	return s
}

// roundRobin routes by the task's own id, so the destination depends only on
// which output cell the task computes, never on arrival order or queue depth.
func roundRobin[T, R any](s *partitionedStrategy[T, R], t *types.SubmittedTask[T, R]) int {
	n := int64(len(s.boxes))
	return int(((t.Id % n) + n) % n)
}

// leastLoaded routes to the mailbox with the fewest queued tasks; ties go to
// the lowest worker id.
func leastLoaded[T, R any](s *partitionedStrategy[T, R], _ *types.SubmittedTask[T, R]) int {
	best, bestLen := 0, s.boxes[0].Len()
	for i := 1; i < len(s.boxes); i++ {
		if l := s.boxes[i].Len(); l < bestLen {
			best, bestLen = i, l
		}
	}
	return best
}

// Submit pushes the task onto the mailbox chosen by the route function.
func (s *partitionedStrategy[T, R]) Submit(task *types.SubmittedTask[T, R]) error {
	return s.boxes[s.route(s, task)].Push(task)
}

// SubmitBatch routes every task individually, then pushes each mailbox's share
// under one lock. It stops at the first closed mailbox.
func (s *partitionedStrategy[T, R]) SubmitBatch(tasks []*types.SubmittedTask[T, R]) (int, error) {
	if s.config.SchedulingStrategy == SchedulingLeastLoaded {
		// Backlogs change as we go; route one at a time.
		for i, t := range tasks {
			if err := s.Submit(t); err != nil {
				return i, err
			}
		}
		return len(tasks), nil
	}

	buckets := make([][]*types.SubmittedTask[T, R], len(s.boxes))
	for _, t := range tasks {
		idx := s.route(s, t)
		buckets[idx] = append(buckets[idx], t)
	}

	submitted := 0
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		n, err := s.boxes[i].PushAll(bucket)
		submitted += n
		if err != nil {
			return submitted, err
		}
	}
	return submitted, nil
}

// Shutdown closes every mailbox. Workers finish what is queued, then exit.
func (s *partitionedStrategy[T, R]) Shutdown() {
	for _, box := range s.boxes {
		box.Close()
	}
}

// Worker runs the event loop for workerID over its own mailbox.
//
// When ctx ends, the mailbox is closed and every task still in it is answered
// with ctx.Err(), so no waiting future is left unresolved.
func (s *partitionedStrategy[T, R]) Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], h types.ResultHandler[T, R]) error {
	box := s.boxes[workerID]
	for {
		t, err := box.Pop(ctx)
		if err != nil {
			if errors.Is(err, errMailboxClosed) {
				debugLog("worker %d: mailbox closed and drained", workerID)
				return nil
			}
			failPending(box.CloseAndDrain(), h, err)
			return err
		}
		_ = executeSubmitted(ctx, t, s.config, executor, h)
	}
}

// Backlog returns the queue length of each worker's mailbox.
func (s *partitionedStrategy[T, R]) Backlog() []int {
	out := make([]int, len(s.boxes))
	for i, box := range s.boxes {
		out[i] = box.Len()
	}
	return out
}
