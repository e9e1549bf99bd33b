package scheduler

import (
	"context"
	"errors"

	"github.com/utkarsh5026/matmul/internal/types"
)

// sharedStrategy routes every task through one multi-consumer mailbox. Idle
// workers pick up whatever is next, which balances skewed workloads at the
// cost of contention on a single lock.
type sharedStrategy[T any, R any] struct {
	config *ProcessorConfig[T, R]
	box    *mailbox[*types.SubmittedTask[T, R]]
}

func newSharedStrategy[T any, R any](conf *ProcessorConfig[T, R]) *sharedStrategy[T, R] {
	return &sharedStrategy[T, R]{
		config: conf,
		box:    newMailbox[*types.SubmittedTask[T, R]](),
	}
}

func (s *sharedStrategy[T, R]) Submit(task *types.SubmittedTask[T, R]) error {
	return s.box.Push(task)
}

func (s *sharedStrategy[T, R]) SubmitBatch(tasks []*types.SubmittedTask[T, R]) (int, error) {
	return s.box.PushAll(tasks)
}

func (s *sharedStrategy[T, R]) Shutdown() {
	s.box.Close()
}

func (s *sharedStrategy[T, R]) Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], h types.ResultHandler[T, R]) error {
	for {
		t, err := s.box.Pop(ctx)
		if err != nil {
			if errors.Is(err, errMailboxClosed) {
				debugLog("worker %d: shared mailbox closed and drained", workerID)
				return nil
			}
			failPending(s.box.CloseAndDrain(), h, err)
			return err
		}
		_ = executeSubmitted(ctx, t, s.config, executor, h)
	}
}

func (s *sharedStrategy[T, R]) Backlog() []int {
	return []int{s.box.Len()}
}
