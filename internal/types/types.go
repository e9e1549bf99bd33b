package types

import "context"

// ProcessFunc is a function type that defines how individual tasks are processed by a worker.
// It takes a context for cancellation and a task of type T, returning a result of type R.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// Result represents the outcome of processing a single task.
//
// Fields:
//   - Value: The result produced by processing the task (only valid if Error is nil)
//   - Key: The identifier the task was submitted with (the output cell index for products)
//   - Error: Any error that occurred during task processing (nil if successful)
type Result[R any, K comparable] struct {
	Value R
	Key   K
	Error error
}

// NewResult builds a Result and returns a pointer suitable for a ResultHandler.
func NewResult[R any, K comparable](value R, key K, err error) *Result[R, K] {
	return &Result[R, K]{Value: value, Key: key, Error: err}
}

// SubmittedTask pairs a task with the future its reply is delivered on.
// It is the message that crosses from the dispatcher to a worker.
type SubmittedTask[T any, R any] struct {
	Task   T
	Id     int64
	Future *Future[R, int64]
}

// NewSubmittedTask creates a SubmittedTask with a fresh Future.
func NewSubmittedTask[T any, R any](task T, id int64) *SubmittedTask[T, R] {
	return &SubmittedTask[T, R]{
		Task:   task,
		Id:     id,
		Future: NewFuture[R, int64](),
	}
}

// ResultHandler is invoked by a worker once a submitted task has produced a result.
type ResultHandler[T any, R any] func(t *SubmittedTask[T, R], r *Result[R, int64])

// CompleteFuture is the default ResultHandler: it delivers r on the task's future.
func CompleteFuture[T any, R any](t *SubmittedTask[T, R], r *Result[R, int64]) {
	t.Future.Complete(*r)
}
