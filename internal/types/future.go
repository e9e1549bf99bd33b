package types

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Future is a one-shot reply channel. Exactly one Result is ever delivered on
// it; every reader observes that same Result.
//
// Type parameters:
//   - R: The result value type
//   - K: The key type identifying the originating task
type Future[R any, K comparable] struct {
	result chan Result[R, K] // buffered(1), written at most once
	done   chan struct{}     // closed once the result has been received
	once   sync.Once
	sent   atomic.Bool
	ready  atomic.Bool
	value  Result[R, K]
}

// NewFuture creates an unresolved Future.
func NewFuture[R any, K comparable]() *Future[R, K] {
	return &Future[R, K]{
		result: make(chan Result[R, K], 1),
		done:   make(chan struct{}),
	}
}

// Complete delivers r. Only the first call has an effect; it reports whether r
// was accepted. Complete never blocks.
func (f *Future[R, K]) Complete(r Result[R, K]) bool {
	if !f.sent.CompareAndSwap(false, true) {
		return false
	}
	f.result <- r
	return true
}

// Get blocks until the result is available and returns it.
// Subsequent calls return the same result.
//
// Example:
//
//	value, key, err := future.Get()
func (f *Future[R, K]) Get() (R, K, error) {
	select {
	case r := <-f.result:
		f.resolve(r)
	case <-f.done:
	}
	return f.value.Value, f.value.Key, f.value.Error
}

// GetWithContext is like Get but gives up when ctx is done, returning zero
// values and ctx.Err().
func (f *Future[R, K]) GetWithContext(ctx context.Context) (R, K, error) {
	select {
	case r := <-f.result:
		f.resolve(r)
	case <-f.done:
	case <-ctx.Done():
		var zeroR R
		var zeroK K
		return zeroR, zeroK, ctx.Err()
	}
	return f.value.Value, f.value.Key, f.value.Error
}

// GetWithTimeout is GetWithContext with a deadline of d from now.
func (f *Future[R, K]) GetWithTimeout(d time.Duration) (R, K, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return f.GetWithContext(ctx)
}

// TryGet returns the result without blocking. ready is false if no result has
// been delivered yet.
func (f *Future[R, K]) TryGet() (value R, key K, err error, ready bool) {
	select {
	case r := <-f.result:
		f.resolve(r)
	case <-f.done:
	default:
		return value, key, nil, false
	}
	return f.value.Value, f.value.Key, f.value.Error, true
}

// Done returns a channel that is closed once the result has been received by
// one of the Get variants.
func (f *Future[R, K]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the result has been received.
func (f *Future[R, K]) IsReady() bool {
	return f.ready.Load()
}

func (f *Future[R, K]) resolve(r Result[R, K]) {
	f.once.Do(func() {
		f.value = r
		f.ready.Store(true)
		close(f.done)
	})
}
