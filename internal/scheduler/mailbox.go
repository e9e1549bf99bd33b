package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
)

var errMailboxClosed = errors.New("mailbox closed")

// mailbox is an unbounded FIFO queue with a blocking, context-aware Pop.
//
// Items live in an eapache/queue ring buffer guarded by mu. Consumers park on
// wake, a 1-slot channel that producers signal without blocking; a consumer
// that leaves items behind re-signals so parked peers are not starved.
// Close closes wake, which releases every parked consumer.
type mailbox[T any] struct {
	mu     sync.Mutex
	items  *queue.Queue
	wake   chan struct{}
	closed bool
	size   atomic.Int64
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{
		items: queue.New(),
		wake:  make(chan struct{}, 1),
	}
}

// Push appends v. It never blocks; it fails only once the mailbox is closed.
func (m *mailbox[T]) Push(v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrSchedulerClosed
	}
	m.items.Add(v)
	m.size.Add(1)
	m.signal()
	return nil
}

// PushAll appends vs under a single lock acquisition.
func (m *mailbox[T]) PushAll(vs []T) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrSchedulerClosed
	}
	for _, v := range vs {
		m.items.Add(v)
	}
	m.size.Add(int64(len(vs)))
	m.signal()
	return len(vs), nil
}

// Pop removes the oldest item, waiting for one if the mailbox is empty.
// It returns errMailboxClosed once the mailbox is closed and empty, and
// ctx.Err() as soon as ctx is done, even if items remain.
func (m *mailbox[T]) Pop(ctx context.Context) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		m.mu.Lock()
		if m.items.Length() > 0 {
			v := m.items.Remove().(T)
			m.size.Add(-1)
			if m.items.Length() > 0 && !m.closed {
				m.signal()
			}
			m.mu.Unlock()
			return v, nil
		}
		if m.closed {
			m.mu.Unlock()
			return zero, errMailboxClosed
		}
		m.mu.Unlock()

		select {
		case <-m.wake:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Close stops accepting items. Queued items can still be popped.
func (m *mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

// CloseAndDrain closes the mailbox and hands back everything still queued.
func (m *mailbox[T]) CloseAndDrain() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()
	out := make([]T, 0, m.items.Length())
	for m.items.Length() > 0 {
		out = append(out, m.items.Remove().(T))
	}
	m.size.Store(0)
	return out
}

// Len returns the number of queued items.
func (m *mailbox[T]) Len() int {
	return int(m.size.Load())
}

func (m *mailbox[T]) closeLocked() {
	if !m.closed {
		m.closed = true
		close(m.wake)
	}
}

// signal must be called with mu held and the mailbox open.
func (m *mailbox[T]) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}
