package metrics

import (
	"fmt"
	"sync/atomic"
)

// fixedRegistry holds one atomic counter per pre-registered name. The map is
// never written after construction, so lookups need no lock.
type fixedRegistry struct {
	counters map[string]*atomic.Int64
}

// NewFixed returns a Registry that only knows the given names. Duplicate
// names are collapsed.
func NewFixed(names ...string) Registry {
	r := &fixedRegistry{counters: make(map[string]*atomic.Int64, len(names))}
	for _, name := range names {
		if _, ok := r.counters[name]; !ok {
			r.counters[name] = new(atomic.Int64)
		}
	}
	return r
}

func (r *fixedRegistry) Increment(name string) error {
	return r.add(name, 1)
}

func (r *fixedRegistry) Decrement(name string) error {
	return r.add(name, -1)
}

func (r *fixedRegistry) add(name string, delta int64) error {
	c, ok := r.counters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCounter, name)
	}
	c.Add(delta)
	return nil
}

// Snapshot reads each counter atomically. Counters are read one at a time, so
// the copy is not a consistent cut across names under concurrent updates.
func (r *fixedRegistry) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(r.counters))
	for name, c := range r.counters {
		out[name] = c.Load()
	}
	return out
}

func (r *fixedRegistry) String() string {
	return render(r.Snapshot())
}
