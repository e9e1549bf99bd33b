package metrics

import "sync"

type mapRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewMap returns a Registry backed by one map guarded by a RWMutex.
func NewMap() Registry {
	return &mapRegistry{counters: make(map[string]int64)}
}

func (r *mapRegistry) Increment(name string) error {
	r.add(name, 1)
	return nil
}

func (r *mapRegistry) Decrement(name string) error {
	r.add(name, -1)
	return nil
}

func (r *mapRegistry) add(name string, delta int64) {
	r.mu.Lock()
	r.counters[name] += delta
	r.mu.Unlock()
}

func (r *mapRegistry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for k, v := range r.counters {
		out[k] = v
	}
	return out
}

func (r *mapRegistry) String() string {
	return render(r.Snapshot())
}
