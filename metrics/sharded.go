package metrics

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 16

type shard struct {
	mu       sync.Mutex
	counters map[string]int64
}

type shardedRegistry struct {
	shards []*shard
}

// NewSharded returns a Registry that spreads names over n independently locked
// shards using FNV-1a. n <= 0 selects a default of 16.
func NewSharded(n int) Registry {
	if n <= 0 {
		n = defaultShards
	}
	r := &shardedRegistry{shards: make([]*shard, n)}
	for i := range r.shards {
		r.shards[i] = &shard{counters: make(map[string]int64)}
	}
	return r
}

func (r *shardedRegistry) shardFor(name string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return r.shards[h.Sum32()%uint32(len(r.shards))]
}

func (r *shardedRegistry) Increment(name string) error {
	r.add(name, 1)
	return nil
}

func (r *shardedRegistry) Decrement(name string) error {
	r.add(name, -1)
	return nil
}

func (r *shardedRegistry) add(name string, delta int64) {
	s := r.shardFor(name)
	s.mu.Lock()
	s.counters[name] += delta
	s.mu.Unlock()
}

func (r *shardedRegistry) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	for _, s := range r.shards {
		s.mu.Lock()
		for k, v := range s.counters {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}

func (r *shardedRegistry) String() string {
	return render(r.Snapshot())
}
