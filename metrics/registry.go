// Package metrics provides thread-safe named counters.
//
// Three Registry implementations are available and interchangeable:
//
//   - NewMap: a single map behind a read/write lock. Simple, fine for low contention.
//   - NewFixed: a closed set of pre-registered atomic counters. Lock-free on the
//     hot path; unknown names are rejected with ErrUnknownCounter.
//   - NewSharded: names hashed (FNV-1a) onto independent locked shards, which
//     spreads contention when many goroutines touch different counters.
//
// Counters start at zero the first time they are referenced.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCounter is returned by a fixed registry for names it was not built with.
var ErrUnknownCounter = errors.New("metrics: unknown counter")

// Registry is a set of named int64 counters safe for concurrent use.
type Registry interface {
	// Increment adds one to the named counter.
	Increment(name string) error

	// Decrement subtracts one from the named counter.
	Decrement(name string) error

	// Snapshot returns a point-in-time copy of every counter.
	Snapshot() map[string]int64

	// String renders one "name: value" line per counter, sorted by name.
	String() string
}

// render formats a snapshot the way every Registry's String does.
func render(snap map[string]int64) string {
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %d\n", name, snap[name])
	}
	return sb.String()
}
