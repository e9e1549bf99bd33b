//go:build linux

package cpu

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// coreFor maps a worker id onto [0, NumCPU).
func coreFor(workerID int) int {
	n := runtime.NumCPU()
	return ((workerID % n) + n) % n
}

// PinWorker locks the calling goroutine to an OS thread and restricts that
// thread to core workerID % NumCPU.
//
// The returned release func restores the thread's previous affinity and
// unlocks it. It must be called from the same goroutine. release is always
// non-nil, even when pinning fails.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()

	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return runtime.UnlockOSThread, fmt.Errorf("read affinity: %w", err)
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(coreFor(workerID))

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return runtime.UnlockOSThread, fmt.Errorf("pin worker %d: %w", workerID, err)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &prev)
		runtime.UnlockOSThread()
	}, nil
}

// CurrentCores returns the cores the calling thread may run on.
func CurrentCores() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, err
	}
	var cores []int
	for i := range runtime.NumCPU() {
		if set.IsSet(i) {
			cores = append(cores, i)
		}
	}
	return cores, nil
}
