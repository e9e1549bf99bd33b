//go:build !linux && !windows

package cpu

import "runtime"

// PinWorker locks the calling goroutine to its OS thread. Thread affinity is
// not exposed on this platform, so the core is never set.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
