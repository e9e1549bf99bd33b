//go:build windows

package cpu

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// PinWorker locks the calling goroutine to an OS thread and restricts that
// thread to core workerID % NumCPU. The returned release func restores the
// previous mask and unlocks the thread; it is always non-nil.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()

	n := runtime.NumCPU()
	core := ((workerID % n) + n) % n

	handle := windows.CurrentThread()
	// Bit N = CPU N.
	prev, _, err := setThreadAffinityMask.Call(uintptr(handle), uintptr(1)<<core)
	if prev == 0 {
		return runtime.UnlockOSThread, fmt.Errorf("pin worker %d: %w", workerID, err)
	}

	return func() {
		_, _, _ = setThreadAffinityMask.Call(uintptr(handle), prev)
		runtime.UnlockOSThread()
	}, nil
}
