//go:build linux

package shmring

import (
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// futexWait blocks while *addr == expected, waking when another process
// calls futexWake on the same address or the deadline (if non-nil)
// elapses. It never blocks if *addr != expected, matching the kernel
// futex(2) FUTEX_WAIT contract; this is the real backend for the
// process-shared mutex and condition variable emulation.
func futexWait(addr *atomic.Uint32, expected uint32, deadline *time.Time) error {
	var ts *unix.Timespec
	if deadline != nil {
		d := time.Until(*deadline)
		if d <= 0 {
			if addr.Load() == expected {
				return ErrTimedOut
			}
			return nil
		}
		spec := unix.NsecToTimespec(d.Nanoseconds())
		ts = &spec
	}

	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAIT),
		uintptr(expected),
		uintptr(unsafe.Pointer(ts)),
		0, 0,
	)
	switch errno {
	case 0, unix.EAGAIN, unix.EINTR:
		return nil
	case unix.ETIMEDOUT:
		return ErrTimedOut
	default:
		return osError("futex wait", errno)
	}
}

// futexWake wakes up to n waiters blocked on addr via futexWait.
func futexWake(addr *atomic.Uint32, n int32) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(unix.FUTEX_WAKE),
		uintptr(n),
		0, 0, 0,
	)
	if errno != 0 {
		return osError("futex wake", errno)
	}
	return nil
}
