//go:build !linux

package shmring

import (
	"runtime"
	"sync/atomic"
	"time"
)

// futexWait/futexWake have no portable non-Linux kernel primitive exposed
// via golang.org/x/sys (Darwin's __ulock_wait/__ulock_wake are private,
// unexported syscalls with no stable ABI guarantee). This fallback
// busy-waits with Gosched backoff, bounded by deadline when present.
// Documented limitation: the process-shared mutex/condition/semaphore on
// these platforms burn CPU while contended instead of sleeping in the
// kernel, but preserve the same observable wait/notify contract (no lost
// wake, signal counts conserved) since correctness here never depends on
// true blocking, only on eventually observing the updated word.
const fallbackSpinBudget = 4096

func futexWait(addr *atomic.Uint32, expected uint32, deadline *time.Time) error {
	spins := 0
	for addr.Load() == expected {
		if deadline != nil && !time.Now().Before(*deadline) {
			if addr.Load() == expected {
				return ErrTimedOut
			}
			return nil
		}
		spins++
		if spins < fallbackSpinBudget {
			runtime.Gosched()
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	return nil
}

// futexWake is a no-op: fallback waiters poll instead of blocking, so
// there is nothing to wake.
func futexWake(addr *atomic.Uint32, n int32) error {
	return nil
}
