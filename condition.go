package shmring

import (
	"sync/atomic"
	"time"
)

// sharedCondition is a futex-like emulation of a process-shared condition
// variable: a sequence counter bumped on every Signal, futex-woken so at
// least one blocked Wait call observes it. Callers must hold the paired
// sharedMutex and pass a predicate: spurious wakeups are handled by
// re-checking the predicate in a loop, never by trusting the wake alone.
type sharedCondition struct {
	seq *atomic.Uint32
}

// Signal wakes at least one waiter. Callers are expected to have already
// published whatever state the predicate observes (e.g. the signal
// counter) before calling Signal: notify must run after head is published,
// or the signal counter can drift and deadlock a waiter.
func (c *sharedCondition) Signal() {
	c.seq.Add(1)
	_ = futexWake(c.seq, 1)
}

// Wait blocks until predicate() is true, re-checking after every wake
// (spurious or real) and after reacquiring mu. If deadline is non-nil and
// is reached before predicate() becomes true, it returns ErrTimedOut with
// mu held (matching std::condition_variable::wait_until semantics: the
// caller always regains the lock).
func (c *sharedCondition) Wait(mu *sharedMutex, deadline *time.Time, predicate func() bool) error {
	for {
		// Snapshot seq before checking the predicate, so a Signal that lands
		// after the check changes seq and futexWait returns at once.
		before := c.seq.Load()
		if predicate() {
			return nil
		}
		if deadline != nil && !time.Now().Before(*deadline) {
			return ErrTimedOut
		}

		mu.Unlock()
		err := futexWait(c.seq, before, deadline)
		mu.Lock()

		if predicate() {
			return nil
		}
		if err != nil {
			return err
		}
		if deadline != nil && !time.Now().Before(*deadline) {
			return ErrTimedOut
		}
	}
}
