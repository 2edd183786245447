package shmring

import (
	"sync/atomic"
	"unsafe"
)

// semHeader is the entire contents of a rendezvous semaphore segment: a
// single futex-counted word. Named-semaphore semantics (sem_open/sem_wait/
// sem_post) have no portable binding in golang.org/x/sys without cgo, so
// the same futex-like emulation used for the shared mutex and condition
// variable is reused here, backed by its own tiny shared segment rather
// than a kernel semaphore object.
type semHeader struct {
	count atomic.Uint32
	_     [cacheLineSize - 4]byte
}

const semHeaderSize = cacheLineSize

// rendezvousSemaphore is a named semaphore used only as a rendezvous gate
// during a publisher/subscriber ring's open; it is never touched on the
// hot path.
type rendezvousSemaphore struct {
	name    string
	fd      int
	mapping []byte
	base    unsafe.Pointer
}

// readyName derives the semaphore name from a ring name: "<name>_ready".
func readyName(ringName string) string {
	return ringName + "_ready"
}

func openRendezvousSemaphore(name string) (sem *rendezvousSemaphore, created bool, err error) {
	fd, created, err := platformOpenOrCreate(name)
	if err != nil {
		return nil, false, err
	}
	if created {
		if err := platformFtruncate(fd, int64(semHeaderSize)); err != nil {
			_ = platformClose(fd)
			return nil, false, err
		}
	}
	mapping, err := platformMmap(fd, semHeaderSize)
	if err != nil {
		_ = platformClose(fd)
		return nil, false, err
	}
	sem = &rendezvousSemaphore{
		name:    name,
		fd:      fd,
		mapping: mapping,
		base:    unsafe.Pointer(&mapping[0]),
	}
	if created {
		sem.header().count.Store(0)
	}
	return sem, created, nil
}

func (s *rendezvousSemaphore) header() *semHeader {
	return (*semHeader)(s.base)
}

// Post increments the count and wakes a single waiter, mirroring sem_post.
func (s *rendezvousSemaphore) Post() {
	s.header().count.Add(1)
	_ = futexWake(&s.header().count, 1)
}

// Wait blocks until the count is positive, then atomically decrements it,
// mirroring sem_wait. Unlike the ring's signal counter, this has no timed
// variant: it is only used once, synchronously, during open().
func (s *rendezvousSemaphore) Wait() error {
	for {
		c := s.header().count.Load()
		if c > 0 && s.header().count.CompareAndSwap(c, c-1) {
			return nil
		}
		if err := futexWait(&s.header().count, 0, nil); err != nil {
			return err
		}
	}
}

func (s *rendezvousSemaphore) Close() error {
	var err error
	if s.mapping != nil {
		if e := platformMunmap(s.mapping); e != nil {
			err = osError("munmap "+s.name, e)
		}
		s.mapping = nil
		s.base = nil
	}
	if s.fd != -1 {
		if e := platformClose(s.fd); e != nil && err == nil {
			err = osError("close "+s.name, e)
		}
		s.fd = -1
	}
	return err
}

func (s *rendezvousSemaphore) Unlink() error {
	return unlinkSegment(s.name)
}
