package shmring

import "time"

// The wait/notify ring composes an SPSC-like ring with a process-shared
// mutex, condition variable, and signal counter. Pushing is a ring push
// followed by notify(); popping is wait() (with or without a deadline)
// followed by a ring pop. The ordering rule is load-bearing: notify() must run after head
// is published, and wait() must complete before tail is read, or the signal
// counter drifts and a subscriber deadlocks — which is exactly the order
// PublisherRing.Push and SubscriberRing.Pop below preserve.

// PublisherRing is the producer/owner side of a wait/notify ring. It
// creates the underlying segment and rendezvous semaphore, and is the only
// side whose Close unlinks both names.
type PublisherRing struct {
	seg    *segment
	policy *spscPolicy
	sem    *rendezvousSemaphore
	name   string
}

// NewPublisherRing validates (name, opts) without touching the OS.
func NewPublisherRing(name string, opts Options) (*PublisherRing, error) {
	opts = opts.withDefaults()
	seg, err := newSegment(name, opts.ElementSize, opts.Capacity, true, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &PublisherRing{seg: seg, name: seg.name}, nil
}

// Open implements the publisher side of the open protocol: create (or
// attach) the rendezvous semaphore, create-or-attach and initialize the
// main segment, then post the semaphore to release any subscribers waiting
// on it.
func (p *PublisherRing) Open() error {
	sem, _, err := openRendezvousSemaphore(readyName(p.name))
	if err != nil {
		return err
	}
	p.sem = sem

	if err := p.seg.open(); err != nil {
		_ = p.sem.Close()
		return err
	}
	p.policy = newSPSCPolicy(p.seg)

	p.sem.Post()
	return nil
}

// Close unmaps the ring and the semaphore, then unlinks both OS names. See
// DESIGN.md for why only the publisher side unlinks: unlike a plain ring's
// endpoints, a wait/notify ring has a single designated owner.
func (p *PublisherRing) Close() error {
	errSeg := p.seg.close()
	var errSem error
	if p.sem != nil {
		errSem = p.sem.Close()
	}
	_ = unlinkSegment(p.name)
	if p.sem != nil {
		_ = p.sem.Unlink()
	}
	if errSeg != nil {
		return errSeg
	}
	return errSem
}

func (p *PublisherRing) Opened() bool { return p.seg.opened() }

// Push enqueues element and notifies subscribers. It returns
// ErrTemporaryError if the ring is currently full; use Producer/Consumer
// directly for a ring that needs a blocking push.
func (p *PublisherRing) Push(element []byte) error {
	if err := p.policy.tryPush(element); err != nil {
		return err
	}
	p.notify()
	return nil
}

// notify increments the signal counter (release) and signals the
// condition. Called only after the ring push above has published head.
func (p *PublisherRing) notify() {
	nh := p.seg.notifyHeader()
	nh.signalCount.Add(1)
	cond := sharedCondition{seq: &nh.condSeq}
	cond.Signal()
}

// SubscriberRing is a reader of a wait/notify ring. Multiple subscribers
// may open the same ring concurrently; the rendezvous semaphore cascades
// so none block each other once the publisher has initialized the header.
type SubscriberRing struct {
	seg    *segment
	policy *spscPolicy
	sem    *rendezvousSemaphore
	mu     sharedMutex
	cond   sharedCondition
	name   string
}

// NewSubscriberRing validates (name, opts) without touching the OS.
func NewSubscriberRing(name string, opts Options) (*SubscriberRing, error) {
	opts = opts.withDefaults()
	seg, err := newSegment(name, opts.ElementSize, opts.Capacity, true, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &SubscriberRing{seg: seg, name: seg.name}, nil
}

// Open implements the subscriber side of the open protocol: wait on the
// rendezvous semaphore (blocking until the publisher has initialized the
// header), immediately re-post it so later subscribers are not serialized
// behind this one, then attach to the now-initialized segment.
func (s *SubscriberRing) Open() error {
	sem, _, err := openRendezvousSemaphore(readyName(s.name))
	if err != nil {
		return err
	}
	s.sem = sem

	if err := s.sem.Wait(); err != nil {
		_ = s.sem.Close()
		return err
	}
	s.sem.Post()

	if err := s.seg.open(); err != nil {
		_ = s.sem.Close()
		return err
	}
	s.policy = newSPSCPolicy(s.seg)
	nh := s.seg.notifyHeader()
	s.mu = sharedMutex{word: &nh.mutexWord}
	s.cond = sharedCondition{seq: &nh.condSeq}
	return nil
}

// Close unmaps the ring and the semaphore without unlinking either name;
// see PublisherRing.Close for the side that owns cleanup.
func (s *SubscriberRing) Close() error {
	errSeg := s.seg.close()
	var errSem error
	if s.sem != nil {
		errSem = s.sem.Close()
	}
	if errSeg != nil {
		return errSeg
	}
	return errSem
}

func (s *SubscriberRing) Opened() bool { return s.seg.opened() }

// Pop waits for a notification, then pops the ring: wait() must complete
// before tail is read.
func (s *SubscriberRing) Pop(element []byte) error {
	if err := s.wait(nil); err != nil {
		return err
	}
	return s.policy.tryPop(element)
}

// TimedPop is Pop bounded by a deadline, returning ErrTimedOut if it
// elapses before a notification arrives.
func (s *SubscriberRing) TimedPop(element []byte, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if err := s.wait(&deadline); err != nil {
		return err
	}
	return s.policy.tryPop(element)
}

// wait implements the ring's wait/timed-wait contract: a fast path that
// tries to claim a pending signal without taking the mutex, falling back to
// the mutex/condition slow path only when the counter is currently zero.
func (s *SubscriberRing) wait(deadline *time.Time) error {
	nh := s.seg.notifyHeader()

	if count := nh.signalCount.Load(); count > 0 && nh.signalCount.CompareAndSwap(count, count-1) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	predicate := func() bool {
		for {
			count := nh.signalCount.Load()
			if count == 0 {
				return false
			}
			if nh.signalCount.CompareAndSwap(count, count-1) {
				return true
			}
		}
	}
	return s.cond.Wait(&s.mu, deadline, predicate)
}
