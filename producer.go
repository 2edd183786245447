package shmring

import "time"

// Producer is a push-only endpoint: a role-typed facade over a segment and
// a ring policy. It is not copyable in spirit — copying a Producer value
// would duplicate the underlying file descriptor and mapping bookkeeping —
// so callers should pass it by pointer (Go has no compile-time non-copyable
// types, so this is enforced by convention and documented here rather than
// in the type system).
type Producer struct {
	seg    *segment
	policy ringPolicy
	opts   Options
}

// NewProducer validates (name, opts) without touching the OS. Call Open to
// acquire the shared segment.
func NewProducer(name string, opts Options) (*Producer, error) {
	opts = opts.withDefaults()
	seg, err := newSegment(name, opts.ElementSize, opts.Capacity, false, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Producer{seg: seg, opts: opts}, nil
}

// Open creates-or-attaches the underlying segment.
func (p *Producer) Open() error {
	if err := p.seg.open(); err != nil {
		return err
	}
	p.policy = newPolicy(p.opts.Discipline, p.seg)
	return nil
}

func (p *Producer) Close() error  { return p.seg.close() }
func (p *Producer) Opened() bool  { return p.seg.opened() }
func (p *Producer) ElementSize() uint64 { return p.seg.elementSize }
func (p *Producer) Capacity() uint64    { return p.seg.capacity }

// TryPush makes exactly one non-blocking attempt to enqueue element, whose
// length must equal ElementSize. Calling it before Open returns
// ErrInvalidParam rather than touching a nil policy.
func (p *Producer) TryPush(element []byte) error {
	if p.policy == nil {
		return wrap(ErrInvalidParam, "producer not opened")
	}
	return p.policy.tryPush(element)
}

// Push retries TryPush, yielding between attempts, until it succeeds or a
// non-temporary error occurs.
func (p *Producer) Push(element []byte) error {
	if p.policy == nil {
		return wrap(ErrInvalidParam, "producer not opened")
	}
	return blockingPush(p.policy, element)
}

// TimedPush retries TryPush until it succeeds or timeout elapses, returning
// ErrTimedOut in the latter case.
func (p *Producer) TimedPush(element []byte, timeout time.Duration) error {
	if p.policy == nil {
		return wrap(ErrInvalidParam, "producer not opened")
	}
	return timedPush(p.policy, element, time.Now().Add(timeout))
}

func (p *Producer) Available() uint64 { return ringCounters{p.seg}.available() }
func (p *Producer) Full() bool        { return ringCounters{p.seg}.full() }

// UnlinkProducer removes the OS name backing a Producer's segment.
// Unlinking is the application's responsibility and succeeds if the name
// is already absent.
func UnlinkProducer(name string) error { return unlinkSegment(name) }
