package shmring

import "time"

// Consumer is a pop-only endpoint, the mirror image of Producer.
type Consumer struct {
	seg    *segment
	policy ringPolicy
	opts   Options
}

// NewConsumer validates (name, opts) without touching the OS. Call Open to
// acquire the shared segment.
func NewConsumer(name string, opts Options) (*Consumer, error) {
	opts = opts.withDefaults()
	seg, err := newSegment(name, opts.ElementSize, opts.Capacity, false, opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Consumer{seg: seg, opts: opts}, nil
}

// Open creates-or-attaches the underlying segment.
func (c *Consumer) Open() error {
	if err := c.seg.open(); err != nil {
		return err
	}
	c.policy = newPolicy(c.opts.Discipline, c.seg)
	return nil
}

func (c *Consumer) Close() error        { return c.seg.close() }
func (c *Consumer) Opened() bool        { return c.seg.opened() }
func (c *Consumer) ElementSize() uint64 { return c.seg.elementSize }
func (c *Consumer) Capacity() uint64    { return c.seg.capacity }

// TryPop makes exactly one non-blocking attempt to dequeue into element,
// whose length must equal ElementSize. Calling it before Open returns
// ErrInvalidParam rather than touching a nil policy.
func (c *Consumer) TryPop(element []byte) error {
	if c.policy == nil {
		return wrap(ErrInvalidParam, "consumer not opened")
	}
	return c.policy.tryPop(element)
}

// Pop retries TryPop, yielding between attempts, until it succeeds or a
// non-temporary error occurs.
func (c *Consumer) Pop(element []byte) error {
	if c.policy == nil {
		return wrap(ErrInvalidParam, "consumer not opened")
	}
	return blockingPop(c.policy, element)
}

// TimedPop retries TryPop until it succeeds or timeout elapses, returning
// ErrTimedOut in the latter case.
func (c *Consumer) TimedPop(element []byte, timeout time.Duration) error {
	if c.policy == nil {
		return wrap(ErrInvalidParam, "consumer not opened")
	}
	return timedPop(c.policy, element, time.Now().Add(timeout))
}

func (c *Consumer) Pending() uint64 { return ringCounters{c.seg}.pending() }
func (c *Consumer) Empty() bool     { return ringCounters{c.seg}.empty() }

// UnlinkConsumer removes the OS name backing a Consumer's segment.
// Unlinking is the application's responsibility and succeeds if the name
// is already absent.
func UnlinkConsumer(name string) error { return unlinkSegment(name) }
