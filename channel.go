package shmring

import "time"

// ChannelSide selects which half of a duplex Channel this process occupies.
// Side A's outbound ring is "<name>_AB" and inbound is "<name>_BA"; Side B
// is the mirror image. Both sides must agree on element size and capacity.
type ChannelSide int

const (
	SideA ChannelSide = iota
	SideB
)

// Channel is a bidirectional endpoint: a Producer and a Consumer bound to
// two independently-named rings of identical geometry.
type Channel struct {
	out *Producer
	in  *Consumer
}

// NewChannel validates both underlying segments without touching the OS.
func NewChannel(name string, side ChannelSide, opts Options) (*Channel, error) {
	abName, baName := name+"_AB", name+"_BA"
	outName, inName := abName, baName
	if side == SideB {
		outName, inName = baName, abName
	}

	out, err := NewProducer(outName, opts)
	if err != nil {
		return nil, err
	}
	in, err := NewConsumer(inName, opts)
	if err != nil {
		return nil, err
	}
	return &Channel{out: out, in: in}, nil
}

// Open opens both underlying rings. If either fails, both are closed and
// the failure is surfaced.
func (c *Channel) Open() error {
	if err := c.out.Open(); err != nil {
		return err
	}
	if err := c.in.Open(); err != nil {
		_ = c.out.Close()
		return err
	}
	return nil
}

// Close closes both underlying rings, returning the first error
// encountered (if any) after attempting both.
func (c *Channel) Close() error {
	errOut := c.out.Close()
	errIn := c.in.Close()
	if errOut != nil {
		return errOut
	}
	return errIn
}

func (c *Channel) Opened() bool { return c.out.Opened() && c.in.Opened() }

func (c *Channel) TrySend(element []byte) error { return c.out.TryPush(element) }
func (c *Channel) Send(element []byte) error    { return c.out.Push(element) }
func (c *Channel) TimedSend(element []byte, timeout time.Duration) error {
	return c.out.TimedPush(element, timeout)
}

func (c *Channel) TryReceive(element []byte) error { return c.in.TryPop(element) }
func (c *Channel) Receive(element []byte) error    { return c.in.Pop(element) }
func (c *Channel) TimedReceive(element []byte, timeout time.Duration) error {
	return c.in.TimedPop(element, timeout)
}

// UnlinkChannel removes both OS names (the "_AB" and "_BA" segments) backing
// a channel of the given name. Succeeds for names that are already absent.
func UnlinkChannel(name string) error {
	if err := unlinkSegment(name + "_AB"); err != nil {
		return err
	}
	return unlinkSegment(name + "_BA")
}
