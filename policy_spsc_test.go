package shmring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestSegment(t *testing.T, elementSize, capacity uint64) *segment {
	t.Helper()
	seg, err := newSegment(uniqueName(t), elementSize, capacity, false, nil)
	require.NoError(t, err)
	require.NoError(t, seg.open())
	t.Cleanup(func() { _ = seg.close() })
	return seg
}

func elemOf(b byte, size int) []byte {
	e := make([]byte, size)
	for i := range e {
		e[i] = b
	}
	return e
}

// TestSPSC_Echo pushes a sequence of payloads and pops them back, checking
// that the ring preserves both the bytes and the FIFO order.
func TestSPSC_Echo(t *testing.T) {
	seg := openTestSegment(t, 8, 4)
	p := newSPSCPolicy(seg)

	payloads := [][]byte{
		{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
		{0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F},
		{0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17},
	}
	for _, pl := range payloads {
		require.NoError(t, p.tryPush(pl))
	}

	for _, want := range payloads {
		got := make([]byte, 8)
		require.NoError(t, p.tryPop(got))
		require.Equal(t, want, got)
	}
	require.Equal(t, uint64(0), ringCounters{seg}.pending())
}

// TestSPSC_BackPressure checks that a full ring rejects TryPush with
// ErrTemporaryError and that TimedPush on a full ring with no consumer
// times out close to its deadline.
func TestSPSC_BackPressure(t *testing.T) {
	seg := openTestSegment(t, 4, 2)
	p := newSPSCPolicy(seg)

	require.NoError(t, p.tryPush(elemOf(1, 4)))
	require.NoError(t, p.tryPush(elemOf(2, 4)))

	err := p.tryPush(elemOf(3, 4))
	require.ErrorIs(t, err, ErrTemporaryError)

	start := time.Now()
	err = timedPush(p, elemOf(3, 4), start.Add(50*time.Millisecond))
	require.ErrorIs(t, err, ErrTimedOut)
	require.WithinDuration(t, start.Add(50*time.Millisecond), time.Now(), 200*time.Millisecond)
}

// TestSPSC_NoDupNoLoss runs a concurrent producer and consumer over many
// items and checks every value is observed exactly once in FIFO order.
func TestSPSC_NoDupNoLoss(t *testing.T) {
	seg := openTestSegment(t, 4, 16)
	p := newSPSCPolicy(seg)

	const n = 5000
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := range n {
			buf := make([]byte, 4)
			buf[0] = byte(i)
			buf[1] = byte(i >> 8)
			buf[2] = byte(i >> 16)
			buf[3] = byte(i >> 24)
			require.NoError(t, blockingPush(p, buf))
		}
	}()

	var mismatch bool
	go func() {
		defer wg.Done()
		for i := range n {
			buf := make([]byte, 4)
			require.NoError(t, blockingPop(p, buf))
			got := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
			if got != uint32(i) {
				mismatch = true
			}
		}
	}()
	wg.Wait()
	require.False(t, mismatch, "SPSC must preserve FIFO order with no duplication or loss")
}

// TestBoundedOccupancy checks 0 <= pending <= capacity holds across a
// sequence of pushes.
func TestBoundedOccupancy(t *testing.T) {
	seg := openTestSegment(t, 4, 4)
	p := newSPSCPolicy(seg)

	for i := range 4 {
		require.NoError(t, p.tryPush(elemOf(byte(i), 4)))
		c := ringCounters{seg}
		require.LessOrEqual(t, c.pending(), seg.capacity)
		require.GreaterOrEqual(t, c.pending(), uint64(0))
	}
	require.True(t, (ringCounters{seg}).full())
	require.ErrorIs(t, p.tryPush(elemOf(9, 4)), ErrTemporaryError)
}

// TestCounterMonotonicity checks that head and tail never decrease and
// that head never falls below tail across interleaved pushes and pops.
func TestCounterMonotonicity(t *testing.T) {
	seg := openTestSegment(t, 4, 4)
	p := newSPSCPolicy(seg)
	hdr := seg.header()

	var lastHead, lastTail uint64
	for i := range 20 {
		require.NoError(t, p.tryPush(elemOf(byte(i), 4)))
		head := hdr.head.Load()
		require.GreaterOrEqual(t, head, lastHead)
		lastHead = head

		buf := make([]byte, 4)
		require.NoError(t, p.tryPop(buf))
		tail := hdr.tail.Load()
		require.GreaterOrEqual(t, tail, lastTail)
		lastTail = tail

		require.GreaterOrEqual(t, head, tail)
	}
}
