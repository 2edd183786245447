package shmring

import "unsafe"

// spscPolicy is the single-producer/single-consumer ring discipline: the
// producer owns head exclusively and the consumer owns tail exclusively,
// so neither side ever CAS-races the other — each only needs an acquire
// load of the peer's counter and a release store of its own.
type spscPolicy struct {
	ringCounters
}

func newSPSCPolicy(seg *segment) *spscPolicy {
	return &spscPolicy{ringCounters{seg: seg}}
}

func (p *spscPolicy) tryPush(element []byte) error {
	if uint64(len(element)) != p.seg.elementSize {
		return wrap(ErrInvalidParam, "element length %d does not match ring element size %d", len(element), p.seg.elementSize)
	}
	h := p.seg.header()
	tail := h.tail.Load() // acquire: synchronizes with the consumer's release store
	head := h.head.Load() // relaxed: only this producer ever advances head
	if head-tail >= p.seg.capacity {
		return ErrTemporaryError
	}
	dst := slotPtr(p.seg.data(), head, p.seg.capacity, p.seg.elementSize)
	copyInto(dst, element)
	h.head.Store(head + 1) // release: publishes the slot write
	return nil
}

func (p *spscPolicy) tryPop(element []byte) error {
	if uint64(len(element)) != p.seg.elementSize {
		return wrap(ErrInvalidParam, "element length %d does not match ring element size %d", len(element), p.seg.elementSize)
	}
	h := p.seg.header()
	head := h.head.Load() // acquire: synchronizes with the producer's release store
	tail := h.tail.Load() // relaxed: only this consumer ever advances tail
	if tail == head {
		return ErrTemporaryError
	}
	src := slotPtr(p.seg.data(), tail, p.seg.capacity, p.seg.elementSize)
	copyFrom(element, src)
	h.tail.Store(tail + 1) // release: publishes slot reuse
	return nil
}

// copyInto copies element (exactly elementSize bytes, validated by the
// caller) into the slot at dst.
func copyInto(dst unsafe.Pointer, element []byte) {
	slice := unsafe.Slice((*byte)(dst), len(element))
	copy(slice, element)
}

// copyFrom copies len(element) bytes from src into element.
func copyFrom(element []byte, src unsafe.Pointer) {
	slice := unsafe.Slice((*byte)(src), len(element))
	copy(element, slice)
}
