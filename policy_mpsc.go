package shmring

// mpscPolicy is the multi-producer/single-consumer discipline: producers
// reserve a slot by CAS-advancing head, copy their payload into the
// reserved slot, then the consumer (sole owner of tail) reads it exactly as
// in SPSC. The CAS that reserves slot N is also what advances head, before
// the payload copy: there is no separate publication step and no per-slot
// ready flag, so the consumer can read slot N while its producer is still
// copying into it (see DESIGN.md, Open Question resolution 1).
type mpscPolicy struct {
	ringCounters
}

func newMPSCPolicy(seg *segment) *mpscPolicy {
	return &mpscPolicy{ringCounters{seg: seg}}
}

func (p *mpscPolicy) tryPush(element []byte) error {
	if uint64(len(element)) != p.seg.elementSize {
		return wrap(ErrInvalidParam, "element length %d does not match ring element size %d", len(element), p.seg.elementSize)
	}
	h := p.seg.header()
	for {
		head := h.head.Load() // acquire: observe other producers' reservations
		tail := h.tail.Load() // acquire: observe the consumer's release store
		if head-tail >= p.seg.capacity {
			return ErrTemporaryError
		}
		if h.head.CompareAndSwap(head, head+1) {
			dst := slotPtr(p.seg.data(), head, p.seg.capacity, p.seg.elementSize)
			copyInto(dst, element)
			return nil
		}
		// lost the race for this slot; reload and retry
	}
}

// tryPop is identical to spscPolicy: a single consumer owns tail outright.
func (p *mpscPolicy) tryPop(element []byte) error {
	s := spscPolicy{p.ringCounters}
	return s.tryPop(element)
}
