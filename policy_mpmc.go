package shmring

// mpmcPolicy is the multi-producer/multi-consumer discipline: it reuses
// MPSC's CAS-reserve producer path verbatim, and gives consumers the
// mirror-image CAS-reserve on tail instead of the single-owner load
// SPSC/MPSC consumers use.
type mpmcPolicy struct {
	ringCounters
}

func newMPMCPolicy(seg *segment) *mpmcPolicy {
	return &mpmcPolicy{ringCounters{seg: seg}}
}

func (p *mpmcPolicy) tryPush(element []byte) error {
	m := mpscPolicy{p.ringCounters}
	return m.tryPush(element)
}

func (p *mpmcPolicy) tryPop(element []byte) error {
	if uint64(len(element)) != p.seg.elementSize {
		return wrap(ErrInvalidParam, "element length %d does not match ring element size %d", len(element), p.seg.elementSize)
	}
	h := p.seg.header()
	for {
		tail := h.tail.Load() // acquire: observe other consumers' reservations
		head := h.head.Load() // acquire: observe producers' committed writes
		if tail == head {
			return ErrTemporaryError
		}
		if h.tail.CompareAndSwap(tail, tail+1) {
			src := slotPtr(p.seg.data(), tail, p.seg.capacity, p.seg.elementSize)
			copyFrom(element, src)
			return nil
		}
		// lost the race for this slot; reload and retry
	}
}
