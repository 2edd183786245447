package shmring

// Discipline selects which ring algorithm a Producer, Consumer, Channel,
// or wait/notify ring uses. The same discipline must be chosen by every
// peer of a given named segment; there is nothing in the wire layout that
// records which one was used.
type Discipline int

const (
	// SPSC: exactly one producer process and one consumer process.
	SPSC Discipline = iota
	// MPSC: any number of producer processes, exactly one consumer process.
	MPSC
	// MPMC: any number of producer and consumer processes.
	MPMC
)

func (d Discipline) String() string {
	switch d {
	case SPSC:
		return "spsc"
	case MPSC:
		return "mpsc"
	case MPMC:
		return "mpmc"
	default:
		return "unknown"
	}
}

func newPolicy(d Discipline, seg *segment) ringPolicy {
	switch d {
	case MPSC:
		return newMPSCPolicy(seg)
	case MPMC:
		return newMPMCPolicy(seg)
	default:
		return newSPSCPolicy(seg)
	}
}
