package shmring

// These constants are verified by align_test.go, in the style of
// go-eventloop's sizeof.go / align_linux_test.go.
const (
	// cacheLineSize is the padding unit used to keep head/tail (and the
	// wait/notify mutex/condition/signal counter) on distinct cache
	// lines, and to align the data region. 64 bytes covers x86-64; on
	// ARM64 parts with a 128-byte line (Apple Silicon) two fields one
	// padding unit apart can still share a line.
	cacheLineSize = 64

	// dataAlignment is the alignment of the data region's start. A full
	// cache line, stricter than the platform's natural alignment, so
	// adjacent small slots never false-share.
	dataAlignment = cacheLineSize

	// DefaultElementSize is the default slot size in bytes: a
	// conservative UDP-payload-sized slot.
	DefaultElementSize uint64 = 1472

	// DefaultCapacity is the default slot count.
	DefaultCapacity uint64 = 144
)
