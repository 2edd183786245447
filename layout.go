package shmring

import (
	"sync/atomic"
	"unsafe"
)

// magicValue is the one-shot initialization sentinel written by whichever
// opener wins the header's create-vs-attach race.
const magicValue uint64 = 0x9F7E3B2A8D5C4E1B

// syncHeader is the synchronization header, overlaid via unsafe.Pointer on
// byte offset 0 of every mapped segment. Field order and padding encode the
// wire layout:
//
//	offset 0   : magic
//	offset 64  : head
//	offset 128 : tail
//	offset 192 : elementSize
//	offset 256 : capacity
//	offset 320 : data (for plain rings; the wait/notify variant extends
//	             before data, see notifySyncHeader)
//
// head and tail therefore land on distinct cache lines, and the struct ends
// on a cache-line boundary so data is aligned per dataAlignment regardless
// of which header variant precedes it.
type syncHeader struct {
	magic       atomic.Uint64
	_           [cacheLineSize - 8]byte
	head        atomic.Uint64
	_           [cacheLineSize - 8]byte
	tail        atomic.Uint64
	_           [cacheLineSize - 8]byte
	elementSize atomic.Uint64
	_           [cacheLineSize - 8]byte
	capacity    atomic.Uint64
	_           [cacheLineSize - 8]byte
}

const syncHeaderSize = cacheLineSize * 5

// notifySyncHeader extends syncHeader for the wait/notify ring: a
// futex-backed mutex word, a futex-backed condition sequence counter, and a
// signal counter, each isolated on its own cache line so the publisher's
// notify() and a waiter's fast-path load never false-share.
type notifySyncHeader struct {
	syncHeader
	mutexWord   atomic.Uint32
	_           [cacheLineSize - 4]byte
	condSeq     atomic.Uint32
	_           [cacheLineSize - 4]byte
	signalCount atomic.Uint64
	_           [cacheLineSize - 8]byte
}

const notifySyncHeaderSize = syncHeaderSize + cacheLineSize*3

func headerAt(base unsafe.Pointer) *syncHeader {
	return (*syncHeader)(base)
}

func notifyHeaderAt(base unsafe.Pointer) *notifySyncHeader {
	return (*notifySyncHeader)(base)
}

// dataPtr returns a pointer to the slot array, headerSize bytes into base.
func dataPtr(base unsafe.Pointer, headerSize uintptr) unsafe.Pointer {
	return unsafe.Add(base, headerSize)
}

// slotPtr returns a pointer to the slot at the given sequence number modulo
// capacity.
func slotPtr(data unsafe.Pointer, seq, capacity, elementSize uint64) unsafe.Pointer {
	idx := seq % capacity
	return unsafe.Add(data, uintptr(idx)*uintptr(elementSize))
}
