package shmring

import (
	"fmt"
	"math"
	"strings"
	"unsafe"
)

// segment is the lifecycle wrapper around a mapped header+data region. It
// is embedded by every role-typed endpoint (Producer, Consumer,
// PublisherRing, SubscriberRing) rather than exposed directly.
type segment struct {
	name        string
	elementSize uint64
	capacity    uint64
	headerSize  uintptr
	notify      bool // true for the wait/notify variant (notifySyncHeader + futex mutex/condition)
	logger      Logger

	fd        int
	mapping   []byte
	base      unsafe.Pointer
	totalSize uintptr
	isOpen    bool
}

// newSegment validates (name, elementSize, capacity) and computes the
// mapped region's geometry without touching the OS, including an
// overflow check performed before ever calling ftruncate/mmap.
func newSegment(name string, elementSize, capacity uint64, notify bool, logger Logger) (*segment, error) {
	if name == "" {
		return nil, wrap(ErrInvalidParam, "segment name must not be empty")
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if elementSize == 0 || capacity == 0 {
		return nil, wrap(ErrInvalidParam, "elementSize and capacity must be > 0 (got %d, %d)", elementSize, capacity)
	}

	headerSize := uintptr(syncHeaderSize)
	if notify {
		headerSize = uintptr(notifySyncHeaderSize)
	}

	if elementSize > math.MaxUint64/capacity {
		return nil, wrap(ErrOverflow, "elementSize*capacity overflows uint64")
	}
	userSize := elementSize * capacity
	total := uint64(headerSize) + userSize
	if total < userSize {
		return nil, wrap(ErrOverflow, "header+data size overflows uint64")
	}
	if total > math.MaxInt64 {
		return nil, wrap(ErrOverflow, "segment size exceeds platform file-offset range")
	}

	return &segment{
		name:        name,
		elementSize: elementSize,
		capacity:    capacity,
		headerSize:  headerSize,
		notify:      notify,
		logger:      logger,
		fd:          -1,
		totalSize:   uintptr(total),
	}, nil
}

func (s *segment) opened() bool { return s.isOpen }

// open creates-or-attaches the OS object, maps it, runs one-writer-wins
// header initialization, and validates geometry. Any failure tears the
// mapping/descriptor down before returning.
func (s *segment) open() error {
	if s.isOpen {
		return wrap(ErrInUse, "segment %s already opened", s.name)
	}

	fd, created, err := platformOpenOrCreate(s.name)
	if err != nil {
		return osError("open "+s.name, err)
	}
	s.fd = fd

	if created {
		if err := platformFtruncate(s.fd, int64(s.totalSize)); err != nil {
			_ = platformClose(s.fd)
			s.fd = -1
			return osError("ftruncate "+s.name, err)
		}
	}

	mapping, err := platformMmap(s.fd, int(s.totalSize))
	if err != nil {
		_ = platformClose(s.fd)
		s.fd = -1
		return osError("mmap "+s.name, err)
	}
	s.mapping = mapping
	s.base = unsafe.Pointer(&mapping[0])
	s.isOpen = true

	hdr := headerAt(s.base)
	var expected uint64
	won := hdr.magic.CompareAndSwap(expected, magicValue)
	if won {
		hdr.elementSize.Store(s.elementSize)
		hdr.capacity.Store(s.capacity)
		hdr.head.Store(0)
		hdr.tail.Store(0)
		if s.notify {
			nh := notifyHeaderAt(s.base)
			nh.mutexWord.Store(0)
			nh.condSeq.Store(0)
			nh.signalCount.Store(0)
		}
		logf(s.logger, LevelInfo, s.name, "segment initialized (one-writer-wins)", map[string]any{
			"elementSize": s.elementSize,
			"capacity":    s.capacity,
		})
	} else {
		logf(s.logger, LevelDebug, s.name, "segment attached to existing header", nil)
	}

	gotElementSize := hdr.elementSize.Load()
	gotCapacity := hdr.capacity.Load()
	if gotElementSize != s.elementSize || gotCapacity != s.capacity {
		logf(s.logger, LevelWarn, s.name, "geometry mismatch", map[string]any{
			"wantElementSize": s.elementSize, "gotElementSize": gotElementSize,
			"wantCapacity": s.capacity, "gotCapacity": gotCapacity,
		})
		_ = s.close()
		return wrap(ErrInvalidParam, "geometry mismatch for %s: want (%d,%d) got (%d,%d)",
			s.name, s.elementSize, s.capacity, gotElementSize, gotCapacity)
	}

	return nil
}

// close unmaps and closes the descriptor. It never unlinks the OS name; see
// unlinkSegment. Safe to call on an unopened or already-closed segment.
func (s *segment) close() error {
	if !s.isOpen {
		return nil
	}
	var err error
	if s.mapping != nil {
		if e := platformMunmap(s.mapping); e != nil {
			err = osError("munmap "+s.name, e)
		}
		s.mapping = nil
		s.base = nil
	}
	if s.fd != -1 {
		if e := platformClose(s.fd); e != nil && err == nil {
			err = osError("close "+s.name, e)
		}
		s.fd = -1
	}
	s.isOpen = false
	logf(s.logger, LevelDebug, s.name, "segment closed", nil)
	return err
}

func (s *segment) header() *syncHeader {
	return headerAt(s.base)
}

func (s *segment) notifyHeader() *notifySyncHeader {
	return notifyHeaderAt(s.base)
}

func (s *segment) data() unsafe.Pointer {
	return dataPtr(s.base, s.headerSize)
}

// unlinkSegment removes the OS name backing a segment. It succeeds if the
// name does not exist.
func unlinkSegment(name string) error {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if err := platformUnlink(name); err != nil {
		if platformIsNotExist(err) {
			return nil
		}
		return osError(fmt.Sprintf("unlink %s", name), err)
	}
	return nil
}
