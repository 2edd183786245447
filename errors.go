package shmring

import (
	"errors"
	"fmt"
)

// Kind classifies a shmring error into the taxonomy every operation in this
// package draws from. It replaces the reference implementation's
// thread-local "last error" with an explicit, inspectable value.
type Kind int

const (
	// KindUnknown covers an error this package did not originate (an OS
	// error surfaced verbatim, for instance).
	KindUnknown Kind = iota
	// KindInUse is returned when an operation targets an endpoint that is
	// already opened.
	KindInUse
	// KindInvalidParam is returned for nil arguments, geometry mismatches
	// against an existing header, or zero-sized configuration.
	KindInvalidParam
	// KindTemporary is the transient "try again" result: ring full on
	// push, ring empty on pop. It is the only kind a blocking form
	// retries on internally.
	KindTemporary
	// KindTimedOut is returned when a timed_* or timed_wait deadline
	// elapses before the operation succeeds.
	KindTimedOut
	// KindOverflow is returned when a requested element size/capacity
	// would overflow a 64-bit size or exceed the platform's file-offset
	// type.
	KindOverflow
	// KindOutOfMemory is returned when mapping or object creation failed
	// due to resource exhaustion.
	KindOutOfMemory
)

func (k Kind) String() string {
	switch k {
	case KindInUse:
		return "in-use"
	case KindInvalidParam:
		return "invalid-param"
	case KindTemporary:
		return "temporary"
	case KindTimedOut:
		return "timed-out"
	case KindOverflow:
		return "overflow"
	case KindOutOfMemory:
		return "out-of-memory"
	default:
		return "unknown"
	}
}

// kindError carries a Kind alongside the standard error interface so Classify()
// can classify any error returned from this package, including ones wrapped
// with extra context via fmt.Errorf("%w").
type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string { return e.msg }

// Is supports errors.Is(err, ErrInUse) and friends by comparing Kind,
// regardless of the message each call site attached.
func (e *kindError) Is(target error) bool {
	var other *kindError
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}

func newKindError(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Sentinel errors for the error taxonomy above. Use errors.Is against these,
// or Classify(err) to recover the classification of a wrapped error.
var (
	// ErrInUse: operation attempted on an endpoint that is already opened.
	ErrInUse = newKindError(KindInUse, "shmring: already in use")
	// ErrInvalidParam: null argument, geometry mismatch, or zero-sized
	// configuration.
	ErrInvalidParam = newKindError(KindInvalidParam, "shmring: invalid parameter")
	// ErrTemporaryError: ring full (push) or empty (pop).
	ErrTemporaryError = newKindError(KindTemporary, "shmring: temporary error")
	// ErrTimedOut: timed_* or timed_wait deadline exceeded.
	ErrTimedOut = newKindError(KindTimedOut, "shmring: timed out")
	// ErrOverflow: configuration would overflow a 64-bit size.
	ErrOverflow = newKindError(KindOverflow, "shmring: size overflow")
	// ErrOutOfMemory: mapping or object creation failed from resource
	// exhaustion.
	ErrOutOfMemory = newKindError(KindOutOfMemory, "shmring: out of memory")
	// ErrUnsupportedPlatform: the current GOOS has no shared-memory
	// backend wired up.
	ErrUnsupportedPlatform = newKindError(KindUnknown, "shmring: unsupported platform")
)

// Classify classifies err against the sentinels above. Unrecognized errors
// (including plain OS errors surfaced verbatim) classify as KindUnknown.
func Classify(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}

// wrap attaches context to one of the sentinel errors above while
// preserving errors.Is/errors.As against it.
func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

// osError wraps an OS-level failure (open/ftruncate/mmap/futex) with the
// operation that failed; Classify(err) on the result is KindUnknown, since
// this is an OS failure propagated with its native error code rather than
// one of the named sentinel kinds.
func osError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("shmring: %s: %w", op, err)
}
