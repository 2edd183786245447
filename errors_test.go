package shmring

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"in use", ErrInUse, KindInUse},
		{"invalid param", ErrInvalidParam, KindInvalidParam},
		{"temporary", ErrTemporaryError, KindTemporary},
		{"timed out", ErrTimedOut, KindTimedOut},
		{"overflow", ErrOverflow, KindOverflow},
		{"out of memory", ErrOutOfMemory, KindOutOfMemory},
		{"wrapped", wrap(ErrTemporaryError, "ring %s full", "/x"), KindTemporary},
		{"plain OS error", io.EOF, KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrap_PreservesIs(t *testing.T) {
	err := wrap(ErrInvalidParam, "geometry mismatch for %s", "/q")
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("errors.Is(%v, ErrInvalidParam) = false, want true", err)
	}
	if errors.Is(err, ErrTemporaryError) {
		t.Fatalf("errors.Is(%v, ErrTemporaryError) = true, want false", err)
	}
}

func TestOSError(t *testing.T) {
	if got := osError("open", nil); got != nil {
		t.Fatalf("osError(_, nil) = %v, want nil", got)
	}
	err := osError("open /x", io.ErrClosedPipe)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("osError does not wrap the original error: %v", err)
	}
	if got, want := err.Error(), fmt.Sprintf("shmring: open /x: %s", io.ErrClosedPipe); got != want {
		t.Errorf("osError message = %q, want %q", got, want)
	}
}

func TestKind_String(t *testing.T) {
	if got := KindTemporary.String(); got != "temporary" {
		t.Errorf("Kind.String() = %q, want %q", got, "temporary")
	}
	if got := Kind(999).String(); got != "unknown" {
		t.Errorf("Kind.String() for unrecognized kind = %q, want %q", got, "unknown")
	}
}
