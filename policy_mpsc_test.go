package shmring

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMPSC_FairnessOfCompletion has four producers each push 10000
// distinct ids with their producer index encoded in the high byte, and
// one consumer drain them. Per-producer FIFO order must be preserved and
// exactly 40000 items popped with no duplicates.
func TestMPSC_FairnessOfCompletion(t *testing.T) {
	const (
		producers  = 4
		perProducer = 10000
	)
	seg := openTestSegment(t, 4, 1024)
	p := newMPSCPolicy(seg)

	var wg sync.WaitGroup
	wg.Add(producers)
	for pid := range producers {
		go func(pid int) {
			defer wg.Done()
			for i := range perProducer {
				buf := make([]byte, 4)
				id := uint32(pid)<<24 | uint32(i)
				binary.LittleEndian.PutUint32(buf, id)
				require.NoError(t, blockingPush(p, buf))
			}
		}(pid)
	}

	popped := make([][]uint32, producers)
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4)
		for range producers * perProducer {
			require.NoError(t, blockingPop(p, buf))
			id := binary.LittleEndian.Uint32(buf)
			pid := id >> 24
			seq := id & 0x00FFFFFF
			popped[pid] = append(popped[pid], seq)
		}
	}()

	wg.Wait()
	<-done

	total := 0
	for pid := range producers {
		total += len(popped[pid])
		for i, seq := range popped[pid] {
			require.Equal(t, uint32(i), seq, "producer %d: per-producer FIFO order violated", pid)
		}
	}
	require.Equal(t, producers*perProducer, total)
}

func TestMPSC_ConsumerIsSingleOwner(t *testing.T) {
	seg := openTestSegment(t, 4, 8)
	p := newMPSCPolicy(seg)

	require.NoError(t, p.tryPush(elemOf(1, 4)))
	require.NoError(t, p.tryPush(elemOf(2, 4)))

	buf := make([]byte, 4)
	require.NoError(t, p.tryPop(buf))
	require.Equal(t, elemOf(1, 4), buf)
	require.NoError(t, p.tryPop(buf))
	require.Equal(t, elemOf(2, 4), buf)
	require.ErrorIs(t, p.tryPop(buf), ErrTemporaryError)
}
