package shmring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProducerConsumer_Roundtrip(t *testing.T) {
	name := uniqueName(t)
	opts := Options{ElementSize: 8, Capacity: 4}

	prod, err := NewProducer(name, opts)
	require.NoError(t, err)
	require.NoError(t, prod.Open())
	defer prod.Close()

	cons, err := NewConsumer(name, opts)
	require.NoError(t, err)
	require.NoError(t, cons.Open())
	defer cons.Close()

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, prod.Push(payload))
	require.Equal(t, uint64(1), cons.Pending())
	require.False(t, cons.Empty())

	got := make([]byte, 8)
	require.NoError(t, cons.Pop(got))
	require.Equal(t, payload, got)
	require.True(t, cons.Empty())
}

func TestProducer_AvailableAndFull(t *testing.T) {
	name := uniqueName(t)
	opts := Options{ElementSize: 4, Capacity: 2}

	prod, err := NewProducer(name, opts)
	require.NoError(t, err)
	require.NoError(t, prod.Open())
	defer prod.Close()

	require.Equal(t, uint64(2), prod.Available())
	require.False(t, prod.Full())

	require.NoError(t, prod.TryPush(elemOf(1, 4)))
	require.NoError(t, prod.TryPush(elemOf(2, 4)))
	require.True(t, prod.Full())
	require.Equal(t, uint64(0), prod.Available())
	require.ErrorIs(t, prod.TryPush(elemOf(3, 4)), ErrTemporaryError)
}

func TestNewProducer_DefaultsGeometry(t *testing.T) {
	name := uniqueName(t)
	prod, err := NewProducer(name, Options{})
	require.NoError(t, err)
	require.NoError(t, prod.Open())
	defer prod.Close()

	require.Equal(t, DefaultElementSize, prod.ElementSize())
	require.Equal(t, DefaultCapacity, prod.Capacity())
}

func TestConsumer_TimedPop_TimesOutWhenEmpty(t *testing.T) {
	name := uniqueName(t)
	cons, err := NewConsumer(name, Options{ElementSize: 4, Capacity: 2})
	require.NoError(t, err)
	require.NoError(t, cons.Open())
	defer cons.Close()

	buf := make([]byte, 4)
	err = cons.TimedPop(buf, 20*time.Millisecond)
	require.ErrorIs(t, err, ErrTimedOut)
}

func TestProducer_QueueOpsBeforeOpen_ReturnInvalidParam(t *testing.T) {
	name := uniqueName(t)
	prod, err := NewProducer(name, Options{ElementSize: 4, Capacity: 2})
	require.NoError(t, err)

	require.ErrorIs(t, prod.TryPush(elemOf(1, 4)), ErrInvalidParam)
	require.ErrorIs(t, prod.Push(elemOf(1, 4)), ErrInvalidParam)
	require.ErrorIs(t, prod.TimedPush(elemOf(1, 4), 10*time.Millisecond), ErrInvalidParam)
}

func TestConsumer_QueueOpsBeforeOpen_ReturnInvalidParam(t *testing.T) {
	name := uniqueName(t)
	cons, err := NewConsumer(name, Options{ElementSize: 4, Capacity: 2})
	require.NoError(t, err)

	buf := make([]byte, 4)
	require.ErrorIs(t, cons.TryPop(buf), ErrInvalidParam)
	require.ErrorIs(t, cons.Pop(buf), ErrInvalidParam)
	require.ErrorIs(t, cons.TimedPop(buf, 10*time.Millisecond), ErrInvalidParam)
}
