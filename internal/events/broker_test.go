package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_FanOutWithSequence(t *testing.T) {
	b := NewBroker(4)
	defer b.Close()

	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()
	assert.Equal(t, 2, b.Subscribers())

	require.NoError(t, b.Publish(context.Background(), NewEvent(TareaCreada, 1)))
	require.NoError(t, b.Publish(context.Background(), NewEvent(TareaEliminada, 1)))

	for _, ch := range []<-chan Event{ch1, ch2} {
		first := <-ch
		second := <-ch
		assert.Equal(t, TareaCreada, first.Type)
		assert.Equal(t, TareaEliminada, second.Type)
		assert.Less(t, first.SequenceID, second.SequenceID)
	}
	assert.Equal(t, int64(2), b.Published())
}

func TestBroker_SlowSubscriberDrops(t *testing.T) {
	b := NewBroker(1)
	defer b.Close()

	ch, unsub := b.Subscribe()
	defer unsub()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Publish(context.Background(), NewEvent(TareaActualizada, i)))
	}

	assert.Equal(t, int64(2), b.Dropped())
	ev := <-ch
	assert.Equal(t, 0, ev.EntidadID, "the queued event is the first one")
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker(1)

	ch, unsub := b.Subscribe()
	unsub()
	unsub() // idempotent

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, b.Subscribers())
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker(1)
	ch, unsub := b.Subscribe()
	defer unsub()

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, ok := <-ch
	assert.False(t, ok)

	late, _ := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok, "subscriptions after close start closed")

	// publishing after close is harmless
	assert.NoError(t, b.Publish(context.Background(), NewEvent(TareaCreada, 1)))
}
