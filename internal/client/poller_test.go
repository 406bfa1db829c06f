package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/events"
)

func TestPoller_Trigger(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(time.Hour, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	defer p.Stop()

	p.Trigger()
	require.Eventually(t, func() bool { return p.Runs() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestPoller_FailedReloadNotCounted(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(time.Hour, func(context.Context) error {
		calls.Add(1)
		return errors.New("unreachable")
	}, nil)
	defer p.Stop()

	p.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, p.Runs())
}

func TestPoller_SkipsOverlappingRuns(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int64
	p := NewPoller(time.Hour, func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, nil)

	p.Trigger()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	p.Trigger()
	p.Trigger()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load(), "overlapping runs are skipped")

	close(release)
	require.Eventually(t, func() bool { return p.Runs() == 1 }, time.Second, 5*time.Millisecond)
	p.Stop()
}

func TestPoller_Schedule(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(time.Second, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)

	require.NoError(t, p.Start())
	require.Eventually(t, func() bool { return p.Runs() >= 1 }, 3*time.Second, 20*time.Millisecond)
	p.Stop()

	after := calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no runs after Stop")
}

func TestPoller_StopCancelsReload(t *testing.T) {
	started := make(chan struct{})
	var sawCancel atomic.Bool
	p := NewPoller(time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
		return ctx.Err()
	}, nil)

	p.Trigger()
	<-started
	p.Stop()

	assert.Eventually(t, sawCancel.Load, time.Second, 5*time.Millisecond)
	// Stop is idempotent
	p.Stop()
}

func TestPoller_StopWaitsForTriggeredReload(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	p := NewPoller(time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		// still touching the store after the cancel
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	}, nil)

	p.Trigger()
	<-started
	p.Stop()
	assert.True(t, finished.Load(), "Stop returns only after the reload")
}

func TestPoller_TriggerAfterStop(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(time.Hour, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	p.Stop()

	p.Trigger()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestPoller_Follow(t *testing.T) {
	var calls atomic.Int64
	p := NewPoller(time.Hour, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	defer p.Stop()

	s := &fakeStreamer{events: []events.Event{events.NewEvent(events.TareaCreada, 1)}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Follow(ctx, s, 10*time.Millisecond)
		close(done)
	}()

	// the fake stream ends after one event, so Follow reconnects
	require.Eventually(t, func() bool { return s.Opened() >= 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}
