package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/events"
)

// RecordingPublisher is an events.Publisher that keeps every event for
// later verification
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	closed bool

	// Err, when set, is returned by every Publish call
	Err error
}

// NewRecordingPublisher creates an empty recorder
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.Err
}

// Close marks the recorder closed
func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether Close was called
func (p *RecordingPublisher) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// Reset forgets the recorded events
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// WaitForEvent waits for an event on a channel with timeout.
// Returns the event if received, or fails the test on timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForNoEvent verifies that NO event is received within the timeout.
func WaitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()

	select {
	case event := <-ch:
		t.Fatalf("Unexpected event received: %+v", event)
	case <-time.After(timeout):
		// Success - no event received
	}
}
