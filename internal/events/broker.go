package events

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the per-subscriber queue length
const DefaultBufferSize = 16

// Broker fans events out to in-process subscribers (the SSE streams).
// A subscriber whose queue is full misses the event instead of blocking
// the publisher; clients reconcile through their next full reload.
type Broker struct {
	bufferSize int

	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool

	sequence  atomic.Int64
	published atomic.Int64
	dropped   atomic.Int64
}

// NewBroker creates a broker whose subscribers buffer bufferSize events
func NewBroker(bufferSize int) *Broker {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Broker{
		bufferSize: bufferSize,
		subs:       make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new listener. The returned function removes it
// and closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(ch) })
	}
}

func (b *Broker) unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish assigns the next sequence id and delivers without blocking
func (b *Broker) Publish(_ context.Context, event Event) error {
	event.SequenceID = b.sequence.Add(1)
	b.published.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers returns the number of active listeners
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Published returns the number of events accepted since start
func (b *Broker) Published() int64 {
	return b.published.Load()
}

// Dropped returns the number of deliveries skipped on full queues
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Close disconnects every subscriber; later subscriptions start closed
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	return nil
}
