package events

import "context"

// Publisher delivers events to whoever is listening. Services depend on
// this interface; the server picks the Broker or a RedisPublisher.
type Publisher interface {
	// Publish sends one event
	Publish(ctx context.Context, event Event) error

	// Close releases the publisher's resources
	Close() error
}

// Compile-time verification of the implementations
var (
	_ Publisher = (*Broker)(nil)
	_ Publisher = (*RedisPublisher)(nil)
)
