package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from a redis:// URL
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// RedisPublisher publishes events on a Redis pub/sub channel so every API
// instance running a Relay sees them
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher publishes on channel through client. Close closes the client.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish encodes the event and sends it on the channel
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Relay forwards events from a Redis channel into a local publisher
// (normally the Broker behind the SSE endpoint)
type Relay struct {
	client  *redis.Client
	channel string
	target  Publisher

	// RetryDelay is the pause before resubscribing after the
	// subscription drops
	RetryDelay time.Duration
}

// NewRelay creates a relay from channel to target
func NewRelay(client *redis.Client, channel string, target Publisher) *Relay {
	return &Relay{
		client:     client,
		channel:    channel,
		target:     target,
		RetryDelay: time.Second,
	}
}

// Run subscribes and forwards until ctx is done, resubscribing whenever
// the subscription fails or its channel closes
func (r *Relay) Run(ctx context.Context) {
	for {
		if err := r.forward(ctx); err != nil {
			slog.Warn("event relay interrupted", "channel", r.channel, "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.RetryDelay):
		}
	}
}

func (r *Relay) forward(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			slog.Debug("failed to close redis subscription", "error", err)
		}
	}()

	// wait for the subscription confirmation so publish-after-start is seen
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	slog.Info("event relay subscribed", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription channel closed")
			}
			var event Event
			if err := sonic.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Error("unable to parse event", "error", err)
				continue
			}
			if err := r.target.Publish(ctx, event); err != nil {
				slog.Error("failed to forward event", "event_type", event.Type, "error", err)
			}
		}
	}
}
