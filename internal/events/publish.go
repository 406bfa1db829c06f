package events

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRetries is the attempt budget services use for change events
const DefaultRetries = 3

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Events are best effort: callers log the result and never fail the
// operation that produced the event.
func PublishWithRetry(ctx context.Context, p Publisher, event Event, maxRetries int) error {
	if p == nil {
		return nil // no push channel configured
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := p.Publish(ctx, event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"entidad_id", event.EntidadID)
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	// Log final failure at warn level since this affects live updates
	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"entidad_id", event.EntidadID,
		"error", lastErr)

	return lastErr
}
