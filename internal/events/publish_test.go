package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails the first failUntil attempts
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	lastEvent    Event
}

func (m *mockRetryPublisher) Publish(_ context.Context, event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

func (m *mockRetryPublisher) Close() error { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := NewEvent(TareaCreada, 1)

	err := PublishWithRetry(context.Background(), mock, event, 3)
	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}

	if mock.lastEvent.EntidadID != 1 {
		t.Errorf("Expected entidad ID 1, got %d", mock.lastEvent.EntidadID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}

	err := PublishWithRetry(context.Background(), mock, NewEvent(TareaActualizada, 2), 3)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(context.Background(), mock, NewEvent(TareaEliminada, 3), 3)
	if err == nil {
		t.Fatal("Expected error after all retries failed, got nil")
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}

	if err.Error() != "simulated send failure" {
		t.Errorf("Expected error 'simulated send failure', got '%s'", err.Error())
	}
}

func TestPublishWithRetry_NilPublisher(t *testing.T) {
	// Should not panic and return nil
	err := PublishWithRetry(context.Background(), nil, NewEvent(TareaCreada, 1), 3)
	if err != nil {
		t.Errorf("Expected nil error for nil publisher, got: %v", err)
	}
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	err := PublishWithRetry(context.Background(), mock, NewEvent(ComentarioCreado, 4), 3)
	duration := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	// First retry: 50ms, Second retry: 100ms = 150ms minimum
	minDuration := 150 * time.Millisecond
	maxDuration := 500 * time.Millisecond

	if duration < minDuration {
		t.Errorf("Expected at least %v delay for retries, got %v", minDuration, duration)
	}

	if duration > maxDuration {
		t.Errorf("Expected delay under %v, got %v (may indicate backoff is too long)", maxDuration, duration)
	}
}

func TestPublishWithRetry_CancelledContext(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := PublishWithRetry(ctx, mock, NewEvent(TareaCreada, 5), 3)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt before giving up, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	// With 0 retries, should not attempt any sends
	err := PublishWithRetry(context.Background(), mock, NewEvent(TareaCreada, 6), 0)
	if err != nil {
		t.Errorf("Expected nil error with 0 retries (no attempts), got: %v", err)
	}

	if mock.sendAttempts != 0 {
		t.Errorf("Expected 0 attempts with maxRetries=0, got %d", mock.sendAttempts)
	}
}

func TestEventTypeEntidad(t *testing.T) {
	tests := map[EventType]string{
		TareaCreada:            "tarea",
		ComentarioEliminado:    "comentario",
		ResponsableActualizado: "responsable",
	}
	for typ, want := range tests {
		if got := typ.Entidad(); got != want {
			t.Errorf("%s.Entidad() = %q, want %q", typ, got, want)
		}
		if ev := NewEvent(typ, 9); ev.Entidad != want || ev.EntidadID != 9 || ev.Timestamp.IsZero() {
			t.Errorf("NewEvent(%s) = %+v", typ, ev)
		}
	}
}
