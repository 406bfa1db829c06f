package api

import (
	"sync/atomic"
	"time"
)

// Metrics tracks API statistics using atomic operations for thread-safety
type Metrics struct {
	Requests      atomic.Int64
	Errors        atomic.Int64
	EventsSent    atomic.Int64
	StreamClients atomic.Int32
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequests increments the handled requests counter
func (m *Metrics) IncRequests() {
	m.Requests.Add(1)
}

// IncErrors increments the failed requests counter
func (m *Metrics) IncErrors() {
	m.Errors.Add(1)
}

// IncEventsSent increments the counter of frames written to stream clients
func (m *Metrics) IncEventsSent() {
	m.EventsSent.Add(1)
}

// AddStreamClients adjusts the connected stream clients gauge
func (m *Metrics) AddStreamClients(delta int32) {
	m.StreamClients.Add(delta)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Requests        int64     `json:"requests"`
	Errors          int64     `json:"errors"`
	EventsSent      int64     `json:"events_sent"`
	EventsPublished int64     `json:"events_published"`
	EventsDropped   int64     `json:"events_dropped"`
	StreamClients   int32     `json:"stream_clients"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics. Broker counters are
// filled in by the caller.
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:      m.Requests.Load(),
		Errors:        m.Errors.Load(),
		EventsSent:    m.EventsSent.Load(),
		StreamClients: m.StreamClients.Load(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).Round(time.Second).String(),
	}
}
