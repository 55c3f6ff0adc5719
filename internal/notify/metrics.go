package notify

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks alert delivery and scheduler activity.
type Metrics struct {
	// Counters
	alertsSent   atomic.Int64
	alertsFailed atomic.Int64
	ticksRun     atomic.Int64
	errorsTotal  atomic.Int64

	// Gauges with mutex for complex types
	mu            sync.RWMutex
	sinkLatencyMs int64
	lastAlertAt   time.Time
	lastTickAt    time.Time
	lastError     string
	lastErrorAt   time.Time

	// Error breakdown
	errorsByCategory map[string]int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		errorsByCategory: make(map[string]int64),
	}
}

// MetricsSnapshot represents a point-in-time view of metrics.
type MetricsSnapshot struct {
	AlertsSentTotal   int64            `json:"alerts_sent_total"`
	AlertsFailedTotal int64            `json:"alerts_failed_total"`
	TicksRunTotal     int64            `json:"ticks_run_total"`
	ErrorsTotal       int64            `json:"errors_total"`
	SinkLatencyMs     int64            `json:"sink_latency_ms"`
	LastAlertAt       *time.Time       `json:"last_alert_at,omitempty"`
	LastTickAt        *time.Time       `json:"last_tick_at,omitempty"`
	LastError         string           `json:"last_error,omitempty"`
	LastErrorAt       *time.Time       `json:"last_error_at,omitempty"`
	ErrorsByCategory  map[string]int64 `json:"errors_by_category,omitempty"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		AlertsSentTotal:   m.alertsSent.Load(),
		AlertsFailedTotal: m.alertsFailed.Load(),
		TicksRunTotal:     m.ticksRun.Load(),
		ErrorsTotal:       m.errorsTotal.Load(),
		SinkLatencyMs:     m.sinkLatencyMs,
		LastError:         m.lastError,
		ErrorsByCategory:  make(map[string]int64, len(m.errorsByCategory)),
	}

	if !m.lastAlertAt.IsZero() {
		snap.LastAlertAt = &m.lastAlertAt
	}
	if !m.lastTickAt.IsZero() {
		snap.LastTickAt = &m.lastTickAt
	}
	if !m.lastErrorAt.IsZero() {
		snap.LastErrorAt = &m.lastErrorAt
	}

	for k, v := range m.errorsByCategory {
		snap.ErrorsByCategory[k] = v
	}

	return snap
}

// JSON returns metrics as JSON.
func (m *Metrics) JSON() ([]byte, error) {
	return json.MarshalIndent(m.Snapshot(), "", "  ")
}

// RecordAlertSent records a successful alert delivery.
func (m *Metrics) RecordAlertSent(latencyMs int64) {
	m.alertsSent.Add(1)

	m.mu.Lock()
	m.sinkLatencyMs = latencyMs
	m.lastAlertAt = time.Now()
	m.mu.Unlock()
}

// RecordAlertFailed records a failed alert delivery.
func (m *Metrics) RecordAlertFailed(err error) {
	m.alertsFailed.Add(1)
	m.RecordError("alert", err)
}

// RecordTick records one scheduler check cycle.
func (m *Metrics) RecordTick() {
	m.ticksRun.Add(1)

	m.mu.Lock()
	m.lastTickAt = time.Now()
	m.mu.Unlock()
}

// RecordError records an error with category.
func (m *Metrics) RecordError(category string, err error) {
	m.errorsTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err.Error()
	m.lastErrorAt = time.Now()

	if category != "" {
		m.errorsByCategory[category]++
	}
}

// AlertsSent returns the total alerts delivered.
func (m *Metrics) AlertsSent() int64 {
	return m.alertsSent.Load()
}

// AlertsFailed returns the total failed deliveries.
func (m *Metrics) AlertsFailed() int64 {
	return m.alertsFailed.Load()
}

// TicksRun returns the total scheduler check cycles.
func (m *Metrics) TicksRun() int64 {
	return m.ticksRun.Load()
}

// ErrorsTotal returns the total errors.
func (m *Metrics) ErrorsTotal() int64 {
	return m.errorsTotal.Load()
}

// SinkLatency returns the last sink latency in ms.
func (m *Metrics) SinkLatency() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sinkLatencyMs
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.alertsSent.Store(0)
	m.alertsFailed.Store(0)
	m.ticksRun.Store(0)
	m.errorsTotal.Store(0)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sinkLatencyMs = 0
	m.lastAlertAt = time.Time{}
	m.lastTickAt = time.Time{}
	m.lastError = ""
	m.lastErrorAt = time.Time{}
	m.errorsByCategory = make(map[string]int64)
}

// GlobalMetrics is the default metrics instance.
var GlobalMetrics = NewMetrics()
