package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	assert.NotNil(t, m)
	assert.Equal(t, int64(0), m.AlertsSent())
}

func TestMetricsRecordAlertSent(t *testing.T) {
	m := NewMetrics()

	m.RecordAlertSent(100)

	assert.Equal(t, int64(1), m.AlertsSent())
	assert.Equal(t, int64(100), m.SinkLatency())
}

func TestMetricsRecordAlertFailed(t *testing.T) {
	m := NewMetrics()

	m.RecordAlertFailed(errors.New("network error"))

	assert.Equal(t, int64(1), m.AlertsFailed())
	assert.Equal(t, int64(1), m.ErrorsTotal())
}

func TestMetricsRecordTick(t *testing.T) {
	m := NewMetrics()

	m.RecordTick()
	m.RecordTick()

	assert.Equal(t, int64(2), m.TicksRun())
}

func TestMetricsRecordError(t *testing.T) {
	m := NewMetrics()

	m.RecordError("webhook", errors.New("timeout"))
	m.RecordError("webhook", errors.New("timeout"))
	m.RecordError("db", errors.New("connection failed"))

	assert.Equal(t, int64(3), m.ErrorsTotal())

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ErrorsByCategory["webhook"])
	assert.Equal(t, int64(1), snap.ErrorsByCategory["db"])
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordAlertSent(50)
	m.RecordAlertFailed(errors.New("error"))
	m.RecordTick()

	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.AlertsSentTotal)
	assert.Equal(t, int64(1), snap.AlertsFailedTotal)
	assert.Equal(t, int64(1), snap.TicksRunTotal)
	assert.Equal(t, int64(50), snap.SinkLatencyMs)
	assert.NotNil(t, snap.LastAlertAt)
	assert.NotNil(t, snap.LastTickAt)
}

func TestMetricsJSON(t *testing.T) {
	m := NewMetrics()

	m.RecordAlertSent(100)

	data, err := m.JSON()
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), "alerts_sent_total")
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()

	m.RecordAlertSent(100)
	m.RecordAlertFailed(errors.New("error"))
	m.RecordTick()
	m.RecordError("test", errors.New("test"))

	m.Reset()

	assert.Equal(t, int64(0), m.AlertsSent())
	assert.Equal(t, int64(0), m.AlertsFailed())
	assert.Equal(t, int64(0), m.TicksRun())
	assert.Equal(t, int64(0), m.ErrorsTotal())
	assert.Equal(t, int64(0), m.SinkLatency())

	snap := m.Snapshot()
	assert.Nil(t, snap.LastAlertAt)
	assert.Empty(t, snap.LastError)
}

func TestGlobalMetrics(t *testing.T) {
	assert.NotNil(t, GlobalMetrics)

	// Reset before and after to avoid affecting other tests
	GlobalMetrics.Reset()
	defer GlobalMetrics.Reset()

	GlobalMetrics.RecordAlertSent(10)
	assert.Equal(t, int64(1), GlobalMetrics.AlertsSent())
}
