package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// Dispatcher fans a notification out to every registered sink.
type Dispatcher struct {
	sinks []Sink
}

// NewDispatcher creates a dispatcher with the given sinks.
func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks}
}

// AddSink registers an additional sink.
func (d *Dispatcher) AddSink(sink Sink) {
	d.sinks = append(d.sinks, sink)
}

// SinkCount returns the number of registered sinks.
func (d *Dispatcher) SinkCount() int {
	return len(d.sinks)
}

// Dispatch sends the notification to all sinks concurrently and
// returns one result per sink. A failing sink never blocks the others.
func (d *Dispatcher) Dispatch(ctx context.Context, notification *model.Notification) []DispatchResult {
	if len(d.sinks) == 0 {
		return nil
	}

	results := make([]DispatchResult, len(d.sinks))
	var wg sync.WaitGroup

	for i, sink := range d.sinks {
		wg.Add(1)
		go func(idx int, s Sink) {
			defer wg.Done()
			start := time.Now()
			err := s.Send(ctx, notification)
			results[idx] = DispatchResult{
				SinkName: s.Name(),
				Success:  err == nil,
				Duration: time.Since(start),
				Error:    err,
			}
			if err != nil {
				GlobalMetrics.RecordAlertFailed(err)
				logging.Warn("notification delivery failed",
					"sink", s.Name(),
					"type", notification.Type,
					logging.KeyError, err)
			} else {
				GlobalMetrics.RecordAlertSent(results[idx].Duration.Milliseconds())
				logging.DebugLog("notification delivered",
					"sink", s.Name(),
					"type", notification.Type,
					logging.KeyDuration, results[idx].Duration)
			}
		}(i, sink)
	}

	wg.Wait()
	return results
}
