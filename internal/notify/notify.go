// Package notify provides alert dispatch to the desktop notification surface
// and optional webhook mirrors.
package notify

import (
	"context"
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// Sink delivers a notification to one surface.
type Sink interface {
	// Name identifies the sink in dispatch results.
	Name() string

	// Send delivers the notification.
	Send(ctx context.Context, n *model.Notification) error
}

// DispatchResult contains the result of dispatching to a single sink.
type DispatchResult struct {
	SinkName string
	Success  bool
	Duration time.Duration
	Error    error
}
