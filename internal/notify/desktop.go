package notify

import (
	"context"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// AppIcon is the icon reference passed to the platform notification surface.
// Empty falls back to the platform default.
var AppIcon = ""

// DesktopSink shows alerts through the OS notification surface.
//
// A platform without a notification daemon degrades to an inert sink: the
// first failure marks the sink unsupported and later sends become silent
// no-ops reporting ErrAlertsUnsupported, never a crash.
type DesktopSink struct {
	mu          sync.Mutex
	unsupported bool
}

// NewDesktopSink creates the desktop notification sink.
func NewDesktopSink() *DesktopSink {
	return &DesktopSink{}
}

// Name identifies the sink.
func (s *DesktopSink) Name() string {
	return "desktop"
}

// Supported reports whether the platform surface is still considered usable.
func (s *DesktopSink) Supported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.unsupported
}

// Send shows the notification.
func (s *DesktopSink) Send(ctx context.Context, n *model.Notification) error {
	s.mu.Lock()
	if s.unsupported {
		s.mu.Unlock()
		return errors.ErrAlertsUnsupported
	}
	s.mu.Unlock()

	icon := n.Icon
	if icon == "" {
		icon = AppIcon
	}

	if err := beeep.Notify(n.Title, n.Message, icon); err != nil {
		s.mu.Lock()
		s.unsupported = true
		s.mu.Unlock()
		return errors.Wrap(errors.ErrAlertsUnsupported, err.Error())
	}
	return nil
}
