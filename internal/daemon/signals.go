package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler separates shutdown signals from the check-now signal.
// SIGUSR1 runs a reminder check immediately instead of stopping the
// daemon, which is handy when testing goal schedules.
type SignalHandler struct {
	signals  chan os.Signal
	done     chan struct{}
	checkNow func()
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
}

// OnCheckNow registers the callback run when SIGUSR1 arrives.
func (h *SignalHandler) OnCheckNow(fn func()) {
	h.checkNow = fn
}

// Setup registers signal handlers.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // Termination request
		syscall.SIGHUP,  // Terminal hangup
		syscall.SIGUSR1, // Run a reminder check now
	)
}

// Wait blocks until a shutdown signal is received or context is cancelled.
// SIGUSR1 fires the check-now callback and keeps waiting.
func (h *SignalHandler) Wait(ctx context.Context) os.Signal {
	for {
		select {
		case sig := <-h.signals:
			if sig == syscall.SIGUSR1 {
				if h.checkNow != nil {
					h.checkNow()
				}
				continue
			}
			return sig
		case <-ctx.Done():
			return nil
		case <-h.done:
			return nil
		}
	}
}

// Stop stops waiting for signals.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	close(h.done)
}

// Cleanup performs cleanup after signal handling.
func (h *SignalHandler) Cleanup() {
	signal.Stop(h.signals)
}
