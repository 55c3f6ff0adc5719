// Package timer provides the guided breathing exercise for MindfulMate.
package timer

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Phase is one step of the 4-7-8 breathing technique.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseInhale
	PhaseHold
	PhaseExhale
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhaseInhale:
		return "INHALE"
	case PhaseHold:
		return "HOLD"
	case PhaseExhale:
		return "EXHALE"
	default:
		return "UNKNOWN"
	}
}

// Label returns the guidance text for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseReady:
		return "Ready?"
	case PhaseInhale:
		return "Inhale deeply..."
	case PhaseHold:
		return "Hold it..."
	case PhaseExhale:
		return "Exhale slowly..."
	default:
		return ""
	}
}

// Duration returns how long the phase lasts.
func (p Phase) Duration() time.Duration {
	switch p {
	case PhaseInhale:
		return 4 * time.Second
	case PhaseHold:
		return 7 * time.Second
	case PhaseExhale:
		return 8 * time.Second
	default:
		return 4 * time.Second
	}
}

// Next returns the phase that follows.
func (p Phase) Next() Phase {
	switch p {
	case PhaseReady:
		return PhaseInhale
	case PhaseInhale:
		return PhaseHold
	case PhaseHold:
		return PhaseExhale
	default:
		return PhaseInhale
	}
}

// BreathingConfig holds the configuration for a breathing session.
type BreathingConfig struct {
	TotalCycles int // 0 means run until quit
}

// DefaultBreathingConfig returns the default breathing configuration.
func DefaultBreathingConfig() BreathingConfig {
	return BreathingConfig{TotalCycles: 4}
}

// BreathingState represents the current state of the breathing session.
type BreathingState struct {
	Phase         Phase
	Remaining     time.Duration
	CyclesDone    int
	Paused        bool
	StartTime     time.Time
	InterruptedAt *time.Time
}

// BreathingEvent represents events from the breathing session.
type BreathingEvent int

const (
	EventTick BreathingEvent = iota
	EventPhaseChange
	EventCycleComplete
	EventAllComplete
	EventQuit
	EventPause
	EventResume
	EventReset
)

// BreathingCallback is called when events occur.
type BreathingCallback func(event BreathingEvent, state BreathingState)

// Breathing manages a guided 4-7-8 breathing session.
type Breathing struct {
	config   BreathingConfig
	state    BreathingState
	display  *BreathingDisplay
	callback BreathingCallback

	mu     sync.RWMutex
	quitCh chan struct{}
}

// NewBreathing creates a new breathing session.
func NewBreathing(config BreathingConfig) *Breathing {
	return &Breathing{
		config:  config,
		display: NewBreathingDisplay(),
		state: BreathingState{
			Phase:     PhaseReady,
			Remaining: PhaseReady.Duration(),
		},
		quitCh: make(chan struct{}, 1),
	}
}

// SetCallback sets the event callback.
func (b *Breathing) SetCallback(cb BreathingCallback) {
	b.callback = cb
}

// SetDisplay sets the breathing display.
func (b *Breathing) SetDisplay(display *BreathingDisplay) {
	b.display = display
}

// GetState returns a copy of the current state.
func (b *Breathing) GetState() BreathingState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Quit ends the session early.
func (b *Breathing) Quit() {
	select {
	case b.quitCh <- struct{}{}:
	default:
	}
}

// TogglePause pauses or resumes the countdown without losing the phase.
func (b *Breathing) TogglePause() {
	b.mu.Lock()
	b.state.Paused = !b.state.Paused
	paused := b.state.Paused
	b.mu.Unlock()

	if b.callback != nil {
		if paused {
			b.callback(EventPause, b.GetState())
		} else {
			b.callback(EventResume, b.GetState())
		}
	}
}

// Reset returns the session to the ready phase with zero completed cycles.
func (b *Breathing) Reset() {
	b.mu.Lock()
	b.state.Phase = PhaseReady
	b.state.Remaining = PhaseReady.Duration()
	b.state.CyclesDone = 0
	b.state.Paused = false
	b.mu.Unlock()

	if b.callback != nil {
		b.callback(EventReset, b.GetState())
	}
}

// Advance moves the session forward one phase and reports whether all
// cycles are complete. Exposed separately from Run so the phase
// progression is testable without a terminal.
func (b *Breathing) Advance() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.state.Phase.Next()
	if b.state.Phase == PhaseExhale && next == PhaseInhale {
		b.state.CyclesDone++
		if b.config.TotalCycles > 0 && b.state.CyclesDone >= b.config.TotalCycles {
			return true
		}
	}

	b.state.Phase = next
	b.state.Remaining = next.Duration()
	return false
}

// Run starts the session and blocks until complete or quit.
func (b *Breathing) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer term.Restore(int(os.Stdin.Fd()), oldState)
		go b.listenKeyboard(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	b.mu.Lock()
	b.state.StartTime = time.Now()
	b.mu.Unlock()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	lastUpdate := time.Now()

	for {
		select {
		case <-ctx.Done():
			return b.interrupt()

		case <-sigCh:
			return b.interrupt()

		case <-b.quitCh:
			return b.interrupt()

		case <-ticker.C:
			b.mu.Lock()
			elapsed := time.Since(lastUpdate)
			lastUpdate = time.Now()
			if !b.state.Paused {
				b.state.Remaining -= elapsed
			}
			phaseDone := !b.state.Paused && b.state.Remaining <= 0
			b.mu.Unlock()

			if phaseDone {
				wasExhale := b.GetState().Phase == PhaseExhale
				done := b.Advance()

				if wasExhale && b.callback != nil {
					b.callback(EventCycleComplete, b.GetState())
				}
				if done {
					if b.callback != nil {
						b.callback(EventAllComplete, b.GetState())
					}
					b.display.ClearScreen()
					state := b.GetState()
					os.Stdout.WriteString(b.display.RenderComplete(state.CyclesDone, time.Since(state.StartTime)) + "\n")
					return nil
				}
				if b.callback != nil {
					b.callback(EventPhaseChange, b.GetState())
				}
			} else if b.callback != nil {
				b.callback(EventTick, b.GetState())
			}

			b.render()
		}
	}
}

func (b *Breathing) interrupt() error {
	b.mu.Lock()
	now := time.Now()
	b.state.InterruptedAt = &now
	b.mu.Unlock()

	if b.callback != nil {
		b.callback(EventQuit, b.GetState())
	}
	return nil
}

// WasInterrupted returns true if the session was quit early.
func (b *Breathing) WasInterrupted() bool {
	return b.GetState().InterruptedAt != nil
}

// render updates the display.
func (b *Breathing) render() {
	state := b.GetState()

	b.display.MoveCursorHome()
	b.display.ClearScreen()

	output := b.display.RenderPhase(state.Phase, state.Remaining, state.CyclesDone, b.config.TotalCycles)
	if state.Paused {
		output += b.display.PausedHint()
	}
	os.Stdout.WriteString(output)
}

// listenKeyboard listens for keyboard input.
func (b *Breathing) listenKeyboard(ctx context.Context) {
	buf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			os.Stdin.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			switch buf[0] {
			case 'q', 'Q', 3: // Q or Ctrl+C
				b.Quit()
			case ' ':
				b.TogglePause()
			case 'r', 'R':
				b.Reset()
			}
		}
	}
}
