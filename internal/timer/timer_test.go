package timer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseDurations(t *testing.T) {
	assert.Equal(t, 4*time.Second, PhaseInhale.Duration())
	assert.Equal(t, 7*time.Second, PhaseHold.Duration())
	assert.Equal(t, 8*time.Second, PhaseExhale.Duration())
	assert.Equal(t, 4*time.Second, PhaseReady.Duration())
}

func TestPhaseSequence(t *testing.T) {
	assert.Equal(t, PhaseInhale, PhaseReady.Next())
	assert.Equal(t, PhaseHold, PhaseInhale.Next())
	assert.Equal(t, PhaseExhale, PhaseHold.Next())
	assert.Equal(t, PhaseInhale, PhaseExhale.Next())
}

func TestPhaseLabels(t *testing.T) {
	assert.Equal(t, "Ready?", PhaseReady.Label())
	assert.Equal(t, "Inhale deeply...", PhaseInhale.Label())
	assert.Equal(t, "Hold it...", PhaseHold.Label())
	assert.Equal(t, "Exhale slowly...", PhaseExhale.Label())
}

func TestAdvanceCountsCycles(t *testing.T) {
	b := NewBreathing(BreathingConfig{TotalCycles: 2})

	// Ready -> Inhale -> Hold -> Exhale completes no cycle yet.
	assert.False(t, b.Advance())
	assert.False(t, b.Advance())
	assert.False(t, b.Advance())
	assert.Equal(t, PhaseExhale, b.GetState().Phase)
	assert.Equal(t, 0, b.GetState().CyclesDone)

	// Exhale -> Inhale closes the first cycle.
	assert.False(t, b.Advance())
	assert.Equal(t, 1, b.GetState().CyclesDone)
	assert.Equal(t, PhaseInhale, b.GetState().Phase)

	// Second full cycle finishes the session.
	assert.False(t, b.Advance())
	assert.False(t, b.Advance())
	assert.True(t, b.Advance())
	assert.Equal(t, 2, b.GetState().CyclesDone)
}

func TestAdvanceRunsForeverWithoutLimit(t *testing.T) {
	b := NewBreathing(BreathingConfig{TotalCycles: 0})

	// One advance out of Ready, then three advances per full cycle.
	for i := 0; i < 31; i++ {
		assert.False(t, b.Advance())
	}
	assert.Equal(t, 10, b.GetState().CyclesDone)
}

func TestAdvanceResetsRemaining(t *testing.T) {
	b := NewBreathing(DefaultBreathingConfig())

	b.Advance()
	assert.Equal(t, PhaseInhale.Duration(), b.GetState().Remaining)

	b.Advance()
	assert.Equal(t, PhaseHold.Duration(), b.GetState().Remaining)
}

func TestTogglePause(t *testing.T) {
	b := NewBreathing(DefaultBreathingConfig())

	var events []BreathingEvent
	b.SetCallback(func(event BreathingEvent, state BreathingState) {
		events = append(events, event)
	})

	b.TogglePause()
	assert.True(t, b.GetState().Paused)

	b.TogglePause()
	assert.False(t, b.GetState().Paused)

	assert.Equal(t, []BreathingEvent{EventPause, EventResume}, events)
}

func TestReset(t *testing.T) {
	b := NewBreathing(DefaultBreathingConfig())

	b.Advance()
	b.Advance()
	b.Advance()
	b.Advance()
	require.Equal(t, 1, b.GetState().CyclesDone)

	b.TogglePause()
	b.Reset()

	state := b.GetState()
	assert.Equal(t, PhaseReady, state.Phase)
	assert.Equal(t, PhaseReady.Duration(), state.Remaining)
	assert.Equal(t, 0, state.CyclesDone)
	assert.False(t, state.Paused)
}

func TestDefaultBreathingConfig(t *testing.T) {
	config := DefaultBreathingConfig()
	assert.Equal(t, 4, config.TotalCycles)
}

func TestRenderPhaseWithoutColor(t *testing.T) {
	display := NewBreathingDisplay()
	display.UseColor = false

	output := display.RenderPhase(PhaseInhale, 3*time.Second, 1, 4)
	assert.Contains(t, output, "Inhale deeply...")
	assert.Contains(t, output, "Cycles: 1/4")
	assert.Contains(t, output, "4-7-8")
}

func TestRenderPhaseOpenEnded(t *testing.T) {
	display := NewBreathingDisplay()
	display.UseColor = false

	output := display.RenderPhase(PhaseHold, 7*time.Second, 3, 0)
	assert.Contains(t, output, "Cycles: 3")
	assert.False(t, strings.Contains(output, "3/"))
}

func TestRenderComplete(t *testing.T) {
	display := NewBreathingDisplay()
	display.UseColor = false

	output := display.RenderComplete(4, 76*time.Second)
	assert.Contains(t, output, "Completed 4 cycles")
}

func TestWasInterrupted(t *testing.T) {
	b := NewBreathing(DefaultBreathingConfig())
	assert.False(t, b.WasInterrupted())

	b.interrupt()
	assert.True(t, b.WasInterrupted())
}
