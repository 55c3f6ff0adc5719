package timer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// BreathingDisplay handles the visual display of a breathing session.
type BreathingDisplay struct {
	Writer   io.Writer
	UseColor bool
}

// NewBreathingDisplay creates a new breathing display.
func NewBreathingDisplay() *BreathingDisplay {
	return &BreathingDisplay{
		Writer:   os.Stdout,
		UseColor: true,
	}
}

// Styles for the breathing display.
var (
	inhaleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")) // Blue

	holdStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A855F7")) // Purple

	exhaleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	countStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280")) // Gray

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// phaseStyle picks the style for a phase.
func phaseStyle(p Phase) lipgloss.Style {
	switch p {
	case PhaseInhale:
		return inhaleStyle
	case PhaseHold:
		return holdStyle
	case PhaseExhale:
		return exhaleStyle
	default:
		return hintStyle
	}
}

// RenderPhase renders the current phase of the session.
func (bd *BreathingDisplay) RenderPhase(phase Phase, remaining time.Duration, cyclesDone, totalCycles int) string {
	var output string

	header := "4-7-8 Anxiety Reduction"
	if bd.UseColor {
		output += hintStyle.Render(header)
	} else {
		output += header
	}
	output += "\n\n"

	if bd.UseColor {
		output += phaseStyle(phase).Render(phase.Label())
	} else {
		output += phase.Label()
	}
	output += "\n\n"

	seconds := int(remaining.Seconds()) + 1
	if remaining <= 0 {
		seconds = 0
	}
	countdown := fmt.Sprintf("%d", seconds)
	if bd.UseColor {
		output += countStyle.Render(countdown)
	} else {
		output += countdown
	}
	output += "\n\n"

	var cycles string
	if totalCycles > 0 {
		cycles = fmt.Sprintf("Cycles: %d/%d", cyclesDone, totalCycles)
	} else {
		cycles = fmt.Sprintf("Cycles: %d", cyclesDone)
	}
	if bd.UseColor {
		output += cycleStyle.Render(cycles)
	} else {
		output += cycles
	}
	output += "\n\n"

	hint := "SPACE pause | R restart | Q stop"
	if bd.UseColor {
		output += hintStyle.Render(hint)
	} else {
		output += hint
	}

	return output
}

// PausedHint renders the paused marker appended below a frame.
func (bd *BreathingDisplay) PausedHint() string {
	hint := "Paused. Press SPACE to resume"
	if bd.UseColor {
		return "\n\n" + hintStyle.Render(hint)
	}
	return "\n\n" + hint
}

// RenderComplete renders the final completion message.
func (bd *BreathingDisplay) RenderComplete(cycles int, elapsed time.Duration) string {
	var output string

	header := "Breathing session complete!"
	if bd.UseColor {
		output += exhaleStyle.Render(header)
	} else {
		output += header
	}
	output += "\n\n"

	stats := fmt.Sprintf("Completed %d cycles in %s", cycles, elapsed.Round(time.Second))
	if bd.UseColor {
		output += cycleStyle.Render(stats)
	} else {
		output += stats
	}

	return output
}

// ClearScreen clears the terminal screen.
func (bd *BreathingDisplay) ClearScreen() {
	fmt.Fprint(bd.Writer, "\033[H\033[2J")
}

// MoveCursorHome moves cursor to home position.
func (bd *BreathingDisplay) MoveCursorHome() {
	fmt.Fprint(bd.Writer, "\033[H")
}
