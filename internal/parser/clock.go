// Package parser provides clock-time parsing for MindfulMate input.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// ClockResult holds the parsed clock time and any error.
type ClockResult struct {
	// Clock is the normalized "HH:MM" value.
	Clock string
	Valid bool
	Error error
}

// clockRegex matches an already-normalized "HH:MM" 24-hour value.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock normalizes user clock input to "HH:MM".
//
// Accepts the canonical 24-hour form directly and falls back to natural
// language ("5pm", "quarter past nine", "in 2 hours") via go-dateparser,
// keeping only the time-of-day component.
func ParseClock(input string) ClockResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return ClockResult{Valid: true}
	}

	if clockRegex.MatchString(input) {
		return ClockResult{Clock: input, Valid: true}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return ClockResult{Error: err}
	}

	return ClockResult{Clock: result.Time.Format("15:04"), Valid: true}
}

// FormatClock formats a time's wall-clock component as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// Now returns the current local time formatted as "HH:MM", the exact form
// the scheduler compares against goal start times.
func Now() string {
	return FormatClock(time.Now())
}
