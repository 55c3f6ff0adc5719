// Package validate provides input validation helpers for the MindfulMate CLI.
package validate

import (
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

const (
	// MaxGoalTextLength is the maximum length for a goal's label.
	MaxGoalTextLength = 200
	// MaxNoteLength is the maximum length for a mood note.
	MaxNoteLength = 1024
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
)

// clockRegex validates "HH:MM" 24-hour wall-clock times.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ClockTime validates an optional "HH:MM" time. Empty is allowed (no time).
func ClockTime(clock string) error {
	if clock == "" {
		return nil
	}
	if !clockRegex.MatchString(clock) {
		return errors.NewUserErrorWithField("time", clock,
			"Invalid clock time",
			"Use 24-hour HH:MM format like '09:30' or '17:00'")
	}
	return nil
}

// GoalText validates a goal label.
func GoalText(text string) error {
	if text == "" {
		return errors.NewUserError("Task name cannot be empty", "Provide a short label for the task")
	}
	if utf8.RuneCountInString(text) > MaxGoalTextLength {
		return errors.NewUserErrorWithField("text", text,
			"Task name too long",
			"Task names must be 200 characters or fewer")
	}
	return nil
}

// MoodScore validates a mood rating.
func MoodScore(score int) error {
	if score < model.MoodScoreMin || score > model.MoodScoreMax {
		return errors.NewUserError(
			"Mood score out of range",
			"Mood scores go from 1 (low) to 5 (great)")
	}
	return nil
}

// Note validates a mood note.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"Note too long",
			"Notes must be 1024 characters or fewer")
	}
	return nil
}

// URL validates a URL for use as a webhook endpoint or shell origin.
func URL(rawURL string) error {
	if rawURL == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a valid URL")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL format",
			"Provide a valid URL starting with https://")
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)")
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a valid URL like https://example.com/hook")
	}

	isLocalhost := hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
	if parsed.Scheme == "http" && !isLocalhost {
		return errors.NewUserErrorWithField("url", rawURL,
			"HTTP not allowed for external URLs",
			"Use https:// for security. HTTP is only allowed for localhost.")
	}

	return nil
}
