package errors

import (
	"errors"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, missing args).
	CategoryUser
	// CategorySystem indicates a system-level error (disk full, network down).
	CategorySystem
	// CategoryRecoverable indicates an error that can be automatically retried.
	CategoryRecoverable
	// CategoryInternal indicates an internal bug or unexpected state.
	CategoryInternal
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	case CategoryRecoverable:
		return "recoverable"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	// Check for our typed errors first
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) {
		return CategorySystem
	}
	if IsRecoverableError(err) {
		return CategoryRecoverable
	}

	// Known sentinels
	switch {
	case errors.Is(err, ErrGoalNotFound),
		errors.Is(err, ErrMoodNotFound),
		errors.Is(err, ErrInvalidClockTime),
		errors.Is(err, ErrInvalidMoodScore),
		errors.Is(err, ErrInvalidURL),
		errors.Is(err, ErrAPIKeyMissing),
		errors.Is(err, ErrAlertsNotGranted):
		return CategoryUser
	case errors.Is(err, ErrDatabaseCorrupted),
		errors.Is(err, ErrAlertsUnsupported),
		errors.Is(err, ErrPermissionDenied):
		return CategorySystem
	case errors.Is(err, ErrNetworkUnavailable),
		errors.Is(err, ErrChatUnavailable),
		errors.Is(err, ErrTimeout):
		return CategoryRecoverable
	}

	// Syscall-level failures are system errors
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return CategorySystem
	}

	return CategoryUnknown
}
