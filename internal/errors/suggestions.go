package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrGoalNotFound:     "Use 'mindfulmate goal list' to see your scheduled tasks.",
	ErrMoodNotFound:     "Use 'mindfulmate mood log <1-5>' to record how you feel.",
	ErrInvalidClockTime: "Use 24-hour HH:MM format like '09:30' or '17:00', or natural input like '5pm'.",
	ErrInvalidMoodScore: "Mood scores go from 1 (low) to 5 (great).",
	ErrInvalidURL:       "Provide a valid URL starting with https:// (or http:// for localhost).",
	ErrAPIKeyMissing:    "Set MINDFULMATE_API_KEY to your Gemini API key to enable the support chat.",
	ErrAlertsNotGranted: "Run 'mindfulmate notify enable' to turn on task alerts.",

	// System errors
	ErrAlertsUnsupported:  "This system has no notification surface. Alerts stay disabled; everything else keeps working.",
	ErrDatabaseCorrupted:  "Corrupt records are skipped on load. Re-create anything that is missing.",
	ErrNetworkUnavailable: "Check your internet connection. Cached content keeps working offline.",
	ErrChatUnavailable:    "Check your connection and try again. Your message was not lost.",
	ErrTimeout:            "The operation took too long. Try again or check your network connection.",
	ErrPermissionDenied:   "Check file permissions in your data directory (~/.local/share/mindfulmate/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check exact match first
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	// Check if it's a UserError with a suggestion
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	if IsRecoverableError(err) {
		return "This error may resolve itself. The operation will be retried automatically."
	}
	return ""
}
