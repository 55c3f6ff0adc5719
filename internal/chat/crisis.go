package chat

import "strings"

// CrisisMarker is the exact string the model is instructed to prefix
// onto replies that need the crisis intervention flow.
const CrisisMarker = "[CRISIS_DETECTED]"

// CounselorContact is shown alongside crisis replies.
const CounselorContact = "Please reach out to your college counselor or a trusted person right away. You don't have to go through this alone."

// StripCrisisMarker reports whether the reply carries the crisis
// marker and returns the reply with the marker removed. Only a leading
// marker counts; the marker appearing later in the text is left alone.
func StripCrisisMarker(reply string) (string, bool) {
	trimmed := strings.TrimLeftFunc(reply, isSpace)
	if !strings.HasPrefix(trimmed, CrisisMarker) {
		return reply, false
	}

	rest := strings.TrimPrefix(trimmed, CrisisMarker)
	return strings.TrimLeftFunc(rest, isSpace), true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
