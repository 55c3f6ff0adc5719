package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClockCanonical(t *testing.T) {
	result := ParseClock("17:30")
	assert.True(t, result.Valid)
	assert.NoError(t, result.Error)
	assert.Equal(t, "17:30", result.Clock)
}

func TestParseClockEmpty(t *testing.T) {
	result := ParseClock("")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Clock)

	result = ParseClock("   ")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Clock)
}

func TestParseClockNaturalLanguage(t *testing.T) {
	result := ParseClock("5pm")
	assert.True(t, result.Valid)
	assert.Equal(t, "17:00", result.Clock)

	result = ParseClock("9:30 am")
	assert.True(t, result.Valid)
	assert.Equal(t, "09:30", result.Clock)
}

func TestParseClockGarbage(t *testing.T) {
	result := ParseClock("not a time at all zzz")
	assert.False(t, result.Valid)
	assert.Error(t, result.Error)
}

func TestFormatClock(t *testing.T) {
	at := time.Date(2026, 8, 29, 7, 5, 0, 0, time.Local)
	assert.Equal(t, "07:05", FormatClock(at))
}

func TestNowMatchesFormat(t *testing.T) {
	assert.Regexp(t, `^([01][0-9]|2[0-3]):[0-5][0-9]$`, Now())
}
