package calendar

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

func TestEventURLWithTimes(t *testing.T) {
	goal := model.NewGoal("Morning walk", "08:30", "09:00")
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	raw := eventURLAt(goal, day)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", parsed.Host)

	query := parsed.Query()
	assert.Equal(t, "TEMPLATE", query.Get("action"))
	assert.Equal(t, "Morning walk", query.Get("text"))
	assert.Equal(t, "20260829T083000/20260829T090000", query.Get("dates"))
	assert.Contains(t, query.Get("details"), "08:30 to 09:00")
}

func TestEventURLWithoutTimes(t *testing.T) {
	goal := model.NewGoal("Read a chapter", "", "")
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	raw := eventURLAt(goal, day)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Empty(t, query.Get("dates"))
	assert.Contains(t, query.Get("details"), "N/A to N/A")
}

func TestEventURLStartOnly(t *testing.T) {
	goal := model.NewGoal("Journal", "21:00", "")
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	parsed, err := url.Parse(eventURLAt(goal, day))
	require.NoError(t, err)

	// Both boundaries are required for a timed event.
	query := parsed.Query()
	assert.Empty(t, query.Get("dates"))
	assert.Contains(t, query.Get("details"), "21:00 to N/A")
}
