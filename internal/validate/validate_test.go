package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockTime(t *testing.T) {
	valid := []string{"", "00:00", "09:30", "17:00", "23:59"}
	for _, v := range valid {
		assert.NoError(t, ClockTime(v), v)
	}

	invalid := []string{"24:00", "9:30", "09:60", "0930", "9am", "17:00:00"}
	for _, v := range invalid {
		assert.Error(t, ClockTime(v), v)
	}
}

func TestGoalText(t *testing.T) {
	assert.NoError(t, GoalText("Study for Math Exam"))
	assert.Error(t, GoalText(""))
	assert.Error(t, GoalText(strings.Repeat("x", MaxGoalTextLength+1)))
}

func TestMoodScore(t *testing.T) {
	for score := 1; score <= 5; score++ {
		assert.NoError(t, MoodScore(score))
	}
	assert.Error(t, MoodScore(0))
	assert.Error(t, MoodScore(6))
	assert.Error(t, MoodScore(-1))
}

func TestNote(t *testing.T) {
	assert.NoError(t, Note(""))
	assert.NoError(t, Note("felt good after the walk"))
	assert.Error(t, Note(strings.Repeat("x", MaxNoteLength+1)))
}

func TestURL(t *testing.T) {
	assert.NoError(t, URL("https://example.com/hook"))
	assert.NoError(t, URL("http://localhost:8080/hook"))
	assert.NoError(t, URL("http://127.0.0.1/hook"))

	assert.Error(t, URL(""))
	assert.Error(t, URL("ftp://example.com"))
	assert.Error(t, URL("http://example.com/hook"))
	assert.Error(t, URL("https://"))
}
