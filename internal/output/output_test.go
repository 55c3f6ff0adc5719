package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

func newBufferFormatter() (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := NewFormatter()
	f.Writer = &buf
	f.ColorMode = ColorNever
	return f, &buf
}

func TestIsColorEnabled(t *testing.T) {
	f, _ := newBufferFormatter()

	f.ColorMode = ColorNever
	assert.False(t, f.IsColorEnabled())

	f.ColorMode = ColorAlways
	assert.True(t, f.IsColorEnabled())

	// Auto on a plain buffer is not a terminal.
	f.ColorMode = ColorAuto
	assert.False(t, f.IsColorEnabled())
}

func TestFormatClockRange(t *testing.T) {
	tests := []struct {
		start, end, expected string
	}{
		{"08:30", "09:00", "08:30 - 09:00"},
		{"08:30", "", "08:30"},
		{"", "09:00", "until 09:00"},
		{"", "", "unscheduled"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatClockRange(tt.start, tt.end))
	}
}

func TestMoodLabel(t *testing.T) {
	assert.Equal(t, "Rough", MoodLabel(1))
	assert.Equal(t, "Okay", MoodLabel(3))
	assert.Equal(t, "Great", MoodLabel(5))
	assert.Equal(t, "9", MoodLabel(9))
}

func TestPrintGoalList(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	done := model.NewGoal("Morning walk", "08:30", "09:00")
	done.Completed = true
	pending := model.NewGoal("Journal", "21:00", "")

	cli.PrintGoalList([]*model.Goal{done, pending})

	out := buf.String()
	assert.Contains(t, out, "Goals (1/2 done)")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Morning walk")
	assert.Contains(t, out, "08:30 - 09:00")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "Journal")
}

func TestPrintGoalListEmpty(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintGoalList(nil)
	assert.Contains(t, buf.String(), "No goals yet")
}

func moodFor(date string, score int, note string) *model.MoodEntry {
	m := model.NewMoodEntry(score, note)
	m.Date = date
	m.SetKey(model.GenerateMoodKey(date))
	return m
}

func TestPrintMoodHistory(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	entries := []*model.MoodEntry{
		moodFor("2026-08-27", 2, "rough day"),
		moodFor("2026-08-28", 4, ""),
	}
	cli.PrintMoodHistory(entries)

	out := buf.String()
	assert.Contains(t, out, "Mood Tracker")
	assert.Contains(t, out, "Low")
	assert.Contains(t, out, "rough day")
	assert.Contains(t, out, "Good")
}

func TestPrintChatReplyCrisisBanner(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintChatReply("Please reach out to the counselor.", true)

	out := buf.String()
	assert.Contains(t, out, "CRISIS SUPPORT")
	assert.Contains(t, out, "Please reach out to the counselor.")
}

func TestPrintChatReplyPlain(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintChatReply("Try a short walk.", false)

	out := buf.String()
	assert.NotContains(t, out, "CRISIS SUPPORT")
	assert.Contains(t, out, "Try a short walk.")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "██░░", ProgressBar(50, 4))
	assert.Equal(t, "████", ProgressBar(150, 4))
	assert.Equal(t, "░░░░", ProgressBar(-10, 4))
}

func TestJSONGoals(t *testing.T) {
	f, buf := newBufferFormatter()
	j := NewJSONFormatter(f)

	goal := model.NewGoal("Morning walk", "08:30", "09:00")
	goal.Completed = true
	require.NoError(t, j.PrintGoals([]*model.Goal{goal}))

	var resp GoalsResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, 1, resp.CompletedCount)
	require.Len(t, resp.Goals, 1)
	assert.Equal(t, "Morning walk", resp.Goals[0].Text)
	assert.Equal(t, "08:30", resp.Goals[0].StartTime)
}

func TestJSONMoods(t *testing.T) {
	f, buf := newBufferFormatter()
	j := NewJSONFormatter(f)

	require.NoError(t, j.PrintMoods([]*model.MoodEntry{
		moodFor("2026-08-28", 4, "steady"),
	}))

	var resp MoodsResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Moods, 1)
	assert.Equal(t, 4, resp.Moods[0].Score)
	assert.Equal(t, "Good", resp.Moods[0].Label)
}

func TestPrintTable(t *testing.T) {
	f, buf := newBufferFormatter()
	cli := NewCLIFormatter(f)

	cli.PrintTable([]string{"ID", "Goal"}, []TableRow{
		{Columns: []string{"abc12345", "Morning walk"}},
	})

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Morning walk")
}
