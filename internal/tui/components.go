package tui

import (
	"fmt"
	"strings"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
)

// MoodComponent displays today's mood and the recent trend.
type MoodComponent struct {
	Today  *model.MoodEntry
	Recent []*model.MoodEntry
	Width  int
}

// NewMoodComponent creates a new mood component.
func NewMoodComponent(today *model.MoodEntry, recent []*model.MoodEntry, width int) *MoodComponent {
	return &MoodComponent{
		Today:  today,
		Recent: recent,
		Width:  width,
	}
}

// View renders the mood component.
func (mc *MoodComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Mood"))
	content.WriteString("\n")

	if mc.Today == nil {
		content.WriteString(StyleInactive.Render("No mood logged today"))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render("Press 'm' for how to log one"))
	} else {
		label := output.MoodLabel(mc.Today.Score)
		content.WriteString(StyleMood.Render(fmt.Sprintf("%s (%d/5)", label, mc.Today.Score)))
		if mc.Today.Note != "" {
			content.WriteString("\n")
			content.WriteString(StyleNote.Render(fmt.Sprintf("\"%s\"", mc.Today.Note)))
		}
	}

	if len(mc.Recent) > 0 {
		content.WriteString("\n\n")
		content.WriteString(mc.renderTrend())
	}

	box := StyleMoodBox.Width(mc.Width - 4)
	return box.Render(content.String())
}

// renderTrend renders the spark row for recent entries, oldest first.
func (mc *MoodComponent) renderTrend() string {
	var sparks, days []string
	for _, e := range mc.Recent {
		sparks = append(sparks, moodSpark(e.Score))
		days = append(days, e.Weekday())
	}

	var sb strings.Builder
	sb.WriteString(StyleMood.Render(strings.Join(sparks, "  ")))
	sb.WriteString("\n")
	sb.WriteString(StyleSubtitle.Render(strings.Join(days, " ")))
	return sb.String()
}

// GoalsComponent displays the goal list with a selection cursor.
type GoalsComponent struct {
	Goals  []*model.Goal
	Cursor int
	Width  int
	Limit  int
}

// NewGoalsComponent creates a new goals component.
func NewGoalsComponent(goals []*model.Goal, cursor, width, limit int) *GoalsComponent {
	if limit > 0 && len(goals) > limit {
		goals = goals[:limit]
	}
	return &GoalsComponent{
		Goals:  goals,
		Cursor: cursor,
		Width:  width,
		Limit:  limit,
	}
}

// View renders the goals component.
func (gc *GoalsComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Today's Goals"))
	content.WriteString("\n")

	if len(gc.Goals) == 0 {
		content.WriteString(StyleInactive.Render("No goals yet"))
	} else {
		for i, goal := range gc.Goals {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(gc.renderGoal(goal, i == gc.Cursor))
		}
	}

	box := StyleGoalsBox.Width(gc.Width - 4)
	return box.Render(content.String())
}

func (gc *GoalsComponent) renderGoal(goal *model.Goal, selected bool) string {
	var sb strings.Builder

	if selected {
		sb.WriteString(StyleCursor.Render("▸ "))
	} else {
		sb.WriteString("  ")
	}

	if goal.Completed {
		sb.WriteString(StyleSuccess.Render("[x] "))
		sb.WriteString(StyleGoalDone.Render(goal.Text))
	} else {
		sb.WriteString("[ ] ")
		sb.WriteString(StyleGoal.Render(goal.Text))
	}

	if goal.HasStartTime() || goal.EndTime != "" {
		sb.WriteString("  ")
		sb.WriteString(StyleSchedule.Render(output.FormatClockRange(goal.StartTime, goal.EndTime)))
		if goal.Notified {
			sb.WriteString(StyleSubtitle.Render(" (alerted)"))
		}
	}

	return sb.String()
}

// ProgressComponent displays daily goal completion.
type ProgressComponent struct {
	Completed int
	Total     int
	Width     int
}

// NewProgressComponent creates a new progress component.
func NewProgressComponent(completed, total, width int) *ProgressComponent {
	return &ProgressComponent{
		Completed: completed,
		Total:     total,
		Width:     width,
	}
}

// Percentage returns completion as a percentage.
func (pc *ProgressComponent) Percentage() float64 {
	if pc.Total == 0 {
		return 0
	}
	return float64(pc.Completed) / float64(pc.Total) * 100
}

// IsComplete returns true when every goal is done.
func (pc *ProgressComponent) IsComplete() bool {
	return pc.Total > 0 && pc.Completed == pc.Total
}

// View renders the progress component.
func (pc *ProgressComponent) View() string {
	if pc.Total == 0 {
		return ""
	}

	var content strings.Builder

	content.WriteString(StyleTitle.Render("Daily Progress"))
	content.WriteString("\n\n")

	barWidth := pc.Width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	content.WriteString(ProgressBar(pc.Percentage(), barWidth))
	content.WriteString("\n")

	progressText := fmt.Sprintf("%d / %d goals (%.0f%%)", pc.Completed, pc.Total, pc.Percentage())
	if pc.IsComplete() {
		content.WriteString(StyleSuccess.Render(progressText))
		content.WriteString("\n")
		content.WriteString(StyleSuccess.Render("✓ All goals done!"))
	} else {
		content.WriteString(StyleSubtitle.Render(progressText))
	}

	var box = StyleProgressBox
	if pc.IsComplete() {
		box = StyleProgressCompleteBox
	}

	return box.Width(pc.Width - 4).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "move"},
		{"space", "toggle"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
