package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorCrisis  = lipgloss.Color("#DC2626") // Deep red

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleGoal = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)

	styleCrisis = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCrisis)
)

// moodLabels maps a mood score to its display word.
var moodLabels = map[int]string{
	1: "Rough",
	2: "Low",
	3: "Okay",
	4: "Good",
	5: "Great",
}

// MoodLabel returns the display word for a mood score.
func MoodLabel(score int) string {
	if label, ok := moodLabels[score]; ok {
		return label
	}
	return fmt.Sprintf("%d", score)
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// GoalText formats a goal's text.
func (c *CLIFormatter) GoalText(text string) string {
	if c.IsColorEnabled() {
		return styleGoal.Render(text)
	}
	return text
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	if c.IsColorEnabled() {
		return styleNote.Render(text)
	}
	return text
}

// PrintGoal prints one goal with its schedule and state.
func (c *CLIFormatter) PrintGoal(goal *model.Goal) {
	check := "[ ]"
	if goal.Completed {
		check = "[x]"
	}

	line := fmt.Sprintf("%s %s  %s", check, goal.ShortID(), c.GoalText(goal.Text))
	c.Println(line)

	schedule := FormatClockRange(goal.StartTime, goal.EndTime)
	if goal.HasStartTime() && goal.Notified {
		schedule += " (alerted)"
	}
	c.Printf("      %s\n", c.Note(schedule))
}

// PrintGoalList prints all goals with a progress summary.
func (c *CLIFormatter) PrintGoalList(goals []*model.Goal) {
	if len(goals) == 0 {
		c.Muted("No goals yet.")
		c.Muted("Use 'mindfulmate goal add' to create one.")
		return
	}

	completed := 0
	for _, goal := range goals {
		if goal.Completed {
			completed++
		}
	}

	c.Title(fmt.Sprintf("Goals (%d/%d done)", completed, len(goals)))
	c.Println(ProgressBar(float64(completed)/float64(len(goals))*100, 24))
	c.Println()

	for _, goal := range goals {
		c.PrintGoal(goal)
	}
}

// PrintMoodEntry prints one mood log entry.
func (c *CLIFormatter) PrintMoodEntry(entry *model.MoodEntry) {
	day := entry.Date
	if entry.IsToday() {
		day = "Today"
	}

	c.Printf("%s  %s (%d/5)\n", day, styleBold.Render(MoodLabel(entry.Score)), entry.Score)
	if entry.Note != "" {
		c.Printf("      %s\n", c.Note(entry.Note))
	}
}

// PrintMoodHistory prints recent mood entries with a simple trend row.
func (c *CLIFormatter) PrintMoodHistory(entries []*model.MoodEntry) {
	if len(entries) == 0 {
		c.Muted("No moods logged yet.")
		c.Muted("Use 'mindfulmate mood log' to record how today went.")
		return
	}

	c.Title("Mood Tracker")

	var trend strings.Builder
	for _, entry := range entries {
		trend.WriteString(moodGlyph(entry.Score))
		trend.WriteString(" ")
	}
	c.Println(trend.String())
	c.Println()

	for _, entry := range entries {
		c.PrintMoodEntry(entry)
	}
}

// moodGlyph maps a score to a bar glyph for the trend row.
func moodGlyph(score int) string {
	glyphs := []string{"▁", "▂", "▄", "▆", "█"}
	if score < model.MoodScoreMin || score > model.MoodScoreMax {
		return "?"
	}
	return glyphs[score-1]
}

// PrintChatReply prints a model reply, with the intervention banner
// when the reply flagged a crisis.
func (c *CLIFormatter) PrintChatReply(text string, crisis bool) {
	if crisis {
		banner := "Please talk to someone now. Contact your college counselor or a trusted person immediately."
		if c.IsColorEnabled() {
			c.Println(styleCrisis.Render("── CRISIS SUPPORT ──"))
			c.Println(styleCrisis.Render(banner))
		} else {
			c.Println("── CRISIS SUPPORT ──")
			c.Println(banner)
		}
		c.Println()
	}
	c.Println(text)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of a simple table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	c.Println(styleBold.Render(headerLine.String()))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}
