package output

import (
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// GoalOutput represents a goal in JSON output.
type GoalOutput struct {
	Key       string `json:"key"`
	ShortID   string `json:"short_id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Notified  bool   `json:"notified"`
	CreatedAt string `json:"created_at"`
}

// NewGoalOutput creates a GoalOutput from a Goal.
func NewGoalOutput(g *model.Goal) *GoalOutput {
	return &GoalOutput{
		Key:       g.Key,
		ShortID:   g.ShortID(),
		Text:      g.Text,
		Completed: g.Completed,
		StartTime: g.StartTime,
		EndTime:   g.EndTime,
		Notified:  g.Notified,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

// GoalsResponse represents the goal list output in JSON.
type GoalsResponse struct {
	Goals          []*GoalOutput `json:"goals"`
	TotalCount     int           `json:"total_count"`
	CompletedCount int           `json:"completed_count"`
}

// NewGoalsResponse creates a GoalsResponse from goals.
func NewGoalsResponse(goals []*model.Goal) *GoalsResponse {
	outputs := make([]*GoalOutput, len(goals))
	completed := 0
	for i, g := range goals {
		outputs[i] = NewGoalOutput(g)
		if g.Completed {
			completed++
		}
	}
	return &GoalsResponse{
		Goals:          outputs,
		TotalCount:     len(goals),
		CompletedCount: completed,
	}
}

// MoodOutput represents a mood entry in JSON output.
type MoodOutput struct {
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Label    string `json:"label"`
	Note     string `json:"note,omitempty"`
	LoggedAt string `json:"logged_at"`
}

// NewMoodOutput creates a MoodOutput from a MoodEntry.
func NewMoodOutput(m *model.MoodEntry) *MoodOutput {
	return &MoodOutput{
		Date:     m.Date,
		Score:    m.Score,
		Label:    MoodLabel(m.Score),
		Note:     m.Note,
		LoggedAt: m.LoggedAt.Format(time.RFC3339),
	}
}

// MoodsResponse represents the mood history output in JSON.
type MoodsResponse struct {
	Moods      []*MoodOutput `json:"moods"`
	TotalCount int           `json:"total_count"`
}

// NewMoodsResponse creates a MoodsResponse from entries.
func NewMoodsResponse(entries []*model.MoodEntry) *MoodsResponse {
	outputs := make([]*MoodOutput, len(entries))
	for i, m := range entries {
		outputs[i] = NewMoodOutput(m)
	}
	return &MoodsResponse{Moods: outputs, TotalCount: len(entries)}
}

// ChatResponse represents a chat turn output in JSON.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Crisis   bool   `json:"crisis"`
	Fallback bool   `json:"fallback"`
}

// MessageOutput represents a stored chat message in JSON output.
type MessageOutput struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Crisis    bool   `json:"crisis,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewMessageOutput creates a MessageOutput from a Message.
func NewMessageOutput(m *model.Message) *MessageOutput {
	return &MessageOutput{
		Role:      string(m.Role),
		Text:      m.Text,
		Crisis:    m.Crisis,
		Timestamp: m.Timestamp.Format(time.RFC3339),
	}
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintGoals outputs goals in JSON format.
func (j *JSONFormatter) PrintGoals(goals []*model.Goal) error {
	return j.JSON(NewGoalsResponse(goals))
}

// PrintMoods outputs mood history in JSON format.
func (j *JSONFormatter) PrintMoods(entries []*model.MoodEntry) error {
	return j.JSON(NewMoodsResponse(entries))
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{Status: status, Error: errMsg, Message: message})
}
