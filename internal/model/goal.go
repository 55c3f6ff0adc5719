package model

import (
	"fmt"
	"time"
)

// Goal represents a scheduled task in the user's daily plan.
//
// StartTime and EndTime are wall-clock times in "HH:MM" 24-hour form with no
// date component. A goal with a StartTime is compared against the current
// local time every scheduler tick, so an un-notified goal recurs daily.
type Goal struct {
	Key       string    `json:"key"`
	Text      string    `json:"text" validate:"required,max=200"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	StartTime string    `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime   string    `json:"end_time,omitempty" validate:"omitempty,clock"`
	Notified  bool      `json:"notified"`
}

// SetKey sets the database key for this goal.
func (g *Goal) SetKey(key string) {
	g.Key = key
}

// GetKey returns the database key for this goal.
func (g *Goal) GetKey() string {
	return g.Key
}

// HasStartTime returns true if the goal has a scheduled start time.
func (g *Goal) HasStartTime() bool {
	return g.StartTime != ""
}

// IsAlertCandidate returns true if the scheduler should consider this goal.
// Completed goals and goals without a start time never alert.
func (g *Goal) IsAlertCandidate() bool {
	return g.HasStartTime() && !g.Notified && !g.Completed
}

// SetStartTime updates the start time, clearing the notified flag when the
// value actually changes so the alert can fire again under the new time.
func (g *Goal) SetStartTime(start string) {
	if g.StartTime != start {
		g.Notified = false
	}
	g.StartTime = start
}

// ShortID returns the first 6 characters of the UUID for display.
func (g *Goal) ShortID() string {
	// Key format: "goal:uuid"
	if len(g.Key) > len(PrefixGoal)+7 {
		return g.Key[len(PrefixGoal)+1 : len(PrefixGoal)+7]
	}
	return g.Key
}

// GenerateGoalKey generates a database key for a goal using UUID.
func GenerateGoalKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixGoal, uuid)
}

// NewGoal creates a new goal with the given parameters.
func NewGoal(text, startTime, endTime string) *Goal {
	return &Goal{
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
		StartTime: startTime,
		EndTime:   endTime,
		Notified:  false,
	}
}
