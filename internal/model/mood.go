package model

import (
	"fmt"
	"time"
)

// Mood score bounds.
const (
	MoodScoreMin = 1
	MoodScoreMax = 5
)

// MoodEntry represents a single day's mood rating.
//
// Entries are keyed by calendar day, so logging a second mood on the same day
// replaces the earlier entry rather than appending a new one.
type MoodEntry struct {
	Key      string    `json:"key"`
	Date     string    `json:"date"` // "2006-01-02"
	Score    int       `json:"score" validate:"required,min=1,max=5"`
	Note     string    `json:"note,omitempty" validate:"max=1024"`
	LoggedAt time.Time `json:"logged_at"`
}

// SetKey sets the database key for this mood entry.
func (m *MoodEntry) SetKey(key string) {
	m.Key = key
}

// GetKey returns the database key for this mood entry.
func (m *MoodEntry) GetKey() string {
	return m.Key
}

// IsToday returns true if the entry is for the current local day.
func (m *MoodEntry) IsToday() bool {
	return m.Date == time.Now().Format(DateLayout)
}

// Weekday returns the short weekday label for chart axes ("Mon", "Tue").
func (m *MoodEntry) Weekday() string {
	d, err := time.ParseInLocation(DateLayout, m.Date, time.Local)
	if err != nil {
		return m.Date
	}
	return d.Format("Mon")
}

// DateLayout is the storage layout for mood entry dates.
const DateLayout = "2006-01-02"

// GenerateMoodKey generates a database key for a mood entry by day.
func GenerateMoodKey(date string) string {
	return fmt.Sprintf("%s:%s", PrefixMood, date)
}

// NewMoodEntry creates a mood entry for today.
func NewMoodEntry(score int, note string) *MoodEntry {
	now := time.Now()
	date := now.Format(DateLayout)
	return &MoodEntry{
		Key:      GenerateMoodKey(date),
		Date:     date,
		Score:    score,
		Note:     note,
		LoggedAt: now,
	}
}
