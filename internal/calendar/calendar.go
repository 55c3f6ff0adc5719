// Package calendar builds Google Calendar event links for scheduled
// goals.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

const renderBase = "https://calendar.google.com/calendar/render"

// EventURL builds a prefilled event-creation link for the goal. The
// event lands on today's date; the dates parameter is included only
// when both a start and an end time are set.
func EventURL(goal *model.Goal) string {
	return eventURLAt(goal, time.Now())
}

func eventURLAt(goal *model.Goal, day time.Time) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", goal.Text)

	start := goal.StartTime
	if start == "" {
		start = "N/A"
	}
	end := goal.EndTime
	if end == "" {
		end = "N/A"
	}
	params.Set("details", fmt.Sprintf("Goal created via MindfulMate App. Time: %s to %s", start, end))

	query := params.Encode()

	if goal.StartTime != "" && goal.EndTime != "" {
		date := day.Format("20060102")
		startStr := date + "T" + strings.ReplaceAll(goal.StartTime, ":", "") + "00"
		endStr := date + "T" + strings.ReplaceAll(goal.EndTime, ":", "") + "00"
		query += "&dates=" + startStr + "/" + endStr
	}

	return renderBase + "?" + query
}
