package scheduler

import (
	"context"
	"fmt"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/notify"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/parser"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// GoalAlertChecker fires a notification when a goal's scheduled start
// time matches the current wall clock. Each goal alerts at most once
// per scheduled time; the flag resets only when the time is edited.
type GoalAlertChecker struct {
	goalRepo     *storage.GoalRepo
	settingsRepo *storage.SettingsRepo
	dispatcher   *notify.Dispatcher
	clock        func() string
	debug        bool
}

// NewGoalAlertChecker creates a new goal alert checker.
func NewGoalAlertChecker(goalRepo *storage.GoalRepo, settingsRepo *storage.SettingsRepo, dispatcher *notify.Dispatcher) *GoalAlertChecker {
	return &GoalAlertChecker{
		goalRepo:     goalRepo,
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
		clock:        parser.Now,
	}
}

// SetDebug enables debug output.
func (c *GoalAlertChecker) SetDebug(debug bool) {
	c.debug = debug
}

// SetClock overrides the wall-clock source. Used in tests.
func (c *GoalAlertChecker) SetClock(clock func() string) {
	c.clock = clock
}

// Check looks for goals due at the current minute and alerts on them.
func (c *GoalAlertChecker) Check() {
	// Permission is re-read each tick so a revoke takes effect on the
	// next check without a restart.
	settings, err := c.settingsRepo.Get()
	if err != nil {
		logging.Error("failed to load settings", logging.KeyError, err)
		return
	}
	if !settings.AlertsEnabled() {
		if c.debug {
			fmt.Println("[DEBUG] Alerts not granted, skipping goal check")
		}
		return
	}

	candidates, err := c.goalRepo.ListAlertCandidates()
	if err != nil {
		logging.Error("failed to list alert candidates", logging.KeyError, err)
		return
	}
	if len(candidates) == 0 {
		return
	}

	now := c.clock()
	for _, goal := range candidates {
		if goal.StartTime != now {
			continue
		}
		c.alert(goal)
	}
}

// alert sends the notification and marks the goal so it will not fire
// again for the same scheduled time.
func (c *GoalAlertChecker) alert(goal *model.Goal) {
	notification := model.NewNotification(model.NotifyGoalStart,
		"MindfulMate Reminder",
		fmt.Sprintf("Time to start: %s", goal.Text)).
		WithField("Scheduled", goal.StartTime)

	if goal.EndTime != "" {
		notification.WithField("Until", goal.EndTime)
	}

	results := c.dispatcher.Dispatch(context.Background(), notification)

	delivered := false
	for _, result := range results {
		if result.Success {
			delivered = true
		}
		if c.debug {
			if result.Success {
				fmt.Printf("[DEBUG] Alerted %s via %s\n", goal.ShortID(), result.SinkName)
			} else {
				fmt.Printf("[DEBUG] Failed to alert via %s: %v\n", result.SinkName, result.Error)
			}
		}
	}

	// Marked even when delivery failed: the scheduled minute has
	// passed, so a later tick must not re-fire.
	if err := c.goalRepo.MarkNotified(goal.Key); err != nil {
		logging.Error("failed to mark goal notified",
			logging.KeyGoalID, goal.ShortID(),
			logging.KeyError, err)
		return
	}

	logging.Info("goal alert fired",
		logging.KeyGoalID, goal.ShortID(),
		"scheduled", goal.StartTime,
		"delivered", delivered)
}
