package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/notify"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

type capturedSink struct {
	mu   sync.Mutex
	sent []*model.Notification
}

func (s *capturedSink) Name() string { return "captured" }

func (s *capturedSink) Send(ctx context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *capturedSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *capturedSink) last() *model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	return s.sent[len(s.sent)-1]
}

func newTestChecker(t *testing.T) (*GoalAlertChecker, *storage.GoalRepo, *storage.SettingsRepo, *capturedSink) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goalRepo := storage.NewGoalRepo(db)
	settingsRepo := storage.NewSettingsRepo(db)
	sink := &capturedSink{}

	checker := NewGoalAlertChecker(goalRepo, settingsRepo, notify.NewDispatcher(sink))
	return checker, goalRepo, settingsRepo, sink
}

func TestCheckFiresAtMatchingMinute(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	goal := model.NewGoal("Morning walk", "08:30", "09:00")
	require.NoError(t, goalRepo.Create(goal))

	checker.SetClock(func() string { return "08:29" })
	checker.Check()
	assert.Equal(t, 0, sink.count())

	checker.SetClock(func() string { return "08:30" })
	checker.Check()
	require.Equal(t, 1, sink.count())

	notification := sink.last()
	assert.Equal(t, model.NotifyGoalStart, notification.Type)
	assert.Contains(t, notification.Message, "Morning walk")
	assert.Equal(t, "08:30", notification.Fields["Scheduled"])
	assert.Equal(t, "09:00", notification.Fields["Until"])

	stored, err := goalRepo.Get(goal.Key)
	require.NoError(t, err)
	assert.True(t, stored.Notified)
}

func TestGoalsSharingStartTimeBothFire(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	require.NoError(t, goalRepo.Create(model.NewGoal("Stretch", "07:00", "")))
	require.NoError(t, goalRepo.Create(model.NewGoal("Hydrate", "07:00", "")))

	checker.SetClock(func() string { return "07:00" })
	checker.Check()

	assert.Equal(t, 2, sink.count())
}

func TestCheckFiresAtMostOnce(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	goal := model.NewGoal("Journal", "21:00", "")
	require.NoError(t, goalRepo.Create(goal))

	checker.SetClock(func() string { return "21:00" })
	checker.Check()
	checker.Check()
	checker.Check()

	assert.Equal(t, 1, sink.count())
}

func TestEditingStartTimeRearmsAlert(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	goal := model.NewGoal("Stretch", "10:00", "")
	require.NoError(t, goalRepo.Create(goal))

	checker.SetClock(func() string { return "10:00" })
	checker.Check()
	require.Equal(t, 1, sink.count())

	// Moving the start time re-arms the alert for the new minute.
	stored, err := goalRepo.Get(goal.Key)
	require.NoError(t, err)
	stored.SetStartTime("10:30")
	require.NoError(t, goalRepo.Update(stored))

	checker.SetClock(func() string { return "10:30" })
	checker.Check()
	assert.Equal(t, 2, sink.count())
}

func TestSavingUnchangedStartTimeDoesNotRearm(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	goal := model.NewGoal("Read", "19:15", "")
	require.NoError(t, goalRepo.Create(goal))

	checker.SetClock(func() string { return "19:15" })
	checker.Check()
	require.Equal(t, 1, sink.count())

	stored, err := goalRepo.Get(goal.Key)
	require.NoError(t, err)
	stored.SetStartTime("19:15")
	require.NoError(t, goalRepo.Update(stored))

	checker.Check()
	assert.Equal(t, 1, sink.count())
}

func TestCheckSkipsWithoutPermission(t *testing.T) {
	for _, permission := range []model.Permission{model.PermissionDefault, model.PermissionDenied} {
		t.Run(string(permission), func(t *testing.T) {
			checker, goalRepo, settingsRepo, sink := newTestChecker(t)
			require.NoError(t, settingsRepo.SetPermission(permission))

			goal := model.NewGoal("Meditate", "07:00", "")
			require.NoError(t, goalRepo.Create(goal))

			checker.SetClock(func() string { return "07:00" })
			checker.Check()

			assert.Equal(t, 0, sink.count())

			// Goal stays armed so a later grant still alerts.
			stored, err := goalRepo.Get(goal.Key)
			require.NoError(t, err)
			assert.False(t, stored.Notified)
		})
	}
}

func TestCheckSkipsCompletedAndUnscheduledGoals(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))

	completed := model.NewGoal("Done already", "12:00", "")
	completed.Completed = true
	require.NoError(t, goalRepo.Create(completed))

	unscheduled := model.NewGoal("No time set", "", "")
	require.NoError(t, goalRepo.Create(unscheduled))

	checker.SetClock(func() string { return "12:00" })
	checker.Check()

	assert.Equal(t, 0, sink.count())
}

func TestPermissionGrantTakesEffectNextTick(t *testing.T) {
	checker, goalRepo, settingsRepo, sink := newTestChecker(t)
	require.NoError(t, settingsRepo.SetPermission(model.PermissionDenied))

	goal := model.NewGoal("Evening review", "18:00", "")
	require.NoError(t, goalRepo.Create(goal))

	checker.SetClock(func() string { return "18:00" })
	checker.Check()
	assert.Equal(t, 0, sink.count())

	require.NoError(t, settingsRepo.SetPermission(model.PermissionGranted))
	checker.Check()
	assert.Equal(t, 1, sink.count())
}

func TestSchedulerStartStop(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	s := NewScheduler(db)
	require.NoError(t, s.Start())

	assert.Len(t, s.Entries(), 1)
	assert.False(t, s.NextRun().IsZero())

	s.Stop()
}

func TestSchedulerCustomJob(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	s := NewScheduler(db)

	id, err := s.AddJob("0 0 * * * *", func() {})
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 1)

	s.RemoveJob(id)
	assert.Len(t, s.Entries(), 0)
}
