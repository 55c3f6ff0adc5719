package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		err = db.Close()
		assert.NoError(t, err)
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.Equal(t, "", db.Path())
		db.Close()
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "mindfulmate")
	assert.Contains(t, path, "db")
}

func TestSetGetBytes(t *testing.T) {
	db := setupTestDB(t)

	err := db.SetBytes("raw:key", []byte("payload"))
	require.NoError(t, err)

	data, err := db.GetBytes("raw:key")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	_, err = db.GetBytes("raw:missing")
	assert.True(t, IsErrKeyNotFound(err))
}

func TestDeleteByPrefix(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.SetBytes(fmt.Sprintf("a:%d", i), []byte("x")))
	}
	require.NoError(t, db.SetBytes("b:0", []byte("y")))

	deleted, err := db.DeleteByPrefix("a:")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	keys, err := db.ListByPrefix("a:")
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = db.ListByPrefix("b:")
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestGetAllByPrefixSkipsCorruptRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	require.NoError(t, repo.Create(model.NewGoal("good", "", "")))
	require.NoError(t, db.SetBytes("goal:corrupt", []byte("{not json")))

	goals, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, goals, 1)
	assert.Equal(t, "good", goals[0].Text)
}

// =============================================================================
// GoalRepo Tests
// =============================================================================

func TestGoalRepoCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Study for Math Exam", "17:30", "18:30")
	err := repo.Create(goal)
	require.NoError(t, err)
	assert.NotEmpty(t, goal.Key)
}

func TestGoalRepoRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Library session", "14:00", "16:00")
	require.NoError(t, repo.Create(goal))

	// Reload from storage: identity, text, flags and times must match and
	// createdAt must parse back to an equivalent instant.
	loaded, err := repo.Get(goal.Key)
	require.NoError(t, err)
	assert.Equal(t, goal.Key, loaded.Key)
	assert.Equal(t, goal.Text, loaded.Text)
	assert.Equal(t, goal.Completed, loaded.Completed)
	assert.Equal(t, goal.StartTime, loaded.StartTime)
	assert.Equal(t, goal.EndTime, loaded.EndTime)
	assert.True(t, goal.CreatedAt.Equal(loaded.CreatedAt))
}

func TestGoalRepoGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	_, err := repo.Get("goal:nonexistent")
	assert.Error(t, err)
	assert.True(t, IsErrKeyNotFound(err))
}

func TestGoalRepoGetByShortID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Morning run", "", "")
	require.NoError(t, repo.Create(goal))

	found, err := repo.GetByShortID(goal.ShortID())
	require.NoError(t, err)
	assert.Equal(t, goal.Key, found.Key)

	_, err = repo.GetByShortID("zzzzzz")
	assert.True(t, IsErrKeyNotFound(err))
}

func TestGoalRepoListOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	older := model.NewGoal("older", "", "")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(older))

	newer := model.NewGoal("newer", "", "")
	require.NoError(t, repo.Create(newer))

	goals, err := repo.List()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "newer", goals[0].Text)
	assert.Equal(t, "older", goals[1].Text)
}

func TestGoalRepoListAlertCandidates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	timed := model.NewGoal("timed", "09:00", "")
	require.NoError(t, repo.Create(timed))

	untimed := model.NewGoal("untimed", "", "")
	require.NoError(t, repo.Create(untimed))

	done := model.NewGoal("done", "10:00", "")
	done.Completed = true
	require.NoError(t, repo.Create(done))

	fired := model.NewGoal("fired", "11:00", "")
	fired.Notified = true
	require.NoError(t, repo.Create(fired))

	candidates, err := repo.ListAlertCandidates()
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "timed", candidates[0].Text)
}

func TestGoalRepoMarkNotified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Lecture", "10:00", "")
	require.NoError(t, repo.Create(goal))

	require.NoError(t, repo.MarkNotified(goal.Key))

	loaded, err := repo.Get(goal.Key)
	require.NoError(t, err)
	assert.True(t, loaded.Notified)
	// Only the flag changes.
	assert.Equal(t, goal.Text, loaded.Text)
	assert.False(t, loaded.Completed)
}

func TestGoalRepoToggleCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Lecture", "", "")
	require.NoError(t, repo.Create(goal))

	toggled, err := repo.ToggleCompleted(goal.Key)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = repo.ToggleCompleted(goal.Key)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestGoalRepoDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	goal := model.NewGoal("Lecture", "", "")
	require.NoError(t, repo.Create(goal))
	require.NoError(t, repo.Delete(goal.Key))

	exists, err := repo.Exists(goal.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGoalRepoProgress(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGoalRepo(db)

	done := model.NewGoal("done", "", "")
	done.Completed = true
	require.NoError(t, repo.Create(done))
	require.NoError(t, repo.Create(model.NewGoal("open", "", "")))

	completed, total, err := repo.Progress()
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, total)
}

// =============================================================================
// MoodRepo Tests
// =============================================================================

func TestMoodRepoSaveReplacesSameDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMoodRepo(db)

	first := model.NewMoodEntry(4, "")
	require.NoError(t, repo.Save(first))

	second := model.NewMoodEntry(2, "rough afternoon")
	require.NoError(t, repo.Save(second))

	entries, err := repo.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Score)
	assert.Equal(t, "rough afternoon", entries[0].Note)
}

func TestMoodRepoToday(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMoodRepo(db)

	_, err := repo.Today()
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, repo.Save(model.NewMoodEntry(5, "")))

	entry, err := repo.Today()
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Score)
	assert.True(t, entry.IsToday())
}

func TestMoodRepoListRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMoodRepo(db)

	for i := 0; i < 10; i++ {
		date := time.Now().AddDate(0, 0, -i).Format(model.DateLayout)
		entry := &model.MoodEntry{Key: model.GenerateMoodKey(date), Date: date, Score: 3}
		require.NoError(t, repo.Save(entry))
	}

	recent, err := repo.ListRecent(7)
	require.NoError(t, err)
	require.Len(t, recent, 7)
	// Oldest first, newest last.
	assert.Less(t, recent[0].Date, recent[6].Date)
}

// =============================================================================
// SettingsRepo Tests
// =============================================================================

func TestSettingsRepoDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	settings, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDefault, settings.Permission)
	assert.False(t, settings.AutoSync)
}

func TestSettingsRepoSetPermission(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	require.NoError(t, repo.SetPermission(model.PermissionGranted))

	settings, err := repo.Get()
	require.NoError(t, err)
	assert.True(t, settings.AlertsEnabled())

	require.NoError(t, repo.SetPermission(model.PermissionDenied))
	settings, err = repo.Get()
	require.NoError(t, err)
	assert.False(t, settings.AlertsEnabled())
}

func TestSettingsRepoSetAutoSync(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	require.NoError(t, repo.SetAutoSync(true))
	settings, err := repo.Get()
	require.NoError(t, err)
	assert.True(t, settings.AutoSync)
}

// =============================================================================
// HistoryRepo Tests
// =============================================================================

func TestHistoryRepoAppendAndTail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)

	base := time.Now()
	for i := 0; i < 5; i++ {
		msg := &model.Message{
			Role:      model.RoleUser,
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		}
		require.NoError(t, repo.Append(msg))
	}

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "message 0", all[0].Text)
	assert.Equal(t, "message 4", all[4].Text)

	tail, err := repo.Tail(2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "message 3", tail[0].Text)
}

func TestHistoryRepoClear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHistoryRepo(db)

	require.NoError(t, repo.Append(model.NewMessage(model.RoleUser, "hi")))
	require.NoError(t, repo.Append(model.NewMessage(model.RoleModel, "hello")))

	removed, err := repo.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}
