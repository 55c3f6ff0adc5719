package storage

import (
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// MoodRepo provides operations for MoodEntry entities.
type MoodRepo struct {
	db *DB
}

// NewMoodRepo creates a new mood repository.
func NewMoodRepo(db *DB) *MoodRepo {
	return &MoodRepo{db: db}
}

// Save stores a mood entry. Entries are keyed by day, so saving a second
// time on the same date replaces the earlier entry.
func (r *MoodRepo) Save(entry *model.MoodEntry) error {
	if entry.Key == "" {
		entry.Key = model.GenerateMoodKey(entry.Date)
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}
	return r.db.Set(entry)
}

// Get retrieves the mood entry for a date ("2006-01-02").
func (r *MoodRepo) Get(date string) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{}
	if err := r.db.Get(model.GenerateMoodKey(date), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Today retrieves the entry for the current local day, if any.
func (r *MoodRepo) Today() (*model.MoodEntry, error) {
	return r.Get(time.Now().Format(model.DateLayout))
}

// List retrieves all mood entries in date order. Date-formatted keys sort
// lexicographically, so badger's key iteration is already chronological.
func (r *MoodRepo) List() ([]*model.MoodEntry, error) {
	return GetAllByPrefix(r.db, model.PrefixMood+":", func() *model.MoodEntry {
		return &model.MoodEntry{}
	})
}

// ListRecent retrieves up to n most recent entries, oldest first.
func (r *MoodRepo) ListRecent(n int) ([]*model.MoodEntry, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

// Delete removes the mood entry for a date.
func (r *MoodRepo) Delete(date string) error {
	return r.db.Delete(model.GenerateMoodKey(date))
}
