package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// GoalRepo provides operations for Goal entities.
type GoalRepo struct {
	db *DB
}

// NewGoalRepo creates a new goal repository.
func NewGoalRepo(db *DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// Create creates a new goal with a generated key.
func (r *GoalRepo) Create(goal *model.Goal) error {
	if goal.Key == "" {
		goal.Key = model.GenerateGoalKey(uuid.New().String())
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	return r.db.Set(goal)
}

// Get retrieves a goal by key.
func (r *GoalRepo) Get(key string) (*model.Goal, error) {
	goal := &model.Goal{}
	if err := r.db.Get(key, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// GetByShortID retrieves a goal whose key starts with the given short ID.
func (r *GoalRepo) GetByShortID(shortID string) (*model.Goal, error) {
	goals, err := r.List()
	if err != nil {
		return nil, err
	}

	var matches []*model.Goal
	prefixLen := len(model.PrefixGoal) + 1
	for _, g := range goals {
		if len(g.Key) >= prefixLen+len(shortID) &&
			g.Key[prefixLen:prefixLen+len(shortID)] == shortID {
			matches = append(matches, g)
		}
	}

	if len(matches) == 0 {
		return nil, ErrKeyNotFound
	}
	if len(matches) > 1 {
		return nil, &AmbiguousMatchError{Matches: len(matches)}
	}
	return matches[0], nil
}

// AmbiguousMatchError is returned when multiple goals match a short ID.
type AmbiguousMatchError struct {
	Matches int
}

func (e *AmbiguousMatchError) Error() string {
	return "multiple goals match the given ID"
}

// List retrieves all goals ordered newest-first by creation time.
func (r *GoalRepo) List() ([]*model.Goal, error) {
	goals, err := GetAllByPrefix(r.db, model.PrefixGoal+":", func() *model.Goal {
		return &model.Goal{}
	})
	if err != nil {
		return nil, err
	}

	// Insertion-sort by CreatedAt descending; lists stay small.
	for i := 1; i < len(goals); i++ {
		for j := i; j > 0 && goals[j].CreatedAt.After(goals[j-1].CreatedAt); j-- {
			goals[j], goals[j-1] = goals[j-1], goals[j]
		}
	}
	return goals, nil
}

// ListAlertCandidates retrieves goals the scheduler should consider:
// not completed, not yet notified, and carrying a start time.
func (r *GoalRepo) ListAlertCandidates() ([]*model.Goal, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var candidates []*model.Goal
	for _, g := range all {
		if g.IsAlertCandidate() {
			candidates = append(candidates, g)
		}
	}
	return candidates, nil
}

// Update updates an existing goal.
func (r *GoalRepo) Update(goal *model.Goal) error {
	return r.db.Set(goal)
}

// MarkNotified sets the notified flag and persists immediately.
// The scheduler calls this once per firing; no other field is touched.
func (r *GoalRepo) MarkNotified(key string) error {
	goal, err := r.Get(key)
	if err != nil {
		return err
	}

	goal.Notified = true
	return r.db.Set(goal)
}

// ToggleCompleted flips a goal's completed flag.
func (r *GoalRepo) ToggleCompleted(key string) (*model.Goal, error) {
	goal, err := r.Get(key)
	if err != nil {
		return nil, err
	}

	goal.Completed = !goal.Completed
	if err := r.db.Set(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal by key.
func (r *GoalRepo) Delete(key string) error {
	return r.db.Delete(key)
}

// Exists checks if a goal exists.
func (r *GoalRepo) Exists(key string) (bool, error) {
	return r.db.Exists(key)
}

// Progress returns completed and total counts for the current list.
func (r *GoalRepo) Progress() (completed, total int, err error) {
	goals, err := r.List()
	if err != nil {
		return 0, 0, err
	}

	for _, g := range goals {
		if g.Completed {
			completed++
		}
	}
	return completed, len(goals), nil
}
