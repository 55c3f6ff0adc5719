// Package scheduler provides cron-based reminder checking for the daemon.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/notify"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// Scheduler manages scheduled tasks using cron.
type Scheduler struct {
	cron        *cron.Cron
	db          *storage.DB
	debug       bool
	lastCheck   time.Time
	mu          sync.Mutex
	goalChecker *GoalAlertChecker
}

// NewScheduler creates a new scheduler.
func NewScheduler(db *storage.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		db:   db,
	}
}

// SetDebug enables debug output.
func (s *Scheduler) SetDebug(debug bool) {
	s.debug = debug
	if s.goalChecker != nil {
		s.goalChecker.SetDebug(debug)
	}
}

// SetGoalChecker sets the goal alert checker.
func (s *Scheduler) SetGoalChecker(checker *GoalAlertChecker) {
	s.goalChecker = checker
	if s.debug {
		checker.SetDebug(s.debug)
	}
}

// Start starts the scheduler with all configured jobs.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	// Ticks must land at least twice inside every wall-clock minute
	// so a scheduled HH:MM is never skipped over.
	spec := fmt.Sprintf("@every %s", config.Global.Scheduler.TickInterval)
	_, err := s.cron.AddFunc(spec, func() {
		s.runTick()
	})
	if err != nil {
		return fmt.Errorf("failed to add goal alert job: %w", err)
	}

	s.cron.Start()

	if s.debug {
		fmt.Printf("[DEBUG] Scheduler started (tick: %s)\n", config.Global.Scheduler.TickInterval)
	}

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.debug {
		fmt.Println("[DEBUG] Scheduler stopped")
	}
}

// runTick runs the per-tick checks.
func (s *Scheduler) runTick() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	// Skip if system was sleeping (gap > threshold); the next tick
	// will pick up from the current wall clock.
	if elapsed > config.Global.Scheduler.SleepThreshold {
		logging.Warn("skipping stale check after sleep", "gap", elapsed.Round(time.Second))
		return
	}

	if s.debug {
		fmt.Printf("[DEBUG] Running goal alert check (elapsed: %v)\n", elapsed.Round(time.Second))
	}

	s.checkGoalAlerts()
}

// checkGoalAlerts checks for goals whose start time matches now.
func (s *Scheduler) checkGoalAlerts() {
	if s.goalChecker == nil {
		return
	}
	notify.GlobalMetrics.RecordTick()
	s.goalChecker.Check()
}

// AddJob adds a custom job to the scheduler.
func (s *Scheduler) AddJob(spec string, job func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, job)
}

// RemoveJob removes a job from the scheduler.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns all scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns the next scheduled run time for any job.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
