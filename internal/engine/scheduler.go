package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/worthyten/internal/metrics"
)

// Scheduler runs engine jobs on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	stateEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that refreshes state gauges every
// stateInterval.
func NewScheduler(eng *Engine, stateInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if stateInterval <= 0 {
		return nil, fmt.Errorf("state refresh interval must be positive (got %s)", stateInterval)
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+stateInterval.String(), s.runStateRefresh)
	if err != nil {
		return nil, err
	}
	s.stateEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next scheduled run as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	next := s.cron.Entry(s.stateEntryID).Next
	if next.IsZero() {
		return
	}
	metrics.SchedulerNextStateRefreshTimestamp.Set(float64(next.Unix()))
}

func (s *Scheduler) runStateRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.engine.jobTimeout)
	defer cancel()
	defer s.SyncNextRunTimestamps()

	start := time.Now()
	if err := s.engine.RunStateRefresh(ctx); err != nil {
		s.log.Error("scheduled state refresh failed", "error", err)
		return
	}
	s.log.Debug("scheduled state refresh completed", "duration", time.Since(start))
}
