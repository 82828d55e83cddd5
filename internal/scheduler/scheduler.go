// Package scheduler triggers a job on a fixed period aligned to the wall clock of a zone.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
)

// Job is the work executed on every trigger, now is the trigger instant in the scheduler zone.
type Job func(ctx context.Context, now time.Time) error

// SchedulerConfig is the configuration of the scheduler.
type SchedulerConfig struct {
	Job Job
	// Period is the time between triggers, triggers are aligned to multiples of the
	// period since the midnight of the location (e.g 15m triggers at :00, :15, :30 and :45).
	Period   time.Duration
	Location *time.Location
	// RunOnStart triggers the job once as soon as the scheduler starts.
	RunOnStart bool
	Now        func() time.Time
	Logger     log.Logger
}

func (c *SchedulerConfig) defaults() error {
	if c.Job == nil {
		return fmt.Errorf("job is required")
	}

	if c.Period < 0 {
		return fmt.Errorf("period can't be negative")
	}
	if c.Period == 0 {
		c.Period = conventions.DefaultSweepInterval
	}

	if c.Location == nil {
		loc, err := conventions.DefaultLocation()
		if err != nil {
			return err
		}
		c.Location = loc
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "scheduler.Scheduler"})

	return nil
}

// Scheduler runs a job periodically. Triggers are sequential, a slow job delays the next
// trigger instead of overlapping with it.
type Scheduler struct {
	job        Job
	period     time.Duration
	location   *time.Location
	runOnStart bool
	now        func() time.Time
	logger     log.Logger
}

// NewScheduler returns a new scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Scheduler{
		job:        cfg.Job,
		period:     cfg.Period,
		location:   cfg.Location,
		runOnStart: cfg.RunOnStart,
		now:        cfg.Now,
		logger:     cfg.Logger,
	}, nil
}

// Next returns the first trigger strictly after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	t = t.In(s.location)
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
	nextDay := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, s.location)

	n := t.Sub(dayStart)/s.period + 1
	next := dayStart.Add(n * s.period)

	// Periods that don't divide the day restart the alignment at midnight.
	if next.After(nextDay) {
		return nextDay
	}

	return next
}

// Run triggers the job until the context is cancelled. Job errors are logged and don't stop
// the scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Infof("Scheduler started with a %s period in %s", s.period, s.location)

	if s.runOnStart {
		s.trigger(ctx, s.now().In(s.location))
	}

	for {
		next := s.Next(s.now())
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Infof("Scheduler stopped")
			return nil
		case <-timer.C:
		}

		s.trigger(ctx, next)
	}
}

func (s *Scheduler) trigger(ctx context.Context, at time.Time) {
	s.logger.Debugf("Triggering job at %s", at.Format(time.RFC3339))

	if err := s.job(ctx, at); err != nil {
		s.logger.Errorf("Scheduled job failed: %s", err)
	}
}
