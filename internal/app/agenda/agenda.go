package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
	"github.com/slok/nudge/internal/streak"
)

// ServiceConfig is the configuration for the agenda service.
type ServiceConfig struct {
	Repository storage.Repository
	// Location is the user zone, used to know what today is.
	Location *time.Location
	Now      func() time.Time
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
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

	return nil
}

// Service resolves the agenda of today.
type Service struct {
	repo     storage.Repository
	location *time.Location
	now      func() time.Time
	logger   log.Logger
}

// NewService creates a new agenda service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		location: cfg.Location,
		now:      cfg.Now,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the agenda request parameters.
type Request struct {
	UserID string
}

// Response is the agenda of today.
type Response struct {
	Agenda agenda.Agenda
	Streak model.StreakState
	// Now is the instant the agenda was resolved at, in the user zone.
	Now time.Time
}

// Run resolves the user agenda at the current instant.
//
// The streak decay of a missed day is persisted when found.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	now := s.now().In(s.location)

	tasks, err := s.repo.ListTasks(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	completion, err := s.repo.GetCompletion(ctx, req.UserID, model.DateOf(now))
	if err != nil {
		return nil, fmt.Errorf("could not get completion record: %w", err)
	}

	day := agenda.Build(tasks, *completion, now)

	current, err := s.repo.GetStreak(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not get streak: %w", err)
	}

	next, changed := streak.Evaluate(*current, day)
	if changed {
		if err := s.repo.SaveStreak(ctx, req.UserID, next); err != nil {
			return nil, fmt.Errorf("could not save streak: %w", err)
		}
	}

	s.logger.Debugf("agenda of %s: %d due, %d pending, %d overdue", day.Today, len(day.Due), len(day.Pending), len(day.Overdue))

	return &Response{Agenda: day, Streak: next, Now: now}, nil
}
