package taskdone

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

// ServiceConfig is the configuration for the task done service.
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

// Service toggles the completion of a task for today.
type Service struct {
	repo     storage.Repository
	location *time.Location
	now      func() time.Time
	logger   log.Logger
}

// NewService creates a new task done service.
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

// Request represents the task done request parameters.
type Request struct {
	UserID string
	ID     string
}

// Response is the state after the toggle.
type Response struct {
	Task model.Task
	// Done is true when the task is now marked as completed.
	Done   bool
	Agenda agenda.Agenda
	Streak model.StreakState
	// StreakAdvanced is true when this toggle completed the day.
	StreakAdvanced bool
}

// Run toggles the task completion on today's record.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	task, err := s.repo.GetTask(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	now := s.now().In(s.location)
	today := model.DateOf(now)

	completion, err := s.repo.GetCompletion(ctx, req.UserID, today)
	if err != nil {
		return nil, fmt.Errorf("could not get completion record: %w", err)
	}

	done := completion.Toggle(task.ID)
	if err := s.repo.SaveCompletion(ctx, *completion); err != nil {
		return nil, fmt.Errorf("could not save completion record: %w", err)
	}

	tasks, err := s.repo.ListTasks(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
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

	s.logger.Infof("task %q marked as done: %t", task.Name, done)

	return &Response{
		Task:           *task,
		Done:           done,
		Agenda:         day,
		Streak:         next,
		StreakAdvanced: next.Count > current.Count,
	}, nil
}
