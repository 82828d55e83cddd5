package taskremove

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
)

// ServiceConfig is the configuration for the task remove service.
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

// Service removes tasks.
type Service struct {
	repo     storage.Repository
	location *time.Location
	now      func() time.Time
	logger   log.Logger
}

// NewService creates a new task remove service.
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

// Request represents the task remove request parameters.
type Request struct {
	UserID string
	ID     string
}

// Run removes the task and unmarks it from today's completed tasks.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	task, err := s.repo.GetTask(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	if err := s.repo.DeleteTask(ctx, req.UserID, req.ID); err != nil {
		return nil, fmt.Errorf("could not delete task: %w", err)
	}

	today := model.DateOf(s.now().In(s.location))
	completion, err := s.repo.GetCompletion(ctx, req.UserID, today)
	if err != nil {
		return nil, fmt.Errorf("could not get completion record: %w", err)
	}
	if completion.Has(task.ID) {
		completion.Remove(task.ID)
		if err := s.repo.SaveCompletion(ctx, *completion); err != nil {
			return nil, fmt.Errorf("could not save completion record: %w", err)
		}
	}

	s.logger.Infof("removed task %q (ID: %s)", task.Name, task.ID)
	return task, nil
}
