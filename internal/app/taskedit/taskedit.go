package taskedit

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
)

// ServiceConfig is the configuration for the task edit service.
type ServiceConfig struct {
	Repository storage.Repository
	Now        func() time.Time
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service edits tasks.
type Service struct {
	repo   storage.Repository
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new task edit service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task edit request parameters, nil fields are left untouched.
type Request struct {
	UserID   string
	ID       string
	Name     *string
	Schedule *model.Schedule
	Time     *model.TimeOfDay
	// ClearTime removes the task time, it can't be used with Time.
	ClearTime bool
}

// Run edits the task and returns the updated one.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	if req.ClearTime && req.Time != nil {
		return nil, fmt.Errorf("time can't be set and cleared at the same time: %w", model.ErrNotValid)
	}

	task, err := s.repo.GetTask(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Schedule != nil {
		task.Schedule = *req.Schedule
	}
	switch {
	case req.ClearTime:
		task.Time = nil
	case req.Time != nil:
		t := *req.Time
		task.Time = &t
	}
	task.UpdatedAt = s.now().UTC().Truncate(time.Second)

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	if err := s.repo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	s.logger.Infof("edited task %q (ID: %s)", task.Name, task.ID)
	return task, nil
}
