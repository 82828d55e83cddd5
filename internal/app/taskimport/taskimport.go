package taskimport

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
)

// TaskLoader loads task definitions from a source.
type TaskLoader interface {
	ListTasks(ctx context.Context, path string) ([]model.Task, error)
}

// ServiceConfig is the configuration for the task import service.
type ServiceConfig struct {
	Repository storage.Repository
	Loader     TaskLoader
	Now        func() time.Time
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Loader == nil {
		return fmt.Errorf("loader is required")
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service imports tasks in bulk.
type Service struct {
	repo   storage.Repository
	loader TaskLoader
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new task import service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		loader: cfg.Loader,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task import request parameters.
type Request struct {
	UserID string
	Path   string
}

// Run loads all the tasks of the file and creates them in file order.
//
// The whole file is validated before creating anything.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	loaded, err := s.loader.ListTasks(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not load tasks: %w", err)
	}

	now := s.now().UTC().Truncate(time.Second)
	entropy := ulid.Monotonic(rand.Reader, 0)

	tasks := make([]model.Task, 0, len(loaded))
	for _, t := range loaded {
		// Monotonic IDs keep the file order on equal creation times.
		t.ID = ulid.MustNew(ulid.Timestamp(now), entropy).String()
		t.UserID = req.UserID
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid task %q: %w", t.Name, err)
		}
		tasks = append(tasks, t)
	}

	for _, t := range tasks {
		if err := s.repo.CreateTask(ctx, t); err != nil {
			return nil, fmt.Errorf("could not create task %q: %w", t.Name, err)
		}
	}

	s.logger.Infof("imported %d tasks", len(tasks))
	return tasks, nil
}
