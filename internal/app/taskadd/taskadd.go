package taskadd

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

// ServiceConfig is the configuration for the task add service.
type ServiceConfig struct {
	Repository storage.Repository
	// IDGenerator returns new task IDs, ULIDs by default.
	IDGenerator func(now time.Time) string
	Now         func() time.Time
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.IDGenerator == nil {
		c.IDGenerator = func(now time.Time) string {
			return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
		}
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service adds tasks.
type Service struct {
	repo   storage.Repository
	newID  func(now time.Time) string
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new task add service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		newID:  cfg.IDGenerator,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task add request parameters.
type Request struct {
	UserID   string
	Name     string
	Schedule model.Schedule
	// Time is the optional time of day the task is due at.
	Time *model.TimeOfDay
}

// Run creates the task and returns it.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	now := s.now().UTC().Truncate(time.Second)

	task := model.Task{
		ID:        s.newID(now),
		UserID:    req.UserID,
		Name:      req.Name,
		Schedule:  req.Schedule,
		Time:      req.Time,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.logger.Infof("added %s task %q (ID: %s)", task.Kind(), task.Name, task.ID)
	return &task, nil
}
