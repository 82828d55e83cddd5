package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
	"github.com/slok/nudge/internal/reminder"
	"github.com/slok/nudge/internal/storage"
	"github.com/slok/nudge/internal/streak"
)

// ServiceConfig is the configuration for the sweep service.
type ServiceConfig struct {
	Repository storage.Repository
	Pusher     notify.Pusher
	// Planner plans the reminders, the default planner if not set.
	Planner *reminder.Planner
	// Channel is the throttle state the sweep owns.
	Channel model.ThrottleChannel
	// Location is the zone days and active hours are evaluated in.
	Location *time.Location
	// Concurrency is the number of users evaluated at the same time.
	Concurrency int
	// DisableRejectedTokens disables the tokens the push service rejects.
	DisableRejectedTokens bool
	Now                   func() time.Time
	Logger                log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Pusher == nil {
		return fmt.Errorf("pusher is required")
	}

	if c.Planner == nil {
		c.Planner = &reminder.DefaultPlanner
	}

	if c.Channel == "" {
		c.Channel = model.ThrottleChannelPush
	}

	if c.Location == nil {
		loc, err := conventions.DefaultLocation()
		if err != nil {
			return err
		}
		c.Location = loc
	}

	if c.Concurrency <= 0 {
		c.Concurrency = conventions.DefaultSweepConcurrency
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Sweep"})

	return nil
}

// Service evaluates every known user and pushes the reminders that are due.
type Service struct {
	repo                  storage.Repository
	pusher                notify.Pusher
	planner               reminder.Planner
	channel               model.ThrottleChannel
	location              *time.Location
	concurrency           int
	disableRejectedTokens bool
	now                   func() time.Time
	logger                log.Logger
}

// NewService creates a new sweep service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:                  cfg.Repository,
		pusher:                cfg.Pusher,
		planner:               *cfg.Planner,
		channel:               cfg.Channel,
		location:              cfg.Location,
		concurrency:           cfg.Concurrency,
		disableRejectedTokens: cfg.DisableRejectedTokens,
		now:                   cfg.Now,
		logger:                cfg.Logger,
	}, nil
}

// Request represents the sweep request parameters.
type Request struct {
	// Now is the instant the sweep evaluates at, the service clock if zero.
	Now time.Time
}

// Result is the summary of a sweep run.
type Result struct {
	RunID string
	// Users is the number of users evaluated.
	Users int
	// Notified is the number of users that received a reminder.
	Notified int
	// Skipped is the number of users with nothing to deliver or without a usable token.
	Skipped int
	// Failed is the number of users whose evaluation or delivery failed.
	Failed int
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeNotified
	outcomeFailed
)

// Run evaluates all the users once.
//
// A user failure never stops the sweep, it's logged and counted. The only error
// returned is the one of listing the users or a cancelled context.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	now = now.In(s.location)

	res := &Result{RunID: uuid.NewString()}
	ctx = s.logger.SetValuesOnCtx(ctx, log.Kv{"run-id": res.RunID})
	logger := s.logger.WithCtxValues(ctx)

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(s.concurrency)

	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			o := s.processUser(ctx, u.ID, now)

			mu.Lock()
			defer mu.Unlock()
			res.Users++
			switch o {
			case outcomeNotified:
				res.Notified++
			case outcomeFailed:
				res.Failed++
			default:
				res.Skipped++
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("sweep interrupted: %w", err)
	}

	logger.Infof("Sweep finished: %d users, %d notified, %d skipped, %d failed", res.Users, res.Notified, res.Skipped, res.Failed)
	return res, nil
}

func (s *Service) processUser(ctx context.Context, userID string, now time.Time) (o outcome) {
	ctx = s.logger.SetValuesOnCtx(ctx, log.Kv{"user-id": userID})
	logger := s.logger.WithCtxValues(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Panic while processing user: %v", r)
			o = outcomeFailed
		}
	}()

	res, err := s.evaluateUser(ctx, userID, now)
	if err != nil {
		logger.Errorf("Could not process user: %s", err)
		return outcomeFailed
	}

	return res
}

func (s *Service) evaluateUser(ctx context.Context, userID string, now time.Time) (outcome, error) {
	logger := s.logger.WithCtxValues(ctx)

	token, err := s.repo.GetDeliveryToken(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Debugf("User without delivery token, skipping")
			return outcomeSkipped, nil
		}
		return outcomeFailed, fmt.Errorf("could not get delivery token: %w", err)
	}
	if !token.Usable() {
		logger.Debugf("User delivery token disabled, skipping")
		return outcomeSkipped, nil
	}

	settings, err := storage.SettingsOrDefault(ctx, s.repo, userID)
	if err != nil {
		return outcomeFailed, err
	}
	if err := settings.Validate(); err != nil {
		return outcomeFailed, fmt.Errorf("invalid settings: %w", err)
	}

	tasks, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return outcomeFailed, fmt.Errorf("could not list tasks: %w", err)
	}

	completed, err := s.repo.GetCompletion(ctx, userID, model.DateOf(now))
	if err != nil {
		return outcomeFailed, fmt.Errorf("could not get completion record: %w", err)
	}

	day := agenda.Build(tasks, *completed, now)

	// Streak is kept fresh even for users that don't get a reminder.
	if err := s.evaluateStreak(ctx, userID, day); err != nil {
		logger.Warningf("Could not evaluate streak: %s", err)
	}

	state, err := s.repo.GetThrottleState(ctx, userID, s.channel)
	if err != nil {
		return outcomeFailed, fmt.Errorf("could not get throttle state: %w", err)
	}

	r := s.planner.Plan(day, settings, *state, now)
	if r == nil {
		logger.Debugf("Nothing to remind")
		return outcomeSkipped, nil
	}

	if err := s.pusher.Send(ctx, token.Token, r.Message); err != nil {
		if errors.Is(err, notify.ErrTokenRejected) && s.disableRejectedTokens {
			s.disableToken(ctx, *token)
		}
		return outcomeFailed, fmt.Errorf("could not push %s reminder: %w", r.Category, err)
	}

	logger.Infof("Pushed %s reminder about %d tasks", r.Category, len(r.Tasks))

	err = s.repo.SaveThrottleState(ctx, userID, s.channel, r.Commit(*state))
	if err != nil {
		// The reminder was delivered, a lost write only means another evaluation committed first.
		if errors.Is(err, model.ErrConflict) {
			logger.Warningf("Throttle state was updated concurrently: %s", err)
			return outcomeNotified, nil
		}
		return outcomeFailed, fmt.Errorf("could not save throttle state: %w", err)
	}

	return outcomeNotified, nil
}

func (s *Service) evaluateStreak(ctx context.Context, userID string, day agenda.Agenda) error {
	current, err := s.repo.GetStreak(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not get streak: %w", err)
	}

	next, changed := streak.Evaluate(*current, day)
	if !changed {
		return nil
	}

	if err := s.repo.SaveStreak(ctx, userID, next); err != nil {
		return fmt.Errorf("could not save streak: %w", err)
	}

	return nil
}

func (s *Service) disableToken(ctx context.Context, token model.DeliveryToken) {
	logger := s.logger.WithCtxValues(ctx)

	token.Disabled = true
	token.UpdatedAt = s.now()
	if err := s.repo.SaveDeliveryToken(ctx, token); err != nil {
		logger.Errorf("Could not disable rejected delivery token: %s", err)
		return
	}

	logger.Warningf("Delivery token rejected by the push service, disabled")
}
