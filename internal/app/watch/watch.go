package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
	"github.com/slok/nudge/internal/reminder"
	"github.com/slok/nudge/internal/storage"
	"github.com/slok/nudge/internal/streak"
)

// LoopConfig is the configuration for the local tick loop.
type LoopConfig struct {
	Repository storage.Repository
	Displayer  notify.Displayer
	UserID     string
	// Planner plans the reminders, the default planner if not set.
	Planner *reminder.Planner
	// Channel is the throttle state the loop owns.
	Channel model.ThrottleChannel
	// Location is the user zone.
	Location     *time.Location
	InitialDelay time.Duration
	Period       time.Duration
	// OnTick is called after every tick with its result.
	OnTick func(TickResult)
	Now    func() time.Time
	Logger log.Logger
}

func (c *LoopConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Displayer == nil {
		return fmt.Errorf("displayer is required")
	}

	if c.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	if c.Planner == nil {
		c.Planner = &reminder.DefaultPlanner
	}

	if c.Channel == "" {
		c.Channel = model.ThrottleChannelLocal
	}

	if c.Location == nil {
		loc, err := conventions.DefaultLocation()
		if err != nil {
			return err
		}
		c.Location = loc
	}

	if c.InitialDelay < 0 {
		return fmt.Errorf("initial delay can't be negative")
	}
	if c.InitialDelay == 0 {
		c.InitialDelay = conventions.LocalInitialDelay
	}

	if c.Period < 0 {
		return fmt.Errorf("period can't be negative")
	}
	if c.Period == 0 {
		c.Period = conventions.LocalTickPeriod
	}

	if c.OnTick == nil {
		c.OnTick = func(TickResult) {}
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Watch", "user-id": c.UserID})

	return nil
}

// session is the last known user state.
type session struct {
	tasks      []model.Task
	settings   model.Settings
	completion model.CompletionRecord
	streak     model.StreakState
}

// Loop evaluates a single user periodically and shows the reminders on the local device.
//
// Ticks run sequentially on the goroutine that called Run, they never overlap.
type Loop struct {
	repo         storage.Repository
	displayer    notify.Displayer
	userID       string
	planner      reminder.Planner
	channel      model.ThrottleChannel
	location     *time.Location
	initialDelay time.Duration
	period       time.Duration
	onTick       func(TickResult)
	now          func() time.Time
	logger       log.Logger

	cache *session
}

// NewLoop creates a new local tick loop.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Loop{
		repo:         cfg.Repository,
		displayer:    cfg.Displayer,
		userID:       cfg.UserID,
		planner:      *cfg.Planner,
		channel:      cfg.Channel,
		location:     cfg.Location,
		initialDelay: cfg.InitialDelay,
		period:       cfg.Period,
		onTick:       cfg.OnTick,
		now:          cfg.Now,
		logger:       cfg.Logger,
	}, nil
}

// TickResult is the outcome of a tick.
type TickResult struct {
	Agenda agenda.Agenda
	Streak model.StreakState
	// Reminder is the reminder planned on the tick, nil if nothing had to fire.
	Reminder *reminder.Reminder
	// Delivered is true when the reminder was displayed.
	Delivered bool
}

// Run ticks until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(l.initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	l.runTick(ctx)

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.runTick(ctx)
		}
	}
}

func (l *Loop) runTick(ctx context.Context) {
	res, err := l.Tick(ctx)
	if err != nil {
		l.logger.Errorf("Tick failed: %s", err)
		return
	}
	l.onTick(*res)
}

// Tick runs a single evaluation.
func (l *Loop) Tick(ctx context.Context) (*TickResult, error) {
	now := l.now().In(l.location)
	today := model.DateOf(now)

	sess, err := l.refresh(ctx, today)
	if err != nil {
		if l.cache == nil {
			return nil, fmt.Errorf("could not load user state: %w", err)
		}
		l.logger.Warningf("Could not refresh user state, using the last known one: %s", err)
		sess = *l.cache
		// A record from another day is not today's completion.
		if sess.completion.Date != today {
			sess.completion = model.NewCompletionRecord(l.userID, today)
		}
	}

	day := agenda.Build(sess.tasks, sess.completion, now)

	next, changed := streak.Evaluate(sess.streak, day)
	if changed {
		if err := l.repo.SaveStreak(ctx, l.userID, next); err != nil {
			l.logger.Warningf("Could not save streak: %s", err)
		}
		sess.streak = next
	}
	l.cache = &sess

	res := &TickResult{Agenda: day, Streak: sess.streak}

	if err := sess.settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	state, err := l.repo.GetThrottleState(ctx, l.userID, l.channel)
	if err != nil {
		return nil, fmt.Errorf("could not get throttle state: %w", err)
	}

	res.Reminder = l.planner.Plan(day, sess.settings, *state, now)
	if res.Reminder == nil {
		return res, nil
	}

	if err := l.displayer.Display(ctx, res.Reminder.Message); err != nil {
		return nil, fmt.Errorf("could not display %s reminder: %w", res.Reminder.Category, err)
	}
	res.Delivered = true

	err = l.repo.SaveThrottleState(ctx, l.userID, l.channel, res.Reminder.Commit(*state))
	if err != nil {
		if !errors.Is(err, model.ErrConflict) {
			return nil, fmt.Errorf("could not save throttle state: %w", err)
		}
		l.logger.Warningf("Throttle state was updated concurrently: %s", err)
	}

	return res, nil
}

func (l *Loop) refresh(ctx context.Context, today model.Date) (session, error) {
	tasks, err := l.repo.ListTasks(ctx, l.userID)
	if err != nil {
		return session{}, fmt.Errorf("could not list tasks: %w", err)
	}

	settings, err := storage.SettingsOrDefault(ctx, l.repo, l.userID)
	if err != nil {
		return session{}, err
	}

	completion, err := l.repo.GetCompletion(ctx, l.userID, today)
	if err != nil {
		return session{}, fmt.Errorf("could not get completion record: %w", err)
	}

	st, err := l.repo.GetStreak(ctx, l.userID)
	if err != nil {
		return session{}, fmt.Errorf("could not get streak: %w", err)
	}

	return session{
		tasks:      tasks,
		settings:   settings,
		completion: *completion,
		streak:     *st,
	}, nil
}
