package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
	Now    func() time.Time
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

type throttleKey struct {
	userID  string
	channel model.ThrottleChannel
}

type completionKey struct {
	userID string
	date   model.Date
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	users       map[string]model.User
	tasks       map[string]model.Task
	completions map[completionKey]model.CompletionRecord
	settings    map[string]model.Settings
	throttles   map[throttleKey]model.ThrottleState
	streaks     map[string]model.StreakState
	tokens      map[string]model.DeliveryToken
	mu          sync.RWMutex
	logger      log.Logger
	now         func() time.Time
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		users:       map[string]model.User{},
		tasks:       map[string]model.Task{},
		completions: map[completionKey]model.CompletionRecord{},
		settings:    map[string]model.Settings{},
		throttles:   map[throttleKey]model.ThrottleState{},
		streaks:     map[string]model.StreakState{},
		tokens:      map[string]model.DeliveryToken{},
		logger:      cfg.Logger,
		now:         cfg.Now,
	}, nil
}

// ensureUser must be called with the write lock held.
func (r *Repository) ensureUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required: %w", model.ErrNotValid)
	}
	if _, ok := r.users[userID]; !ok {
		r.users[userID] = model.User{ID: userID, CreatedAt: r.now().UTC().Truncate(time.Second)}
	}
	return nil
}

// ListUsers returns all the known users in registration order.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})

	return users, nil
}

// CreateTask stores a new task.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid task schedule: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(t.UserID); err != nil {
		return err
	}

	if _, ok := r.tasks[t.ID]; ok {
		return fmt.Errorf("task with id %s: %w", t.ID, model.ErrAlreadyExists)
	}

	r.tasks[t.ID] = t
	r.logger.Debugf("Created task in repository: %s", t.ID)

	return nil
}

// GetTask retrieves a user task by ID.
func (r *Repository) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	return &t, nil
}

// ListTasks returns the user tasks in creation order.
func (r *Repository) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []model.Task{}
	for _, t := range r.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	if err := t.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid task schedule: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[t.ID]
	if !ok || stored.UserID != t.UserID {
		return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
	}

	t.CreatedAt = stored.CreatedAt
	r.tasks[t.ID] = t
	r.logger.Debugf("Updated task in repository: %s", t.ID)

	return nil
}

// DeleteTask deletes a user task.
func (r *Repository) DeleteTask(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	delete(r.tasks, id)
	r.logger.Debugf("Deleted task from repository: %s", id)

	return nil
}

// GetCompletion returns the completion record of a date, empty if nothing was completed.
func (r *Repository) GetCompletion(ctx context.Context, userID string, date model.Date) (*model.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.completions[completionKey{userID: userID, date: date}]
	if !ok {
		c := model.NewCompletionRecord(userID, date)
		return &c, nil
	}

	// The set is copied so callers can't mutate the stored one.
	c := model.NewCompletionRecord(userID, date, stored.IDs()...)
	return &c, nil
}

// SaveCompletion replaces the completion record of the record date.
func (r *Repository) SaveCompletion(ctx context.Context, c model.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(c.UserID); err != nil {
		return err
	}

	r.completions[completionKey{userID: c.UserID, date: c.Date}] = model.NewCompletionRecord(c.UserID, c.Date, c.IDs()...)
	return nil
}

// GetSettings returns the user settings.
func (r *Repository) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.settings[userID]
	if !ok {
		return nil, fmt.Errorf("settings for user %s: %w", userID, model.ErrNotFound)
	}

	return &s, nil
}

// SaveSettings stores the user settings.
func (r *Repository) SaveSettings(ctx context.Context, userID string, s model.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(userID); err != nil {
		return err
	}

	r.settings[userID] = s
	return nil
}

// GetThrottleState returns the throttle state of a channel, a zero state if none is stored.
func (r *Repository) GetThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel) (*model.ThrottleState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.throttles[throttleKey{userID: userID, channel: channel}]
	return &s, nil
}

// SaveThrottleState stores the throttle state of a channel if nobody else wrote it since it was read.
func (r *Repository) SaveThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel, s model.ThrottleState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(userID); err != nil {
		return err
	}

	key := throttleKey{userID: userID, channel: channel}
	stored := r.throttles[key]
	if stored.Version != s.Version {
		return fmt.Errorf("throttle state %s/%s changed since version %d: %w", userID, channel, s.Version, model.ErrConflict)
	}

	s.Version = stored.Version + 1
	r.throttles[key] = s

	return nil
}

// GetStreak returns the user streak, a zero streak if none is stored.
func (r *Repository) GetStreak(ctx context.Context, userID string) (*model.StreakState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.streaks[userID]
	return &s, nil
}

// SaveStreak stores the user streak.
func (r *Repository) SaveStreak(ctx context.Context, userID string, s model.StreakState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(userID); err != nil {
		return err
	}

	r.streaks[userID] = s
	return nil
}

// GetDeliveryToken returns the user push token.
func (r *Repository) GetDeliveryToken(ctx context.Context, userID string) (*model.DeliveryToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[userID]
	if !ok {
		return nil, fmt.Errorf("delivery token for user %s: %w", userID, model.ErrNotFound)
	}

	return &t, nil
}

// SaveDeliveryToken stores the user push token.
func (r *Repository) SaveDeliveryToken(ctx context.Context, t model.DeliveryToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureUser(t.UserID); err != nil {
		return err
	}

	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = r.now().UTC().Truncate(time.Second)
	}
	r.tokens[t.UserID] = t

	return nil
}
