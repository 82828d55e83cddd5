package settings

import (
	"context"
	"fmt"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
)

// ServiceConfig is the configuration for the settings service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service gets and updates user settings.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new settings service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the settings request parameters.
//
// Nil fields keep the current value, a request without changes only reads the settings.
type Request struct {
	UserID                  string
	ReminderIntervalMinutes *int
	ActiveHoursOnly         *bool
	AggressiveMode          *bool
	NotificationsEnabled    *bool
}

func (r Request) hasChanges() bool {
	return r.ReminderIntervalMinutes != nil ||
		r.ActiveHoursOnly != nil ||
		r.AggressiveMode != nil ||
		r.NotificationsEnabled != nil
}

// Run merges the request over the current settings (or the defaults) and returns the result.
func (s *Service) Run(ctx context.Context, req Request) (*model.Settings, error) {
	current, err := storage.SettingsOrDefault(ctx, s.repo, req.UserID)
	if err != nil {
		return nil, err
	}

	if !req.hasChanges() {
		return &current, nil
	}

	if req.ReminderIntervalMinutes != nil {
		current.ReminderIntervalMinutes = *req.ReminderIntervalMinutes
	}
	if req.ActiveHoursOnly != nil {
		current.ActiveHoursOnly = *req.ActiveHoursOnly
	}
	if req.AggressiveMode != nil {
		current.AggressiveMode = *req.AggressiveMode
	}
	if req.NotificationsEnabled != nil {
		current.NotificationsEnabled = *req.NotificationsEnabled
	}

	if err := current.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	if err := s.repo.SaveSettings(ctx, req.UserID, current); err != nil {
		return nil, fmt.Errorf("could not save settings: %w", err)
	}

	s.logger.Infof("settings updated for user %s", req.UserID)
	return &current, nil
}
