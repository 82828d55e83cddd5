package testnotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
	"github.com/slok/nudge/internal/reminder"
	"github.com/slok/nudge/internal/storage"
)

// ServiceConfig is the configuration for the test notification service.
type ServiceConfig struct {
	Repository storage.Repository
	Pusher     notify.Pusher
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Pusher == nil {
		return fmt.Errorf("pusher is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.TestNotify"})

	return nil
}

// Service sends a fixed notification to a user device so they can check delivery works.
type Service struct {
	repo   storage.Repository
	pusher notify.Pusher
	logger log.Logger
}

// NewService creates a new test notification service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		pusher: cfg.Pusher,
		logger: cfg.Logger,
	}, nil
}

// Request represents the test notification request parameters.
type Request struct {
	// UserID is the authenticated caller.
	UserID string
}

// Response is the test notification result.
type Response struct {
	Success bool `json:"success"`
}

// Run sends the test notification.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, fmt.Errorf("must be logged in: %w", model.ErrAuthenticationRequired)
	}

	token, err := s.repo.GetDeliveryToken(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("no delivery token: %w", model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get delivery token: %w", err)
	}
	if !token.Usable() {
		return nil, fmt.Errorf("no usable delivery token: %w", model.ErrNotFound)
	}

	if err := s.pusher.Send(ctx, token.Token, reminder.TestMessage); err != nil {
		return nil, fmt.Errorf("could not send test notification: %w", err)
	}

	s.logger.WithValues(log.Kv{"user-id": userID}).Infof("Test notification sent")
	return &Response{Success: true}, nil
}
