package token

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage"
)

// ServiceConfig is the configuration for the delivery token service.
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

// Service registers and disables the push token of a user device.
type Service struct {
	repo   storage.Repository
	now    func() time.Time
	logger log.Logger
}

// NewService creates a new delivery token service.
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

// Request represents the delivery token request parameters.
type Request struct {
	UserID string
	// Token is the token to register, ignored when disabling.
	Token string
	// Disable disables the current token, keeping it stored.
	Disable bool
}

// Run registers or disables the user token.
func (s *Service) Run(ctx context.Context, req Request) (*model.DeliveryToken, error) {
	now := s.now().UTC().Truncate(time.Second)

	if req.Disable {
		t, err := s.repo.GetDeliveryToken(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("could not get delivery token: %w", err)
		}

		t.Disabled = true
		t.UpdatedAt = now
		if err := s.repo.SaveDeliveryToken(ctx, *t); err != nil {
			return nil, fmt.Errorf("could not save delivery token: %w", err)
		}

		s.logger.Infof("delivery token disabled for user %s", req.UserID)
		return t, nil
	}

	tokenValue := strings.TrimSpace(req.Token)
	if tokenValue == "" {
		return nil, fmt.Errorf("token is required: %w", model.ErrNotValid)
	}

	t := model.DeliveryToken{
		UserID:    req.UserID,
		Token:     tokenValue,
		UpdatedAt: now,
	}
	if err := s.repo.SaveDeliveryToken(ctx, t); err != nil {
		return nil, fmt.Errorf("could not save delivery token: %w", err)
	}

	s.logger.Infof("delivery token registered for user %s", req.UserID)
	return &t, nil
}
