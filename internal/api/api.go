// Package api exposes the callable operations of nudge over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slok/nudge/internal/app/testnotify"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
)

// TestNotifier sends test notifications.
type TestNotifier interface {
	Run(ctx context.Context, req testnotify.Request) (*testnotify.Response, error)
}

// HandlerConfig is the configuration of the HTTP handler.
type HandlerConfig struct {
	TestNotifier TestNotifier
	// UserHeader is the header the fronting auth layer sets with the authenticated user.
	UserHeader string
	Logger     log.Logger
}

func (c *HandlerConfig) defaults() error {
	if c.TestNotifier == nil {
		return fmt.Errorf("test notifier is required")
	}

	if c.UserHeader == "" {
		c.UserHeader = conventions.UserHeader
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.Handler"})

	return nil
}

type handler struct {
	testNotifier TestNotifier
	userHeader   string
	logger       log.Logger
}

// NewHandler returns the HTTP handler of the API.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	h := handler{
		testNotifier: cfg.TestNotifier,
		userHeader:   cfg.UserHeader,
		logger:       cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), h.logRequests())

	router.GET("/healthz", h.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/notifications/test", h.handleTestNotification)
	}

	return router, nil
}

func (h handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.logger.WithValues(log.Kv{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debugf("HTTP request handled")
	}
}

func (h handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h handler) handleTestNotification(c *gin.Context) {
	resp, err := h.testNotifier.Run(c.Request.Context(), testnotify.Request{
		UserID: c.GetHeader(h.userHeader),
	})
	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Errorf("Test notification failed: %s", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrAuthenticationRequired):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNotValid):
		return http.StatusBadRequest
	default:
		// Delivery failures are upstream errors.
		return http.StatusBadGateway
	}
}
