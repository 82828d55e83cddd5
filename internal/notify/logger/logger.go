// Package logger has delivery collaborators that only log the messages.
//
// Used when the server runs without push credentials, reminders are still planned
// and committed so the throttle behaves the same way.
package logger

import (
	"context"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
)

// Pusher is a notify.Pusher that logs instead of sending.
type Pusher struct {
	logger log.Logger
}

// NewPusher returns a new log based pusher.
func NewPusher(logger log.Logger) *Pusher {
	if logger == nil {
		logger = log.Noop
	}
	return &Pusher{logger: logger.WithValues(log.Kv{"svc": "notify.LogPusher"})}
}

var _ notify.Pusher = &Pusher{}

func (p *Pusher) Send(ctx context.Context, token string, msg model.Message) error {
	p.logger.WithCtxValues(ctx).WithValues(log.Kv{"tag": msg.Tag}).Infof("Push (dry-run): %s: %s", msg.Title, msg.Body)
	return nil
}
