// Package notify has the delivery collaborators reminders are handed to.
package notify

import (
	"context"
	"errors"

	"github.com/slok/nudge/internal/model"
)

// ErrTokenRejected is returned by pushers when the push service no longer accepts a token.
var ErrTokenRejected = errors.New("delivery token rejected")

// Pusher delivers a message to a remote device through a push service.
//
// Implementations must not retry synchronously, a failed send is reported and the
// caller decides what to do on the next evaluation.
type Pusher interface {
	Send(ctx context.Context, token string, msg model.Message) error
}

//go:generate mockery --case underscore --output notifymock --outpkg notifymock --name Pusher

// Displayer shows a message on the local device.
type Displayer interface {
	Display(ctx context.Context, msg model.Message) error
}

//go:generate mockery --case underscore --output notifymock --outpkg notifymock --name Displayer
