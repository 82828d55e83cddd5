package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify/logger"
)

func TestPusherNeverFails(t *testing.T) {
	p := logger.NewPusher(log.Noop)
	err := p.Send(context.Background(), "", model.Message{Title: "t", Body: "b", Tag: "nudge-test"})
	assert.NoError(t, err)
}
