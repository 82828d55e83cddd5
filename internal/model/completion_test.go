package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/nudge/internal/model"
)

func TestCompletionRecordToggle(t *testing.T) {
	c := model.CompletionRecord{UserID: "u1", Date: model.NewDate(2024, time.January, 5)}

	assert.False(t, c.Has("t1"))
	assert.True(t, c.Toggle("t1"))
	assert.True(t, c.Has("t1"))
	assert.True(t, c.Toggle("t2"))
	assert.Equal(t, []string{"t1", "t2"}, c.IDs())

	assert.False(t, c.Toggle("t1"))
	assert.False(t, c.Has("t1"))
	assert.Equal(t, 1, c.Len())

	c.Remove("t2")
	c.Remove("missing")
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []string{}, c.IDs())
}

func TestThrottleStateWithFired(t *testing.T) {
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	s := model.ThrottleState{Version: 3}

	got := s.WithFired(model.ReminderCategoryOverdue, at)

	assert.Nil(t, s.LastOverdueReminderAt)
	assert.Equal(t, &at, got.LastFired(model.ReminderCategoryOverdue))
	assert.Nil(t, got.LastFired(model.ReminderCategoryPending))
	assert.Equal(t, 3, got.Version)
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, model.DefaultSettings().Validate())
	assert.ErrorIs(t, model.Settings{ReminderIntervalMinutes: 0}.Validate(), model.ErrNotValid)
	assert.ErrorIs(t, model.Settings{ReminderIntervalMinutes: -5}.Validate(), model.ErrNotValid)
}

func TestDeliveryTokenUsable(t *testing.T) {
	assert.True(t, model.DeliveryToken{Token: "abc"}.Usable())
	assert.False(t, model.DeliveryToken{Token: "abc", Disabled: true}.Usable())
	assert.False(t, model.DeliveryToken{}.Usable())
}
