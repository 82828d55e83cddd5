package throttle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/throttle"
)

func enabled() model.Settings {
	s := model.DefaultSettings()
	s.NotificationsEnabled = true
	return s
}

func at(h, m int) time.Time { return time.Date(2024, 1, 5, h, m, 0, 0, time.UTC) }

func TestShouldFire(t *testing.T) {
	tests := map[string]struct {
		cat      model.ReminderCategory
		settings func() model.Settings
		state    model.ThrottleState
		now      time.Time
		expFire  bool
	}{
		"Disabled notifications should never fire": {
			cat:      model.ReminderCategoryOverdue,
			settings: model.DefaultSettings,
			now:      at(10, 0),
		},
		"Enabled notifications without history should fire": {
			cat:      model.ReminderCategoryOverdue,
			settings: enabled,
			now:      at(10, 0),
			expFire:  true,
		},
		"Outside active hours should not fire": {
			cat:      model.ReminderCategoryOverdue,
			settings: enabled,
			now:      at(23, 0),
		},
		"Before active hours should not fire": {
			cat:      model.ReminderCategoryPending,
			settings: enabled,
			now:      at(7, 59),
		},
		"At active hours start should fire": {
			cat:      model.ReminderCategoryPending,
			settings: enabled,
			now:      at(8, 0),
			expFire:  true,
		},
		"At active hours end should not fire": {
			cat:      model.ReminderCategoryPending,
			settings: enabled,
			now:      at(22, 0),
		},
		"Active hours disabled should fire at night": {
			cat: model.ReminderCategoryOverdue,
			settings: func() model.Settings {
				s := enabled()
				s.ActiveHoursOnly = false
				return s
			},
			now:     at(23, 0),
			expFire: true,
		},
		"Inside the interval should not fire": {
			cat:      model.ReminderCategoryOverdue,
			settings: enabled,
			state:    model.ThrottleState{LastOverdueReminderAt: ptr(at(9, 31))},
			now:      at(10, 0),
		},
		"Exactly at the interval should fire": {
			cat:      model.ReminderCategoryOverdue,
			settings: enabled,
			state:    model.ThrottleState{LastOverdueReminderAt: ptr(at(9, 30))},
			now:      at(10, 0),
			expFire:  true,
		},
		"The other category history should not throttle": {
			cat:      model.ReminderCategoryPending,
			settings: enabled,
			state:    model.ThrottleState{LastOverdueReminderAt: ptr(at(9, 59))},
			now:      at(10, 0),
			expFire:  true,
		},
		"Aggressive mode should halve the overdue interval": {
			cat: model.ReminderCategoryOverdue,
			settings: func() model.Settings {
				s := enabled()
				s.AggressiveMode = true
				return s
			},
			state:   model.ThrottleState{LastOverdueReminderAt: ptr(at(9, 45))},
			now:     at(10, 0),
			expFire: true,
		},
		"Aggressive mode should not halve the pending interval": {
			cat: model.ReminderCategoryPending,
			settings: func() model.Settings {
				s := enabled()
				s.AggressiveMode = true
				return s
			},
			state: model.ThrottleState{LastPendingReminderAt: ptr(at(9, 45))},
			now:   at(10, 0),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := throttle.DefaultPolicy.ShouldFire(test.cat, test.settings(), test.state, test.now)

			assert.Equal(t, test.expFire, got)
		})
	}
}

func TestInterval(t *testing.T) {
	s := enabled()
	s.AggressiveMode = true

	assert.Equal(t, 15*time.Minute, throttle.DefaultPolicy.Interval(model.ReminderCategoryOverdue, s))
	assert.Equal(t, 30*time.Minute, throttle.DefaultPolicy.Interval(model.ReminderCategoryPending, s))

	all := throttle.Policy{AggressiveScope: throttle.AggressiveAllCategories}
	assert.Equal(t, 15*time.Minute, all.Interval(model.ReminderCategoryPending, s))

	s.AggressiveMode = false
	assert.Equal(t, 30*time.Minute, throttle.DefaultPolicy.Interval(model.ReminderCategoryOverdue, s))
}

// Simulating a tick every minute for a whole day, consecutive fire events must respect the interval.
func TestShouldFireSpacing(t *testing.T) {
	tests := map[string]struct {
		aggressive bool
		expSpacing time.Duration
	}{
		"Normal mode should space overdue reminders 30 minutes": {
			expSpacing: 30 * time.Minute,
		},
		"Aggressive mode should space overdue reminders 15 minutes": {
			aggressive: true,
			expSpacing: 15 * time.Minute,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := enabled()
			s.AggressiveMode = test.aggressive

			state := model.ThrottleState{}
			var fired []time.Time
			for now := at(0, 0); now.Before(at(23, 59)); now = now.Add(time.Minute) {
				if throttle.DefaultPolicy.ShouldFire(model.ReminderCategoryOverdue, s, state, now) {
					fired = append(fired, now)
					state = state.WithFired(model.ReminderCategoryOverdue, now)
				}
			}

			assert.NotEmpty(t, fired)
			for i := 1; i < len(fired); i++ {
				assert.GreaterOrEqual(t, fired[i].Sub(fired[i-1]), test.expSpacing)
			}
			for _, f := range fired {
				assert.True(t, throttle.InActiveHours(f))
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }
