package reminder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/reminder"
)

var today = model.NewDate(2024, time.January, 5)

func at(h, m int) time.Time { return time.Date(2024, 1, 5, h, m, 0, 0, time.UTC) }

func ptr(t time.Time) *time.Time { return &t }

func enabled() model.Settings {
	s := model.DefaultSettings()
	s.NotificationsEnabled = true
	return s
}

func task(id, name string, t *model.TimeOfDay) model.Task {
	return model.Task{ID: id, UserID: "u1", Name: name, Schedule: model.NewDailySchedule(), Time: t}
}

func TestPlan(t *testing.T) {
	overdueAndPending := []model.Task{
		task("1", "Stretch", &model.TimeOfDay{Hour: 7}),
		task("2", "Read", nil),
	}
	onlyPending := []model.Task{
		task("2", "Read", nil),
		task("3", "Walk", &model.TimeOfDay{Hour: 20}),
	}

	tests := map[string]struct {
		tasks      []model.Task
		completed  []string
		settings   model.Settings
		state      model.ThrottleState
		now        time.Time
		expNil     bool
		expCat     model.ReminderCategory
		expMessage model.Message
	}{
		"Overdue tasks should produce an overdue reminder": {
			tasks:    overdueAndPending,
			settings: enabled(),
			now:      at(9, 0),
			expCat:   model.ReminderCategoryOverdue,
			expMessage: model.Message{
				Title: "⚠️ 1 overdue task!",
				Body:  "Stretch",
				Tag:   reminder.TagOverdue,
			},
		},
		"Throttled overdue should not fall back to pending": {
			tasks:    overdueAndPending,
			settings: enabled(),
			state:    model.ThrottleState{LastOverdueReminderAt: ptr(at(8, 50))},
			now:      at(9, 0),
			expNil:   true,
		},
		"Only pending tasks should produce a pending reminder": {
			tasks:    onlyPending,
			settings: enabled(),
			state:    model.ThrottleState{LastOverdueReminderAt: ptr(at(8, 59))},
			now:      at(9, 0),
			expCat:   model.ReminderCategoryPending,
			expMessage: model.Message{
				Title: "📋 2 tasks pending",
				Body:  "Read, Walk",
				Tag:   reminder.TagPending,
			},
		},
		"Nothing pending should not produce a reminder": {
			tasks:     onlyPending,
			completed: []string{"2", "3"},
			settings:  enabled(),
			now:       at(9, 0),
			expNil:    true,
		},
		"Outside active hours should not produce a reminder": {
			tasks:    overdueAndPending,
			settings: enabled(),
			now:      at(23, 0),
			expNil:   true,
		},
		"Disabled notifications should not produce a reminder": {
			tasks:    overdueAndPending,
			settings: model.DefaultSettings(),
			now:      at(9, 0),
			expNil:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			day := agenda.Build(test.tasks, model.NewCompletionRecord("u1", today, test.completed...), test.now)

			got := reminder.DefaultPlanner.Plan(day, test.settings, test.state, test.now)

			if test.expNil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, test.expCat, got.Category)
			assert.Equal(t, test.expMessage, got.Message)
			assert.Equal(t, test.now, got.At)
		})
	}
}

func TestPlanActiveHoursWithManyOverdue(t *testing.T) {
	tasks := []model.Task{}
	for i := range 20 {
		tasks = append(tasks, task(string(rune('a'+i)), "Task", &model.TimeOfDay{Hour: 1}))
	}

	now := at(23, 0)
	day := agenda.Build(tasks, model.NewCompletionRecord("u1", today), now)
	require.Len(t, day.Overdue, 20)

	assert.Nil(t, reminder.DefaultPlanner.Plan(day, enabled(), model.ThrottleState{}, now))
}

func TestReminderCommit(t *testing.T) {
	r := reminder.Reminder{Category: model.ReminderCategoryPending, At: at(10, 0)}
	state := model.ThrottleState{LastOverdueReminderAt: ptr(at(8, 0)), Version: 2}

	got := r.Commit(state)

	assert.Equal(t, ptr(at(10, 0)), got.LastPendingReminderAt)
	assert.Equal(t, ptr(at(8, 0)), got.LastOverdueReminderAt)
	assert.Equal(t, 2, got.Version)
	assert.Nil(t, state.LastPendingReminderAt)
}

func TestListNames(t *testing.T) {
	mk := func(names ...string) []model.Task {
		ts := []model.Task{}
		for _, n := range names {
			ts = append(ts, model.Task{Name: n})
		}
		return ts
	}

	tests := map[string]struct {
		tasks   []model.Task
		expBody string
	}{
		"No tasks should be empty": {
			tasks:   mk(),
			expBody: "",
		},
		"Up to three tasks should be listed": {
			tasks:   mk("A", "B", "C"),
			expBody: "A, B, C",
		},
		"More than three tasks should be elided": {
			tasks:   mk("A", "B", "C", "D", "E"),
			expBody: "A, B, C +2 more",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expBody, reminder.ListNames(test.tasks, reminder.MaxListedTasks))
		})
	}
}

func TestComposePlural(t *testing.T) {
	tasks := []model.Task{{Name: "A"}, {Name: "B"}}

	assert.Equal(t, "⚠️ 2 overdue tasks!", reminder.Compose(model.ReminderCategoryOverdue, tasks).Title)
	assert.Equal(t, "📋 1 task pending", reminder.Compose(model.ReminderCategoryPending, tasks[:1]).Title)
}
