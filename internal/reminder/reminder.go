// Package reminder turns a user agenda into the reminder that should be delivered now, if any.
//
// Both the server sweep and the local loop plan with this package so they reach the same
// verdict from the same inputs. Planning never mutates the throttle state, callers commit
// the reminder into the state only after the delivery succeeded.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/throttle"
)

const (
	// TagOverdue is the dedup tag of overdue reminders.
	TagOverdue = "nudge-overdue"
	// TagPending is the dedup tag of pending reminders.
	TagPending = "nudge-pending"
	// TagTest is the dedup tag of test notifications.
	TagTest = "nudge-test"

	// MaxListedTasks is the number of task names listed on a reminder body.
	MaxListedTasks = 3
)

// TestMessage is the fixed message used to check delivery works.
var TestMessage = model.Message{
	Title: "🎉 Test Notification",
	Body:  "Background notifications are working!",
	Tag:   TagTest,
}

// Reminder is a reminder ready to be delivered.
type Reminder struct {
	Category model.ReminderCategory
	Message  model.Message
	// Tasks are the tasks the reminder is about.
	Tasks []model.Task
	At    time.Time
}

// Commit returns the throttle state after the reminder has been delivered.
func (r Reminder) Commit(state model.ThrottleState) model.ThrottleState {
	return state.WithFired(r.Category, r.At)
}

// Planner plans reminders with a throttle policy.
type Planner struct {
	Policy throttle.Policy
}

// DefaultPlanner uses the default throttle policy.
var DefaultPlanner = Planner{Policy: throttle.DefaultPolicy}

// Plan returns the reminder that should fire at now or nil.
//
// Overdue dominates pending: when there are overdue tasks only the overdue category
// is evaluated and pending is skipped even if the overdue one is throttled.
func (p Planner) Plan(day agenda.Agenda, s model.Settings, state model.ThrottleState, now time.Time) *Reminder {
	var (
		cat   model.ReminderCategory
		tasks []model.Task
	)
	switch {
	case len(day.Overdue) > 0:
		cat, tasks = model.ReminderCategoryOverdue, day.Overdue
	case len(day.Pending) > 0:
		cat, tasks = model.ReminderCategoryPending, day.Pending
	default:
		return nil
	}

	if !p.Policy.ShouldFire(cat, s, state, now) {
		return nil
	}

	return &Reminder{
		Category: cat,
		Message:  Compose(cat, tasks),
		Tasks:    tasks,
		At:       now,
	}
}

// Compose builds the message of a category for the tasks.
func Compose(cat model.ReminderCategory, tasks []model.Task) model.Message {
	if cat == model.ReminderCategoryOverdue {
		return model.Message{
			Title: fmt.Sprintf("⚠️ %s!", agenda.Count(len(tasks), "overdue task")),
			Body:  ListNames(tasks, MaxListedTasks),
			Tag:   TagOverdue,
		}
	}

	return model.Message{
		Title: fmt.Sprintf("📋 %s pending", agenda.Count(len(tasks), "task")),
		Body:  ListNames(tasks, MaxListedTasks),
		Tag:   TagPending,
	}
}

// ListNames joins up to max task names, eliding the rest with a "+N more" suffix.
func ListNames(tasks []model.Task, max int) string {
	n := min(len(tasks), max)
	names := make([]string, 0, n)
	for _, t := range tasks[:n] {
		names = append(names, t.Name)
	}

	body := strings.Join(names, ", ")
	if rest := len(tasks) - n; rest > 0 {
		body = fmt.Sprintf("%s +%d more", body, rest)
	}

	return body
}
