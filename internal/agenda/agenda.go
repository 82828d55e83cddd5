// Package agenda resolves what a user has to do on a day.
//
// Everything here is pure: the same tasks, completion record and instant always
// produce the same agenda. Nothing is cached, callers rebuild the agenda on every
// evaluation so date rollovers are picked up.
package agenda

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/slok/nudge/internal/model"
)

// DueTasks returns the tasks that belong to today's agenda, keeping the input order.
func DueTasks(tasks []model.Task, completed model.CompletionRecord, today model.Date) []model.Task {
	due := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if isDue(t, completed, today) {
			due = append(due, t)
		}
	}
	return due
}

func isDue(t model.Task, completed model.CompletionRecord, today model.Date) bool {
	switch {
	case t.Schedule.Daily != nil:
		return true
	case t.Schedule.OneOff != nil:
		date := t.Schedule.OneOff.Date
		if date == today {
			return true
		}
		// Carry-over of unfinished past one-offs.
		return date.Before(today) && !completed.Has(t.ID)
	default:
		return false
	}
}

// IsCarriedOver reports whether a task is a one-off from a previous day.
func IsCarriedOver(t model.Task, today model.Date) bool {
	return t.Schedule.OneOff != nil && t.Schedule.OneOff.Date.Before(today)
}

// IsOverdue reports whether a due task is late at now.
func IsOverdue(t model.Task, now time.Time, today model.Date) bool {
	// Without a time there is nothing to compare, these tasks are only pending.
	if t.Time == nil {
		return false
	}

	if IsCarriedOver(t, today) {
		return true
	}

	return now.After(t.Time.On(today, now.Location()))
}

// Item is a due task with its state for the day.
type Item struct {
	Task        model.Task
	Completed   bool
	Overdue     bool
	CarriedOver bool
}

// Progress is the completion progress of the day.
type Progress struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

// Agenda is the resolved state of a user day.
type Agenda struct {
	Today model.Date
	// Due are the tasks of the day in the input order.
	Due []model.Task
	// Pending are the due tasks not completed yet.
	Pending []model.Task
	// Overdue are the pending tasks that are late.
	Overdue []model.Task
	// Items are the due tasks sorted for display.
	Items    []Item
	Progress Progress
}

// Build resolves the agenda at now, today is the date of now in now's location.
func Build(tasks []model.Task, completed model.CompletionRecord, now time.Time) Agenda {
	today := model.DateOf(now)
	due := DueTasks(tasks, completed, today)

	a := Agenda{
		Today:   today,
		Due:     due,
		Pending: []model.Task{},
		Overdue: []model.Task{},
		Items:   make([]Item, 0, len(due)),
	}

	for _, t := range due {
		item := Item{
			Task:        t,
			Completed:   completed.Has(t.ID),
			CarriedOver: IsCarriedOver(t, today),
		}
		if !item.Completed {
			a.Pending = append(a.Pending, t)
			item.Overdue = IsOverdue(t, now, today)
			if item.Overdue {
				a.Overdue = append(a.Overdue, t)
			}
		}
		a.Items = append(a.Items, item)
	}

	sortItems(a.Items)
	a.Progress = progress(len(due), len(due)-len(a.Pending))

	return a
}

// AllDone reports whether there is something due and all of it is completed.
func (a Agenda) AllDone() bool {
	return len(a.Due) > 0 && len(a.Pending) == 0
}

// StatusMessage returns a short motivational line for the day.
func (a Agenda) StatusMessage() string {
	p := a.Progress
	switch {
	case len(a.Overdue) > 0:
		return fmt.Sprintf("%s! Do it now!", Count(len(a.Overdue), "overdue task"))
	case p.Total > 0 && p.Percent == 100:
		return "Amazing! You crushed it today!"
	case p.Percent >= 75:
		return "Almost there! Keep going!"
	case p.Percent >= 50:
		return "Halfway done! You got this!"
	case p.Percent >= 25:
		return fmt.Sprintf("%s waiting. Let's move!", Count(p.Pending, "task"))
	case p.Pending > 0:
		return fmt.Sprintf("%s need your attention!", Count(p.Pending, "task"))
	default:
		return "Let's crush it today!"
	}
}

// Count formats a quantity with a naive plural, `Count(2, "task")` is "2 tasks".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func progress(total, completed int) Progress {
	p := Progress{Total: total, Completed: completed, Pending: total - completed}
	if total > 0 {
		p.Percent = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	return p
}

// sortItems puts overdue first and completed last, then orders by time and name.
func sortItems(items []Item) {
	rank := func(i Item) int {
		switch {
		case i.Overdue:
			return 0
		case i.Completed:
			return 2
		default:
			return 1
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}

		// Tasks with time go before the ones without.
		switch {
		case a.Task.Time != nil && b.Task.Time == nil:
			return true
		case a.Task.Time == nil && b.Task.Time != nil:
			return false
		case a.Task.Time != nil && b.Task.Time != nil && *a.Task.Time != *b.Task.Time:
			ta, tb := *a.Task.Time, *b.Task.Time
			if ta.Hour != tb.Hour {
				return ta.Hour < tb.Hour
			}
			return ta.Minute < tb.Minute
		}

		return a.Task.Name < b.Task.Name
	})
}
