package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskKind is the kind of schedule a task follows.
type TaskKind string

const (
	TaskKindDaily  TaskKind = "daily"
	TaskKindOneOff TaskKind = "oneoff"
)

// DailySchedule is a task that recurs every day.
type DailySchedule struct{}

// OneOffSchedule is a task that happens once on a date.
type OneOffSchedule struct {
	Date Date
}

// Schedule holds exactly one of the schedule variants.
type Schedule struct {
	Daily  *DailySchedule
	OneOff *OneOffSchedule
}

// NewDailySchedule returns a recurring daily schedule.
func NewDailySchedule() Schedule {
	return Schedule{Daily: &DailySchedule{}}
}

// NewOneOffSchedule returns a one-off schedule on a date.
func NewOneOffSchedule(d Date) Schedule {
	return Schedule{OneOff: &OneOffSchedule{Date: d}}
}

// Kind returns the kind of the schedule.
func (s Schedule) Kind() TaskKind {
	if s.OneOff != nil {
		return TaskKindOneOff
	}
	return TaskKindDaily
}

// Validate ensures exactly one variant is set.
func (s Schedule) Validate() error {
	switch {
	case s.Daily != nil && s.OneOff != nil:
		return fmt.Errorf("only one schedule kind can be set: %w", ErrNotValid)
	case s.Daily == nil && s.OneOff == nil:
		return fmt.Errorf("a schedule kind is required: %w", ErrNotValid)
	case s.OneOff != nil && s.OneOff.Date.IsZero():
		return fmt.Errorf("one-off schedule requires a date: %w", ErrNotValid)
	}
	return nil
}

// Task is a user task.
type Task struct {
	ID       string
	UserID   string
	Name     string
	Schedule Schedule
	// Time is the optional scheduled time of day.
	Time      *TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind returns the task schedule kind.
func (t Task) Kind() TaskKind { return t.Schedule.Kind() }

// Validate validates the task.
func (t *Task) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("task name is required: %w", ErrNotValid)
	}
	if t.UserID == "" {
		return fmt.Errorf("task user is required: %w", ErrNotValid)
	}
	if err := t.Schedule.Validate(); err != nil {
		return err
	}
	if t.Time != nil {
		if err := t.Time.Validate(); err != nil {
			return err
		}
	}
	return nil
}
