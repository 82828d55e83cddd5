package model

import "time"

// ReminderCategory is the kind of reminder, only one category fires per evaluation.
type ReminderCategory string

const (
	ReminderCategoryOverdue ReminderCategory = "overdue"
	ReminderCategoryPending ReminderCategory = "pending"
)

// ThrottleChannel identifies who owns a throttle state.
type ThrottleChannel string

const (
	// ThrottleChannelPush is the state owned by the server sweep.
	ThrottleChannelPush ThrottleChannel = "push"
	// ThrottleChannelLocal is the state owned by the local tick loop.
	ThrottleChannelLocal ThrottleChannel = "local"
	// ThrottleChannelShared is a single state used by both contexts.
	ThrottleChannelShared ThrottleChannel = "shared"
)

// ThrottleState holds when each reminder category was last delivered.
type ThrottleState struct {
	LastOverdueReminderAt *time.Time
	LastPendingReminderAt *time.Time
	// Version is the stored version this state was read at, used for optimistic writes.
	Version int
}

// LastFired returns the last delivery time of a category.
func (s ThrottleState) LastFired(cat ReminderCategory) *time.Time {
	if cat == ReminderCategoryOverdue {
		return s.LastOverdueReminderAt
	}
	return s.LastPendingReminderAt
}

// WithFired returns a copy of the state with the category marked as delivered at t.
func (s ThrottleState) WithFired(cat ReminderCategory, t time.Time) ThrottleState {
	if cat == ReminderCategoryOverdue {
		s.LastOverdueReminderAt = &t
	} else {
		s.LastPendingReminderAt = &t
	}
	return s
}

// Message is a notification ready to be delivered.
type Message struct {
	Title string
	Body  string
	// Tag lets the delivery layer coalesce equivalent notifications.
	Tag string
}
