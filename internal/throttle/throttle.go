// Package throttle decides if a reminder category can fire at an instant.
package throttle

import (
	"time"

	"github.com/slok/nudge/internal/model"
)

const (
	// ActiveHoursStartHour is the first local hour reminders can fire when restricted to active hours.
	ActiveHoursStartHour = 8
	// ActiveHoursEndHour is the local hour (excluded) reminders stop firing when restricted to active hours.
	ActiveHoursEndHour = 22
)

// AggressiveScope selects the categories that get the interval halved in aggressive mode.
type AggressiveScope string

const (
	// AggressiveOverdueOnly halves only the overdue category interval.
	AggressiveOverdueOnly AggressiveScope = "overdue-only"
	// AggressiveAllCategories halves every category interval.
	AggressiveAllCategories AggressiveScope = "all"
)

// Policy is the throttling policy.
type Policy struct {
	AggressiveScope AggressiveScope
}

// DefaultPolicy is the policy used by both the sweep and the local loop.
var DefaultPolicy = Policy{AggressiveScope: AggressiveOverdueOnly}

// Allowed reports whether any reminder can fire at now, now must be in the user location.
func (p Policy) Allowed(s model.Settings, now time.Time) bool {
	if !s.NotificationsEnabled {
		return false
	}

	if s.ActiveHoursOnly && !InActiveHours(now) {
		return false
	}

	return true
}

// Interval returns the minimum spacing between two reminders of a category.
func (p Policy) Interval(cat model.ReminderCategory, s model.Settings) time.Duration {
	interval := time.Duration(s.ReminderIntervalMinutes) * time.Minute
	if !s.AggressiveMode {
		return interval
	}

	if cat == model.ReminderCategoryOverdue || p.AggressiveScope == AggressiveAllCategories {
		interval /= 2
	}

	return interval
}

// ShouldFire reports whether a reminder of the category can fire at now.
func (p Policy) ShouldFire(cat model.ReminderCategory, s model.Settings, state model.ThrottleState, now time.Time) bool {
	if !p.Allowed(s, now) {
		return false
	}

	last := state.LastFired(cat)
	if last == nil {
		return true
	}

	return now.Sub(*last) >= p.Interval(cat, s)
}

// InActiveHours reports whether the local hour of now is inside the active hours window.
func InActiveHours(now time.Time) bool {
	h := now.Hour()
	return h >= ActiveHoursStartHour && h < ActiveHoursEndHour
}
