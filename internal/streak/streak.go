// Package streak keeps the consecutive completed days counter of a user.
package streak

import (
	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/model"
)

// Evaluate applies the streak transitions for today and returns the new state and
// whether it changed.
//
// Decay is always evaluated before advance, a streak with a gap is reset to zero
// before the completion of today is counted.
func Evaluate(state model.StreakState, day agenda.Agenda) (model.StreakState, bool) {
	today := day.Today
	next := state

	// Decay.
	if !isRecent(next.LastCompletedDate, today) && next.Count != 0 {
		next.Count = 0
	}

	// Advance, only once per date.
	if day.AllDone() && (next.LastCompletedDate == nil || *next.LastCompletedDate != today) {
		next.Count++
		d := today
		next.LastCompletedDate = &d
	}

	return next, !equal(state, next)
}

func isRecent(last *model.Date, today model.Date) bool {
	if last == nil {
		return false
	}
	return *last == today || *last == today.AddDays(-1)
}

func equal(a, b model.StreakState) bool {
	if a.Count != b.Count {
		return false
	}
	switch {
	case a.LastCompletedDate == nil && b.LastCompletedDate == nil:
		return true
	case a.LastCompletedDate == nil || b.LastCompletedDate == nil:
		return false
	default:
		return *a.LastCompletedDate == *b.LastCompletedDate
	}
}
