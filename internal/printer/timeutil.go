package printer

import (
	"fmt"
	"time"

	"github.com/slok/nudge/internal/model"
)

// TimeAgo returns a human-readable time relative to now.
// Examples: "5 seconds ago", "2 minutes ago", "3 hours ago".
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return "in the future"
	case diff < time.Minute:
		return plural(int(diff.Seconds()), "second") + " ago"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatTimeOfDay returns the 12-hour clock form of a time of day, e.g "7:05 AM".
func FormatTimeOfDay(t model.TimeOfDay) string {
	ampm := "AM"
	if t.Hour >= 12 {
		ampm = "PM"
	}

	h := t.Hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:%02d %s", h, t.Minute, ampm)
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
