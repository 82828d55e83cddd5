package model

import "fmt"

// Settings are the user reminder preferences.
type Settings struct {
	ReminderIntervalMinutes int
	ActiveHoursOnly         bool
	AggressiveMode          bool
	NotificationsEnabled    bool
}

// DefaultSettings returns the settings used when a user has none stored.
func DefaultSettings() Settings {
	return Settings{
		ReminderIntervalMinutes: 30,
		ActiveHoursOnly:         true,
		AggressiveMode:          false,
		NotificationsEnabled:    false,
	}
}

// Validate validates the settings.
func (s Settings) Validate() error {
	if s.ReminderIntervalMinutes <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %d: %w", s.ReminderIntervalMinutes, ErrNotValid)
	}
	return nil
}
