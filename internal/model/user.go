package model

import "time"

// User is a known user of the application.
type User struct {
	ID        string
	CreatedAt time.Time
}

// StreakState is the consecutive days streak of a user.
type StreakState struct {
	Count             int
	LastCompletedDate *Date
}

// DeliveryToken is the push token of a user device.
type DeliveryToken struct {
	UserID    string
	Token     string
	Disabled  bool
	UpdatedAt time.Time
}

// Usable reports whether push notifications can be delivered with the token.
func (t DeliveryToken) Usable() bool {
	return t.Token != "" && !t.Disabled
}
