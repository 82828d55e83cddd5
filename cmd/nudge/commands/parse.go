package commands

import (
	"fmt"

	"github.com/slok/nudge/internal/model"
)

// parseSchedule returns a daily schedule when date is empty, a one-off on date otherwise.
func parseSchedule(date string) (model.Schedule, error) {
	if date == "" {
		return model.NewDailySchedule(), nil
	}

	d, err := model.ParseDate(date)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("invalid date: %w", err)
	}

	return model.NewOneOffSchedule(d), nil
}

// parseTime returns nil when value is empty.
func parseTime(value string) (*model.TimeOfDay, error) {
	if value == "" {
		return nil, nil
	}

	t, err := model.ParseTimeOfDay(value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
