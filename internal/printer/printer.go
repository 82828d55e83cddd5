package printer

import (
	"time"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/app/sweep"
	"github.com/slok/nudge/internal/model"
)

// Today is the agenda of the day with the user streak.
type Today struct {
	Agenda agenda.Agenda
	Streak model.StreakState
	Now    time.Time
}

// Printer knows how to print nudge information in different formats.
type Printer interface {
	PrintToday(today Today) error
	PrintTasks(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintSettings(settings model.Settings) error
	PrintToken(token model.DeliveryToken) error
	PrintSweepResult(res sweep.Result) error
	PrintMessage(msg string) error
}
