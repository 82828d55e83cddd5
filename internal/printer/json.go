package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/nudge/internal/app/sweep"
	"github.com/slok/nudge/internal/model"
)

// JSONPrinter prints nudge information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type taskOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Date      string    `json:"date,omitempty"`
	Time      string    `json:"time,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type todayItemOutput struct {
	taskOutput
	Completed   bool `json:"completed"`
	Overdue     bool `json:"overdue"`
	CarriedOver bool `json:"carried_over"`
}

type progressOutput struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Percent   int `json:"percent"`
}

type todayOutput struct {
	Date     string            `json:"date"`
	Status   string            `json:"status"`
	Streak   int               `json:"streak"`
	Progress progressOutput    `json:"progress"`
	Tasks    []todayItemOutput `json:"tasks"`
}

type settingsOutput struct {
	ReminderIntervalMinutes int  `json:"reminder_interval_minutes"`
	ActiveHoursOnly         bool `json:"active_hours_only"`
	AggressiveMode          bool `json:"aggressive_mode"`
	NotificationsEnabled    bool `json:"notifications_enabled"`
}

type tokenOutput struct {
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

type sweepOutput struct {
	RunID    string `json:"run_id"`
	Users    int    `json:"users"`
	Notified int    `json:"notified"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func mapTask(t model.Task) taskOutput {
	out := taskOutput{
		ID:        t.ID,
		Name:      t.Name,
		Type:      string(t.Kind()),
		CreatedAt: t.CreatedAt.UTC(),
	}
	if t.Schedule.OneOff != nil {
		out.Date = t.Schedule.OneOff.Date.String()
	}
	if t.Time != nil {
		out.Time = t.Time.String()
	}
	return out
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintToday prints the agenda of today in JSON format.
func (j *JSONPrinter) PrintToday(today Today) error {
	a := today.Agenda
	out := todayOutput{
		Date:   a.Today.String(),
		Status: a.StatusMessage(),
		Streak: today.Streak.Count,
		Progress: progressOutput{
			Total:     a.Progress.Total,
			Completed: a.Progress.Completed,
			Pending:   a.Progress.Pending,
			Percent:   a.Progress.Percent,
		},
		Tasks: make([]todayItemOutput, 0, len(a.Items)),
	}
	for _, it := range a.Items {
		out.Tasks = append(out.Tasks, todayItemOutput{
			taskOutput:  mapTask(it.Task),
			Completed:   it.Completed,
			Overdue:     it.Overdue,
			CarriedOver: it.CarriedOver,
		})
	}

	return j.encode(out)
}

// PrintTasks prints the tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	items := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		items[i] = mapTask(t)
	}
	return j.encode(items)
}

// PrintTask prints a single task in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(mapTask(task))
}

// PrintSettings prints the reminder settings in JSON format.
func (j *JSONPrinter) PrintSettings(s model.Settings) error {
	return j.encode(settingsOutput{
		ReminderIntervalMinutes: s.ReminderIntervalMinutes,
		ActiveHoursOnly:         s.ActiveHoursOnly,
		AggressiveMode:          s.AggressiveMode,
		NotificationsEnabled:    s.NotificationsEnabled,
	})
}

// PrintToken prints the delivery token state in JSON format, the token value is never printed.
func (j *JSONPrinter) PrintToken(token model.DeliveryToken) error {
	return j.encode(tokenOutput{Enabled: token.Usable(), UpdatedAt: token.UpdatedAt.UTC()})
}

// PrintSweepResult prints the sweep summary in JSON format.
func (j *JSONPrinter) PrintSweepResult(res sweep.Result) error {
	return j.encode(sweepOutput{
		RunID:    res.RunID,
		Users:    res.Users,
		Notified: res.Notified,
		Skipped:  res.Skipped,
		Failed:   res.Failed,
	})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
