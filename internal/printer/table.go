package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/slok/nudge/internal/agenda"
	"github.com/slok/nudge/internal/app/sweep"
	"github.com/slok/nudge/internal/model"
)

// TablePrinter prints nudge information in a human friendly format.
type TablePrinter struct {
	writer io.Writer
	now    func() time.Time
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, now: time.Now}
}

// PrintToday prints the agenda of today.
func (t *TablePrinter) PrintToday(today Today) error {
	a := today.Agenda
	p := a.Progress

	fmt.Fprintf(t.writer, "%s  %d/%d done (%d%%)  streak: %s\n", today.Now.Format("Monday, Jan 2"), p.Completed, p.Total, p.Percent, plural(today.Streak.Count, "day"))
	fmt.Fprintln(t.writer, a.StatusMessage())

	if len(a.Items) == 0 {
		fmt.Fprintln(t.writer, "\nNo tasks for today.")
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "\tNAME\tTIME\tTYPE\tID")
	for _, it := range a.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", itemMark(it), it.Task.Name, taskTime(it.Task), itemBadge(it), it.Task.ID)
	}

	return nil
}

func itemMark(it agenda.Item) string {
	switch {
	case it.Completed:
		return "[x]"
	case it.Overdue:
		return "[!]"
	default:
		return "[ ]"
	}
}

func itemBadge(it agenda.Item) string {
	switch {
	case it.Overdue:
		return "overdue"
	case it.CarriedOver:
		return "carried over"
	default:
		return kindName(it.Task.Kind())
	}
}

func kindName(k model.TaskKind) string {
	if k == model.TaskKindOneOff {
		return "one-time"
	}
	return "daily"
}

func taskTime(task model.Task) string {
	if task.Time == nil {
		return "-"
	}
	return FormatTimeOfDay(*task.Time)
}

func taskSchedule(task model.Task) string {
	if task.Schedule.OneOff != nil {
		return task.Schedule.OneOff.Date.String()
	}
	return "every day"
}

// PrintTasks prints all the tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tWHEN\tTIME\tCREATED")

	now := t.now()
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Name,
			kindName(task.Kind()),
			taskSchedule(task),
			taskTime(task),
			TimeAgo(task.CreatedAt, now),
		)
	}

	return nil
}

// PrintTask prints a single task.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:       %s\n", task.ID)
	fmt.Fprintf(t.writer, "Name:     %s\n", task.Name)
	fmt.Fprintf(t.writer, "Type:     %s\n", kindName(task.Kind()))
	fmt.Fprintf(t.writer, "When:     %s\n", taskSchedule(task))
	fmt.Fprintf(t.writer, "Time:     %s\n", taskTime(task))
	fmt.Fprintf(t.writer, "Created:  %s\n", FormatTimestamp(task.CreatedAt))
	return nil
}

// PrintSettings prints the reminder settings.
func (t *TablePrinter) PrintSettings(s model.Settings) error {
	fmt.Fprintf(t.writer, "Notifications:      %s\n", onOff(s.NotificationsEnabled))
	fmt.Fprintf(t.writer, "Reminder interval:  %d minutes\n", s.ReminderIntervalMinutes)
	fmt.Fprintf(t.writer, "Active hours only:  %s (8 AM - 10 PM)\n", onOff(s.ActiveHoursOnly))
	fmt.Fprintf(t.writer, "Aggressive mode:    %s\n", onOff(s.AggressiveMode))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// PrintToken prints the delivery token state, the token value is truncated.
func (t *TablePrinter) PrintToken(token model.DeliveryToken) error {
	fmt.Fprintf(t.writer, "Token:    %s\n", shortToken(token.Token))
	fmt.Fprintf(t.writer, "Enabled:  %t\n", token.Usable())
	fmt.Fprintf(t.writer, "Updated:  %s\n", FormatTimestamp(token.UpdatedAt))
	return nil
}

func shortToken(tok string) string {
	const visible = 12
	if len(tok) <= visible {
		return tok
	}
	return tok[:visible] + "..."
}

// PrintSweepResult prints the summary of a sweep run.
func (t *TablePrinter) PrintSweepResult(res sweep.Result) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "RUN\tUSERS\tNOTIFIED\tSKIPPED\tFAILED")
	fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", res.RunID, res.Users, res.Notified, res.Skipped, res.Failed)
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
