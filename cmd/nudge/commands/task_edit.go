package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/taskedit"
	"github.com/slok/nudge/internal/model"
)

type TaskEditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id        string
	name      string
	daily     bool
	date      string
	time      string
	clearTime bool
	format    string
}

// NewTaskEditCommand returns the task edit command.
func NewTaskEditCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskEditCommand {
	c := &TaskEditCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("edit", "Edit a task, only the set flags are changed.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("name", "New task name.").StringVar(&c.name)
	c.Cmd.Flag("daily", "Make the task daily.").BoolVar(&c.daily)
	c.Cmd.Flag("date", "Make the task one-time on a date (YYYY-MM-DD).").StringVar(&c.date)
	c.Cmd.Flag("time", "New time of day (HH:MM, 24h).").StringVar(&c.time)
	c.Cmd.Flag("clear-time", "Remove the task time.").BoolVar(&c.clearTime)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c TaskEditCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskEditCommand) Run(ctx context.Context) error {
	req := taskedit.Request{
		UserID:    c.rootCmd.UserID,
		ID:        c.id,
		ClearTime: c.clearTime,
	}

	if c.name != "" {
		req.Name = &c.name
	}

	switch {
	case c.daily && c.date != "":
		return fmt.Errorf("daily and date flags can't be used at the same time")
	case c.daily:
		s := model.NewDailySchedule()
		req.Schedule = &s
	case c.date != "":
		s, err := parseSchedule(c.date)
		if err != nil {
			return err
		}
		req.Schedule = &s
	}

	tod, err := parseTime(c.time)
	if err != nil {
		return err
	}
	req.Time = tod

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := taskedit.NewService(taskedit.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not edit task: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintTask(*task)
}
