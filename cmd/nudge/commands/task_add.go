package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/taskadd"
)

type TaskAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name   string
	date   string
	time   string
	format string
}

// NewTaskAddCommand returns the task add command.
func NewTaskAddCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskAddCommand {
	c := &TaskAddCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("add", "Add a task, daily unless a date is set.")
	c.Cmd.Arg("name", "Task name.").Required().StringVar(&c.name)
	c.Cmd.Flag("date", "Date of a one-time task (YYYY-MM-DD).").StringVar(&c.date)
	c.Cmd.Flag("time", "Time of day the task is due at (HH:MM, 24h).").StringVar(&c.time)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c TaskAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskAddCommand) Run(ctx context.Context) error {
	schedule, err := parseSchedule(c.date)
	if err != nil {
		return err
	}

	tod, err := parseTime(c.time)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := taskadd.NewService(taskadd.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskadd.Request{
		UserID:   c.rootCmd.UserID,
		Name:     c.name,
		Schedule: schedule,
		Time:     tod,
	})
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintTask(*task)
}
