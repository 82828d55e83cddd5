package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/taskremove"
)

type TaskRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewTaskRmCommand returns the task rm command.
func NewTaskRmCommand(rootCmd *RootCommand, taskCmd *kingpin.CmdClause) *TaskRmCommand {
	c := &TaskRmCommand{rootCmd: rootCmd}

	c.Cmd = taskCmd.Command("rm", "Remove a task.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)

	return c
}

func (c TaskRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskRmCommand) Run(ctx context.Context) error {
	loc, err := c.rootCmd.location()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := taskremove.NewService(taskremove.ServiceConfig{
		Repository: repo,
		Location:   loc,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	task, err := svc.Run(ctx, taskremove.Request{UserID: c.rootCmd.UserID, ID: c.id})
	if err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}

	return c.rootCmd.printer(formatTable).PrintMessage(fmt.Sprintf("Task %q removed", task.Name))
}
