package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/taskdone"
	"github.com/slok/nudge/internal/printer"
)

type DoneCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewDoneCommand returns the done command.
func NewDoneCommand(rootCmd *RootCommand, app *kingpin.Application) *DoneCommand {
	c := &DoneCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("done", "Toggle a task as done for today.")
	c.Cmd.Arg("id", "Task ID.").Required().StringVar(&c.id)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c DoneCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoneCommand) Run(ctx context.Context) error {
	loc, err := c.rootCmd.location()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := taskdone.NewService(taskdone.ServiceConfig{
		Repository: repo,
		Location:   loc,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, taskdone.Request{UserID: c.rootCmd.UserID, ID: c.id})
	if err != nil {
		return fmt.Errorf("could not toggle task: %w", err)
	}

	p := c.rootCmd.printer(c.format)
	if c.format == formatTable {
		msg := fmt.Sprintf("%q is pending again", resp.Task.Name)
		if resp.Done {
			msg = fmt.Sprintf("%q done", resp.Task.Name)
		}
		if resp.StreakAdvanced {
			msg += fmt.Sprintf(", all done today! Streak: %d", resp.Streak.Count)
		}
		if err := p.PrintMessage(msg + "\n"); err != nil {
			return err
		}
	}

	return p.PrintToday(printer.Today{Agenda: resp.Agenda, Streak: resp.Streak, Now: time.Now().In(loc)})
}
