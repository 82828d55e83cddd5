package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/agenda"
	"github.com/slok/nudge/internal/printer"
)

type TodayCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTodayCommand returns the today command.
func NewTodayCommand(rootCmd *RootCommand, app *kingpin.Application) *TodayCommand {
	c := &TodayCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("today", "Show the tasks of today with progress and streak.")
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c TodayCommand) Name() string { return c.Cmd.FullCommand() }

func (c TodayCommand) Run(ctx context.Context) error {
	loc, err := c.rootCmd.location()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := agenda.NewService(agenda.ServiceConfig{
		Repository: repo,
		Location:   loc,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, agenda.Request{UserID: c.rootCmd.UserID})
	if err != nil {
		return fmt.Errorf("could not get agenda: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintToday(printer.Today{
		Agenda: resp.Agenda,
		Streak: resp.Streak,
		Now:    resp.Now,
	})
}
