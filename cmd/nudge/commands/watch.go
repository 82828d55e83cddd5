package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/watch"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify/terminal"
)

type WatchCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	bell           bool
	sharedThrottle bool
	period         time.Duration
}

// NewWatchCommand returns the watch command.
func NewWatchCommand(rootCmd *RootCommand, app *kingpin.Application) *WatchCommand {
	c := &WatchCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("watch", "Keep running and show the reminders of the user on this terminal.")
	c.Cmd.Flag("bell", "Ring the terminal bell on every reminder.").BoolVar(&c.bell)
	c.Cmd.Flag("shared-throttle", "Share the throttle state with the server sweep.").BoolVar(&c.sharedThrottle)
	c.Cmd.Flag("period", "Time between evaluations.").Default(conventions.LocalTickPeriod.String()).Hidden().DurationVar(&c.period)

	return c
}

func (c WatchCommand) Name() string { return c.Cmd.FullCommand() }

func (c WatchCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	loc, err := c.rootCmd.location()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	displayer, err := terminal.NewDisplayer(terminal.DisplayerConfig{
		Out:    c.rootCmd.Stdout,
		Bell:   c.bell,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create displayer: %w", err)
	}

	channel := model.ThrottleChannelLocal
	if c.sharedThrottle {
		channel = model.ThrottleChannelShared
	}

	loop, err := watch.NewLoop(watch.LoopConfig{
		Repository: repo,
		Displayer:  displayer,
		UserID:     c.rootCmd.UserID,
		Channel:    channel,
		Location:   loc,
		Period:     c.period,
		OnTick: func(r watch.TickResult) {
			logger.Debugf("Tick: %d pending, %d overdue, reminder delivered: %t", len(r.Agenda.Pending), len(r.Agenda.Overdue), r.Delivered)
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create watch loop: %w", err)
	}

	logger.Infof("Watching reminders of user %s", c.rootCmd.UserID)
	return loop.Run(ctx)
}
