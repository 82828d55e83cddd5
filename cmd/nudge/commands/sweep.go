package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/sweep"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
	"github.com/slok/nudge/internal/storage"
)

// sweepFlags are the flags shared by the commands that run the sweep.
type sweepFlags struct {
	push                  pushFlags
	concurrency           int
	sharedThrottle        bool
	disableRejectedTokens bool
}

func (s *sweepFlags) register(cmd *kingpin.CmdClause) {
	s.push.register(cmd)
	cmd.Flag("sweep-concurrency", "Users evaluated at the same time.").Default(fmt.Sprint(conventions.DefaultSweepConcurrency)).IntVar(&s.concurrency)
	cmd.Flag("shared-throttle", "Share the throttle state with the local watch loop.").BoolVar(&s.sharedThrottle)
	cmd.Flag("disable-rejected-tokens", "Disable the delivery tokens the push service rejects.").BoolVar(&s.disableRejectedTokens)
}

func (s sweepFlags) newService(rootCmd *RootCommand, repo storage.Repository, pusher notify.Pusher) (*sweep.Service, error) {
	loc, err := rootCmd.location()
	if err != nil {
		return nil, err
	}

	channel := model.ThrottleChannelPush
	if s.sharedThrottle {
		channel = model.ThrottleChannelShared
	}

	svc, err := sweep.NewService(sweep.ServiceConfig{
		Repository:            repo,
		Pusher:                pusher,
		Channel:               channel,
		Location:              loc,
		Concurrency:           s.concurrency,
		DisableRejectedTokens: s.disableRejectedTokens,
		Logger:                rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create sweep service: %w", err)
	}

	return svc, nil
}

type SweepCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flags  sweepFlags
	format string
}

// NewSweepCommand returns the sweep command.
func NewSweepCommand(rootCmd *RootCommand, app *kingpin.Application) *SweepCommand {
	c := &SweepCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("sweep", "Evaluate all users once and push the due reminders (cron friendly).")
	c.flags.register(c.Cmd)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SweepCommand) Name() string { return c.Cmd.FullCommand() }

func (c SweepCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	pusher, err := c.flags.push.newPusher(ctx, c.rootCmd.Logger)
	if err != nil {
		return err
	}

	svc, err := c.flags.newService(c.rootCmd, repo, pusher)
	if err != nil {
		return err
	}

	res, err := svc.Run(ctx, sweep.Request{})
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintSweepResult(*res)
}
