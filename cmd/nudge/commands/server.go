package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gin-gonic/gin"
	"github.com/oklog/run"

	"github.com/slok/nudge/internal/api"
	"github.com/slok/nudge/internal/app/sweep"
	"github.com/slok/nudge/internal/app/testnotify"
	"github.com/slok/nudge/internal/conventions"
	"github.com/slok/nudge/internal/scheduler"
)

type ServerCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	flags         sweepFlags
	listenAddress string
	interval      time.Duration
	runOnStart    bool
	noAPI         bool
}

// NewServerCommand returns the server command.
func NewServerCommand(rootCmd *RootCommand, app *kingpin.Application) *ServerCommand {
	c := &ServerCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("server", "Run the periodic reminder sweep and the HTTP API.")
	c.flags.register(c.Cmd)
	c.Cmd.Flag("listen", "HTTP API listen address.").Default(conventions.DefaultListenAddress).StringVar(&c.listenAddress)
	c.Cmd.Flag("sweep-interval", "Period of the reminder sweep.").Default(conventions.DefaultSweepInterval.String()).DurationVar(&c.interval)
	c.Cmd.Flag("run-on-start", "Run a sweep as soon as the server starts.").BoolVar(&c.runOnStart)
	c.Cmd.Flag("no-api", "Disable the HTTP API.").BoolVar(&c.noAPI)

	return c
}

func (c ServerCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServerCommand) Run(ctx context.Context) error {
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

	pusher, err := c.flags.push.newPusher(ctx, logger)
	if err != nil {
		return err
	}

	sweepSvc, err := c.flags.newService(c.rootCmd, repo, pusher)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Period:     c.interval,
		Location:   loc,
		RunOnStart: c.runOnStart,
		Job: func(ctx context.Context, now time.Time) error {
			_, err := sweepSvc.Run(ctx, sweep.Request{Now: now})
			return err
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create scheduler: %w", err)
	}

	var g run.Group

	// Sweep scheduler.
	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return sched.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// HTTP API.
	if !c.noAPI {
		testNotifySvc, err := testnotify.NewService(testnotify.ServiceConfig{
			Repository: repo,
			Pusher:     pusher,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("could not create test notification service: %w", err)
		}

		if !c.rootCmd.Debug {
			gin.SetMode(gin.ReleaseMode)
		}

		handler, err := api.NewHandler(api.HandlerConfig{
			TestNotifier: testNotifySvc,
			Logger:       logger,
		})
		if err != nil {
			return fmt.Errorf("could not create http handler: %w", err)
		}

		server, err := api.NewServer(api.ServerConfig{
			Handler:       handler,
			ListenAddress: c.listenAddress,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("could not create http server: %w", err)
		}

		ctx, cancel := context.WithCancel(ctx)
		g.Add(
			func() error {
				return server.Run(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}
