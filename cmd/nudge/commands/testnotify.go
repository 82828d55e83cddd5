package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/testnotify"
)

type TestNotifyCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	push pushFlags
}

// NewTestNotifyCommand returns the test-notify command.
func NewTestNotifyCommand(rootCmd *RootCommand, app *kingpin.Application) *TestNotifyCommand {
	c := &TestNotifyCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("test-notify", "Send a test push notification to the user device.")
	c.push.register(c.Cmd)

	return c
}

func (c TestNotifyCommand) Name() string { return c.Cmd.FullCommand() }

func (c TestNotifyCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	pusher, err := c.push.newPusher(ctx, c.rootCmd.Logger)
	if err != nil {
		return err
	}

	svc, err := testnotify.NewService(testnotify.ServiceConfig{
		Repository: repo,
		Pusher:     pusher,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if _, err := svc.Run(ctx, testnotify.Request{UserID: c.rootCmd.UserID}); err != nil {
		return fmt.Errorf("could not send test notification: %w", err)
	}

	return c.rootCmd.printer(formatTable).PrintMessage("Test notification sent")
}
