package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/token"
)

// NewTokenCommand returns the parent command of the delivery token subcommands.
func NewTokenCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("token", "Manage the push delivery token of the user device.")
}

type TokenSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	token string
}

// NewTokenSetCommand returns the token set command.
func NewTokenSetCommand(rootCmd *RootCommand, tokenCmd *kingpin.CmdClause) *TokenSetCommand {
	c := &TokenSetCommand{rootCmd: rootCmd}

	c.Cmd = tokenCmd.Command("set", "Register the FCM token of the user device.")
	c.Cmd.Arg("token", "FCM registration token.").Required().StringVar(&c.token)

	return c
}

func (c TokenSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c TokenSetCommand) Run(ctx context.Context) error {
	return runToken(ctx, c.rootCmd, token.Request{UserID: c.rootCmd.UserID, Token: c.token})
}

type TokenDisableCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewTokenDisableCommand returns the token disable command.
func NewTokenDisableCommand(rootCmd *RootCommand, tokenCmd *kingpin.CmdClause) *TokenDisableCommand {
	c := &TokenDisableCommand{rootCmd: rootCmd}

	c.Cmd = tokenCmd.Command("disable", "Stop push notifications to the registered device.")

	return c
}

func (c TokenDisableCommand) Name() string { return c.Cmd.FullCommand() }

func (c TokenDisableCommand) Run(ctx context.Context) error {
	return runToken(ctx, c.rootCmd, token.Request{UserID: c.rootCmd.UserID, Disable: true})
}

func runToken(ctx context.Context, rootCmd *RootCommand, req token.Request) error {
	repo, err := rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := token.NewService(token.ServiceConfig{
		Repository: repo,
		Logger:     rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not update delivery token: %w", err)
	}

	return rootCmd.printer(formatTable).PrintToken(*t)
}
