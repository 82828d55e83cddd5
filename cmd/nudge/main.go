package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/slok/nudge/cmd/nudge/commands"
	"github.com/slok/nudge/internal/log"
	loglogrus "github.com/slok/nudge/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("nudge", "Task reminders that keep nudging until you are done.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	todayCmd := commands.NewTodayCommand(rootCmd, app)
	doneCmd := commands.NewDoneCommand(rootCmd, app)
	settingsCmd := commands.NewSettingsCommand(rootCmd, app)
	sweepCmd := commands.NewSweepCommand(rootCmd, app)
	serverCmd := commands.NewServerCommand(rootCmd, app)
	watchCmd := commands.NewWatchCommand(rootCmd, app)
	testNotifyCmd := commands.NewTestNotifyCommand(rootCmd, app)

	// Task subcommands share a parent command.
	taskCmd := commands.NewTaskCommand(app)
	taskAddCmd := commands.NewTaskAddCommand(rootCmd, taskCmd)
	taskListCmd := commands.NewTaskListCommand(rootCmd, taskCmd)
	taskEditCmd := commands.NewTaskEditCommand(rootCmd, taskCmd)
	taskRmCmd := commands.NewTaskRmCommand(rootCmd, taskCmd)
	taskImportCmd := commands.NewTaskImportCommand(rootCmd, taskCmd)

	// Token subcommands share a parent command.
	tokenCmd := commands.NewTokenCommand(app)
	tokenSetCmd := commands.NewTokenSetCommand(rootCmd, tokenCmd)
	tokenDisableCmd := commands.NewTokenDisableCommand(rootCmd, tokenCmd)

	cmds := map[string]commands.Command{
		todayCmd.Name():        todayCmd,
		doneCmd.Name():         doneCmd,
		settingsCmd.Name():     settingsCmd,
		sweepCmd.Name():        sweepCmd,
		serverCmd.Name():       serverCmd,
		watchCmd.Name():        watchCmd,
		testNotifyCmd.Name():   testNotifyCmd,
		taskAddCmd.Name():      taskAddCmd,
		taskListCmd.Name():     taskListCmd,
		taskEditCmd.Name():     taskEditCmd,
		taskRmCmd.Name():       taskRmCmd,
		taskImportCmd.Name():   taskImportCmd,
		tokenSetCmd.Name():     tokenSetCmd,
		tokenDisableCmd.Name(): tokenDisableCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Commands that print structured output don't log unless debug is enabled.
	printerCommands := map[string]bool{
		"today":       true,
		"done":        true,
		"settings":    true,
		"task list":   true,
		"task add":    true,
		"task edit":   true,
		"task import": true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(*rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
