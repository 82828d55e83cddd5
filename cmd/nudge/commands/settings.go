package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/app/settings"
)

type SettingsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	interval         int
	intervalSet      bool
	activeHours      bool
	activeHoursSet   bool
	aggressive       bool
	aggressiveSet    bool
	notifications    bool
	notificationsSet bool
	format           string
}

// NewSettingsCommand returns the settings command.
func NewSettingsCommand(rootCmd *RootCommand, app *kingpin.Application) *SettingsCommand {
	c := &SettingsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("settings", "Show or change the reminder settings, without flags only shows them.")
	c.Cmd.Flag("interval", "Minutes between reminders of the same kind.").IsSetByUser(&c.intervalSet).IntVar(&c.interval)
	c.Cmd.Flag("active-hours", "Only remind between 8 AM and 10 PM (--no-active-hours to disable).").IsSetByUser(&c.activeHoursSet).BoolVar(&c.activeHours)
	c.Cmd.Flag("aggressive", "Halve the interval of overdue reminders (--no-aggressive to disable).").IsSetByUser(&c.aggressiveSet).BoolVar(&c.aggressive)
	c.Cmd.Flag("notifications", "Enable reminders (--no-notifications to disable).").IsSetByUser(&c.notificationsSet).BoolVar(&c.notifications)
	formatFlag(c.Cmd, &c.format)

	return c
}

func (c SettingsCommand) Name() string { return c.Cmd.FullCommand() }

func (c SettingsCommand) Run(ctx context.Context) error {
	req := settings.Request{UserID: c.rootCmd.UserID}
	if c.intervalSet {
		req.ReminderIntervalMinutes = &c.interval
	}
	if c.activeHoursSet {
		req.ActiveHoursOnly = &c.activeHours
	}
	if c.aggressiveSet {
		req.AggressiveMode = &c.aggressive
	}
	if c.notificationsSet {
		req.NotificationsEnabled = &c.notifications
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := settings.NewService(settings.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	s, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not update settings: %w", err)
	}

	return c.rootCmd.printer(c.format).PrintSettings(*s)
}
