package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/notify"
	"github.com/slok/nudge/internal/notify/fcm"
	notifylogger "github.com/slok/nudge/internal/notify/logger"
)

// pushFlags are the flags of the commands that deliver push notifications.
type pushFlags struct {
	credentialsPath string
	projectID       string
}

func (p *pushFlags) register(cmd *kingpin.CmdClause) {
	cmd.Flag("fcm-credentials", "Firebase service account JSON file, without it notifications are only logged.").Envar("NUDGE_FCM_CREDENTIALS").StringVar(&p.credentialsPath)
	cmd.Flag("fcm-project", "Firebase project ID, the credentials one by default.").Envar("NUDGE_FCM_PROJECT").StringVar(&p.projectID)
}

func (p pushFlags) newPusher(ctx context.Context, logger log.Logger) (notify.Pusher, error) {
	if p.credentialsPath == "" {
		logger.Warningf("No FCM credentials set, push notifications will only be logged")
		return notifylogger.NewPusher(logger), nil
	}

	svc, projectID, err := fcm.NewServiceFromCredentials(ctx, p.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("could not create FCM client: %w", err)
	}
	if p.projectID != "" {
		projectID = p.projectID
	}

	pusher, err := fcm.NewPusher(fcm.PusherConfig{
		Service:   svc,
		ProjectID: projectID,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create FCM pusher: %w", err)
	}

	return pusher, nil
}
