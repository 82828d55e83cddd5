// Package fcm delivers push notifications with Firebase Cloud Messaging HTTP v1 API.
package fcm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	fcmv1 "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
)

const (
	defaultIcon = "/icon-192.png"
)

var defaultVibrate = []int{200, 100, 200}

// PusherConfig is the configuration of the FCM pusher.
type PusherConfig struct {
	// Service is the FCM API client.
	Service *fcmv1.Service
	// ProjectID is the Firebase project messages are sent from.
	ProjectID string
	Logger    log.Logger
}

func (c *PusherConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("fcm service is required")
	}
	if c.ProjectID == "" {
		return fmt.Errorf("project id is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "notify.FCM"})
	return nil
}

// Pusher is a notify.Pusher backed by FCM.
type Pusher struct {
	svc    *fcmv1.Service
	parent string
	logger log.Logger
}

// NewPusher returns a new FCM pusher.
func NewPusher(cfg PusherConfig) (*Pusher, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pusher{
		svc:    cfg.Service,
		parent: "projects/" + cfg.ProjectID,
		logger: cfg.Logger,
	}, nil
}

var _ notify.Pusher = &Pusher{}

// Send sends the message to a device token.
func (p *Pusher) Send(ctx context.Context, token string, msg model.Message) error {
	if token == "" {
		return fmt.Errorf("token is required: %w", model.ErrNotValid)
	}

	webNotification, err := json.Marshal(webpushNotification{
		Icon:    defaultIcon,
		Badge:   defaultIcon,
		Tag:     msg.Tag,
		Vibrate: defaultVibrate,
	})
	if err != nil {
		return fmt.Errorf("could not marshal webpush notification: %w", err)
	}

	req := &fcmv1.SendMessageRequest{
		Message: &fcmv1.Message{
			Token: token,
			Notification: &fcmv1.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Webpush: &fcmv1.WebpushConfig{
				Notification: googleapi.RawMessage(webNotification),
			},
		},
	}

	resp, err := p.svc.Projects.Messages.Send(p.parent, req).Context(ctx).Do()
	if err != nil {
		if isTokenRejected(err) {
			return fmt.Errorf("could not send message: %w: %w", notify.ErrTokenRejected, err)
		}
		return fmt.Errorf("could not send message: %w", err)
	}

	p.logger.Debugf("Message %s sent", resp.Name)
	return nil
}

type webpushNotification struct {
	Icon    string `json:"icon,omitempty"`
	Badge   string `json:"badge,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Vibrate []int  `json:"vibrate,omitempty"`
}

// isTokenRejected reports whether FCM says the token is not registered anymore.
func isTokenRejected(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == http.StatusNotFound
}

// NewServiceFromCredentials creates an FCM API client from a service account JSON file.
//
// It also returns the project ID of the credentials, empty if the file doesn't have one.
func NewServiceFromCredentials(ctx context.Context, credentialsPath string) (*fcmv1.Service, string, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, "", fmt.Errorf("could not read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, fcmv1.FirebaseMessagingScope)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials file: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	svc, err := fcmv1.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, "", fmt.Errorf("could not create fcm service: %w", err)
	}

	return svc, creds.ProjectID, nil
}
