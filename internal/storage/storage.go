package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/nudge/internal/model"
)

// Repository is the task store used by every use case.
//
// Getters of day to day state (completion, throttle and streak) return a zero value
// when nothing is stored, while settings, tasks and tokens return model.ErrNotFound.
// Write methods register the user if it's the first time it's seen.
type Repository interface {
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateTask(ctx context.Context, t model.Task) error
	GetTask(ctx context.Context, userID, id string) (*model.Task, error)
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, userID, id string) error

	GetCompletion(ctx context.Context, userID string, date model.Date) (*model.CompletionRecord, error)
	SaveCompletion(ctx context.Context, c model.CompletionRecord) error

	GetSettings(ctx context.Context, userID string) (*model.Settings, error)
	SaveSettings(ctx context.Context, userID string, s model.Settings) error

	GetThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel) (*model.ThrottleState, error)
	// SaveThrottleState stores the state only if the stored version still matches s.Version,
	// otherwise it returns model.ErrConflict.
	SaveThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel, s model.ThrottleState) error

	GetStreak(ctx context.Context, userID string) (*model.StreakState, error)
	SaveStreak(ctx context.Context, userID string, s model.StreakState) error

	GetDeliveryToken(ctx context.Context, userID string) (*model.DeliveryToken, error)
	SaveDeliveryToken(ctx context.Context, t model.DeliveryToken) error
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name Repository

// SettingsOrDefault returns the user settings, or the default ones if the user never saved any.
func SettingsOrDefault(ctx context.Context, repo Repository, userID string) (model.Settings, error) {
	s, err := repo.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.DefaultSettings(), nil
		}
		return model.Settings{}, fmt.Errorf("could not get settings: %w", err)
	}

	return *s, nil
}
