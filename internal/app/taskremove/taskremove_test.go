package taskremove_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/app/taskremove"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage/memory"
)

func TestService_Run(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	today := model.DateOf(now)

	tests := map[string]struct {
		completed    []string
		id           string
		expErr       error
		expCompleted []string
	}{
		"Removing a completed task should unmark it from today.": {
			completed:    []string{"t1", "t2"},
			id:           "t1",
			expCompleted: []string{"t2"},
		},

		"Removing a pending task should keep today's record.": {
			completed:    []string{"t2"},
			id:           "t1",
			expCompleted: []string{"t2"},
		},

		"Removing a missing task should fail.": {
			completed:    []string{"t2"},
			id:           "t9",
			expErr:       model.ErrNotFound,
			expCompleted: []string{"t2"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(err)
			require.NoError(repo.CreateTask(ctx, model.Task{ID: "t1", UserID: "u1", Name: "A", Schedule: model.NewDailySchedule()}))
			require.NoError(repo.CreateTask(ctx, model.Task{ID: "t2", UserID: "u1", Name: "B", Schedule: model.NewDailySchedule()}))
			require.NoError(repo.SaveCompletion(ctx, model.NewCompletionRecord("u1", today, test.completed...)))

			svc, err := taskremove.NewService(taskremove.ServiceConfig{Repository: repo, Location: time.UTC, Now: func() time.Time { return now }})
			require.NoError(err)

			_, err = svc.Run(ctx, taskremove.Request{UserID: "u1", ID: test.id})
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else {
				require.NoError(err)
				_, err = repo.GetTask(ctx, "u1", test.id)
				assert.ErrorIs(err, model.ErrNotFound)
			}

			c, err := repo.GetCompletion(ctx, "u1", today)
			require.NoError(err)
			assert.Equal(test.expCompleted, c.IDs())
		})
	}
}
