package taskdone_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/app/taskdone"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage/memory"
)

func TestServiceRunTogglesAndCountsStreakOnce(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	today := model.DateOf(now)
	yesterday := today.AddDays(-1)

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)
	require.NoError(repo.CreateTask(ctx, model.Task{ID: "t1", UserID: "u1", Name: "Stretch", Schedule: model.NewDailySchedule()}))
	require.NoError(repo.CreateTask(ctx, model.Task{ID: "t2", UserID: "u1", Name: "Walk", Schedule: model.NewDailySchedule(), CreatedAt: now}))
	require.NoError(repo.SaveStreak(ctx, "u1", model.StreakState{Count: 4, LastCompletedDate: &yesterday}))

	svc, err := taskdone.NewService(taskdone.ServiceConfig{Repository: repo, Location: time.UTC, Now: func() time.Time { return now }})
	require.NoError(err)

	steps := []struct {
		id          string
		expDone     bool
		expStreak   int
		expAdvanced bool
	}{
		{id: "t1", expDone: true, expStreak: 4},
		{id: "t2", expDone: true, expStreak: 5, expAdvanced: true},
		{id: "t2", expDone: false, expStreak: 5},
		{id: "t2", expDone: true, expStreak: 5},
	}

	for i, step := range steps {
		resp, err := svc.Run(ctx, taskdone.Request{UserID: "u1", ID: step.id})
		require.NoError(err)
		assert.Equal(step.expDone, resp.Done, "step %d", i)
		assert.Equal(step.expStreak, resp.Streak.Count, "step %d", i)
		assert.Equal(step.expAdvanced, resp.StreakAdvanced, "step %d", i)
	}

	c, err := repo.GetCompletion(ctx, "u1", today)
	require.NoError(err)
	assert.Equal([]string{"t1", "t2"}, c.IDs())
}

func TestServiceRunMissingTask(t *testing.T) {
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	svc, err := taskdone.NewService(taskdone.ServiceConfig{Repository: repo})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), taskdone.Request{UserID: "u1", ID: "t1"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
