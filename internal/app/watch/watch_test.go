package watch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/app/watch"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify/notifymock"
	"github.com/slok/nudge/internal/storage/memory"
	"github.com/slok/nudge/internal/storage/storagemock"
)

var t0 = time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func enabledSettings() model.Settings {
	s := model.DefaultSettings()
	s.NotificationsEnabled = true
	return s
}

func newMemoryRepo(t *testing.T, tasks ...model.Task) *memory.Repository {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	require.NoError(t, repo.SaveSettings(context.Background(), "u1", enabledSettings()))
	for _, task := range tasks {
		task.UserID = "u1"
		require.NoError(t, repo.CreateTask(context.Background(), task))
	}
	return repo
}

func TestNewLoop(t *testing.T) {
	tests := map[string]struct {
		config watch.LoopConfig
		expErr bool
	}{
		"valid config": {
			config: watch.LoopConfig{Repository: &storagemock.MockRepository{}, Displayer: &notifymock.MockDisplayer{}, UserID: "u1"},
		},
		"missing user": {
			config: watch.LoopConfig{Repository: &storagemock.MockRepository{}, Displayer: &notifymock.MockDisplayer{}},
			expErr: true,
		},
		"missing displayer": {
			config: watch.LoopConfig{Repository: &storagemock.MockRepository{}, UserID: "u1"},
			expErr: true,
		},
		"negative period": {
			config: watch.LoopConfig{Repository: &storagemock.MockRepository{}, Displayer: &notifymock.MockDisplayer{}, UserID: "u1", Period: -time.Second},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := watch.NewLoop(test.config)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoopTickThrottlesAcrossTicks(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	repo := newMemoryRepo(t, model.Task{ID: "t1", Name: "Stretch", Schedule: model.NewDailySchedule(), Time: &model.TimeOfDay{Hour: 7}})
	clk := &clock{now: t0}

	md := notifymock.NewMockDisplayer(t)
	overdueMsg := model.Message{Title: "⚠️ 1 overdue task!", Body: "Stretch", Tag: "nudge-overdue"}
	md.On("Display", mock.Anything, overdueMsg).Twice().Return(nil)

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: repo, Displayer: md, UserID: "u1", Location: time.UTC, Now: clk.Now})
	require.NoError(err)

	// Each tick is one minute apart, the 30m interval allows a reminder at 08:00 and 08:30.
	delivered := []time.Time{}
	for range 45 {
		res, err := loop.Tick(context.Background())
		require.NoError(err)
		if res.Delivered {
			delivered = append(delivered, clk.Now())
		}
		clk.Add(time.Minute)
	}

	assert.Equal([]time.Time{t0, t0.Add(30 * time.Minute)}, delivered)

	// The sweep channel is untouched.
	push, err := repo.GetThrottleState(context.Background(), "u1", model.ThrottleChannelPush)
	require.NoError(err)
	assert.Equal(model.ThrottleState{}, *push)
}

func TestLoopTickFailedDisplayKeepsState(t *testing.T) {
	repo := newMemoryRepo(t, model.Task{ID: "t1", Name: "Walk", Schedule: model.NewDailySchedule()})

	md := notifymock.NewMockDisplayer(t)
	md.On("Display", mock.Anything, mock.Anything).Once().Return(errors.New("something"))

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: repo, Displayer: md, UserID: "u1", Location: time.UTC, Now: func() time.Time { return t0 }})
	require.NoError(t, err)

	_, err = loop.Tick(context.Background())
	assert.Error(t, err)

	state, err := repo.GetThrottleState(context.Background(), "u1", model.ThrottleChannelLocal)
	require.NoError(t, err)
	assert.Equal(t, model.ThrottleState{}, *state)
}

type conflictingRepository struct {
	*memory.Repository
}

func (conflictingRepository) SaveThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel, s model.ThrottleState) error {
	return fmt.Errorf("stale version %d: %w", s.Version, model.ErrConflict)
}

func TestLoopTickConflictAfterDisplayIsDelivered(t *testing.T) {
	repo := conflictingRepository{Repository: newMemoryRepo(t, model.Task{ID: "t1", Name: "Walk", Schedule: model.NewDailySchedule()})}

	md := notifymock.NewMockDisplayer(t)
	md.On("Display", mock.Anything, mock.Anything).Once().Return(nil)

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: repo, Displayer: md, UserID: "u1", Location: time.UTC, Now: func() time.Time { return t0 }})
	require.NoError(t, err)

	res, err := loop.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Delivered)
}

func TestLoopTickKeepsCacheOnRefreshFailure(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	tasks := []model.Task{{ID: "t1", UserID: "u1", Name: "Walk", Schedule: model.NewDailySchedule()}}
	settings := enabledSettings()
	completion := model.NewCompletionRecord("u1", model.DateOf(t0))

	mr := storagemock.NewMockRepository(t)
	mr.On("ListTasks", mock.Anything, "u1").Once().Return(tasks, nil)
	mr.On("ListTasks", mock.Anything, "u1").Once().Return(nil, errors.New("something"))
	mr.On("GetSettings", mock.Anything, "u1").Once().Return(&settings, nil)
	mr.On("GetCompletion", mock.Anything, "u1", model.DateOf(t0)).Once().Return(&completion, nil)
	mr.On("GetStreak", mock.Anything, "u1").Once().Return(&model.StreakState{}, nil)
	mr.On("GetThrottleState", mock.Anything, "u1", model.ThrottleChannelLocal).Once().Return(&model.ThrottleState{}, nil)
	mr.On("SaveThrottleState", mock.Anything, "u1", model.ThrottleChannelLocal, mock.Anything).Once().Return(nil)
	mr.On("GetThrottleState", mock.Anything, "u1", model.ThrottleChannelLocal).Once().Return(&model.ThrottleState{}, nil)
	mr.On("SaveThrottleState", mock.Anything, "u1", model.ThrottleChannelLocal, mock.Anything).Once().Return(nil)

	md := notifymock.NewMockDisplayer(t)
	md.On("Display", mock.Anything, model.Message{Title: "📋 1 task pending", Body: "Walk", Tag: "nudge-pending"}).Twice().Return(nil)

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: mr, Displayer: md, UserID: "u1", Location: time.UTC, Now: func() time.Time { return t0 }})
	require.NoError(err)

	res, err := loop.Tick(context.Background())
	require.NoError(err)
	assert.True(res.Delivered)

	// Store is down, the cached tasks are used.
	res, err = loop.Tick(context.Background())
	require.NoError(err)
	assert.True(res.Delivered)
	assert.Len(res.Agenda.Pending, 1)
}

func TestLoopTickWithoutCacheFails(t *testing.T) {
	mr := storagemock.NewMockRepository(t)
	mr.On("ListTasks", mock.Anything, "u1").Once().Return(nil, errors.New("something"))

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: mr, Displayer: notifymock.NewMockDisplayer(t), UserID: "u1"})
	require.NoError(t, err)

	_, err = loop.Tick(context.Background())
	assert.Error(t, err)
}

func TestLoopTickAdvancesStreak(t *testing.T) {
	repo := newMemoryRepo(t, model.Task{ID: "t1", Name: "Walk", Schedule: model.NewDailySchedule()})
	today := model.DateOf(t0)
	require.NoError(t, repo.SaveCompletion(context.Background(), model.NewCompletionRecord("u1", today, "t1")))

	loop, err := watch.NewLoop(watch.LoopConfig{Repository: repo, Displayer: notifymock.NewMockDisplayer(t), UserID: "u1", Location: time.UTC, Now: func() time.Time { return t0 }})
	require.NoError(t, err)

	for range 3 {
		res, err := loop.Tick(context.Background())
		require.NoError(t, err)
		assert.Nil(t, res.Reminder)
		assert.Equal(t, 1, res.Streak.Count)
	}

	st, err := repo.GetStreak(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StreakState{Count: 1, LastCompletedDate: &today}, *st)
}

type countingDisplayer struct {
	mu    sync.Mutex
	count int
}

func (c *countingDisplayer) Display(ctx context.Context, msg model.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	repo := newMemoryRepo(t, model.Task{ID: "t1", Name: "Walk", Schedule: model.NewDailySchedule()})
	clk := &clock{now: t0}
	d := &countingDisplayer{}

	ticks := make(chan watch.TickResult, 100)
	loop, err := watch.NewLoop(watch.LoopConfig{
		Repository:   repo,
		Displayer:    d,
		UserID:       "u1",
		Location:     time.UTC,
		InitialDelay: time.Millisecond,
		Period:       5 * time.Millisecond,
		Now: func() time.Time {
			// Every tick is an hour later so every tick fires.
			clk.Add(time.Hour)
			return clk.Now()
		},
		OnTick: func(r watch.TickResult) { ticks <- r },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- loop.Run(ctx) }()

	// Wait for a couple of ticks.
	<-ticks
	<-ticks
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop didn't stop")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	assert.GreaterOrEqual(t, d.count, 2)
}
