package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/scheduler"
)

func noopJob(context.Context, time.Time) error { return nil }

func TestNewScheduler(t *testing.T) {
	tests := map[string]struct {
		config scheduler.SchedulerConfig
		expErr bool
	}{
		"A job is required.": {
			config: scheduler.SchedulerConfig{},
			expErr: true,
		},
		"A negative period should fail.": {
			config: scheduler.SchedulerConfig{Job: noopJob, Period: -time.Minute},
			expErr: true,
		},
		"Defaults should be set.": {
			config: scheduler.SchedulerConfig{Job: noopJob},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scheduler.NewScheduler(test.config)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchedulerNext(t *testing.T) {
	phoenix, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	tests := map[string]struct {
		period time.Duration
		t      time.Time
		expT   time.Time
	}{
		"Next quarter hour on the zone wall clock.": {
			period: 15 * time.Minute,
			t:      time.Date(2024, 1, 5, 10, 7, 12, 0, phoenix),
			expT:   time.Date(2024, 1, 5, 10, 15, 0, 0, phoenix),
		},
		"A trigger instant should move to the next one.": {
			period: 15 * time.Minute,
			t:      time.Date(2024, 1, 5, 10, 15, 0, 0, phoenix),
			expT:   time.Date(2024, 1, 5, 10, 30, 0, 0, phoenix),
		},
		// 17:50 UTC is 10:50 in Phoenix.
		"Instants in other zones are converted.": {
			period: 15 * time.Minute,
			t:      time.Date(2024, 1, 5, 17, 50, 0, 0, time.UTC),
			expT:   time.Date(2024, 1, 5, 11, 0, 0, 0, phoenix),
		},
		"The last trigger of the day rolls over to midnight.": {
			period: 15 * time.Minute,
			t:      time.Date(2024, 1, 5, 23, 50, 0, 0, phoenix),
			expT:   time.Date(2024, 1, 6, 0, 0, 0, 0, phoenix),
		},
		"Periods that don't divide the day restart at midnight.": {
			period: 7 * time.Hour,
			t:      time.Date(2024, 1, 5, 22, 0, 0, 0, phoenix),
			expT:   time.Date(2024, 1, 6, 0, 0, 0, 0, phoenix),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := scheduler.NewScheduler(scheduler.SchedulerConfig{Job: noopJob, Period: test.period, Location: phoenix})
			require.NoError(t, err)

			got := s.Next(test.t)
			assert.True(t, test.expT.Equal(got), "expected %s, got %s", test.expT, got)
		})
	}
}

func TestSchedulerRun(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	triggered := make(chan time.Time, 100)

	s, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Period:     5 * time.Millisecond,
		Location:   time.UTC,
		RunOnStart: true,
		Job: func(ctx context.Context, now time.Time) error {
			mu.Lock()
			calls++
			mu.Unlock()
			triggered <- now
			// Errors don't stop the scheduler.
			return errors.New("something")
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Run(ctx) }()

	for range 3 {
		select {
		case at := <-triggered:
			assert.Equal(t, time.UTC, at.Location())
		case <-time.After(time.Second):
			t.Fatal("job wasn't triggered")
		}
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler didn't stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 3)
}
