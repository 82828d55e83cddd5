package io

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/nudge/internal/model"
)

func TestTaskYAMLRepository_ListTasks(t *testing.T) {
	tests := map[string]struct {
		fs       fstest.MapFS
		path     string
		expTasks []model.Task
		expErr   bool
		errMsg   string
	}{
		"Valid file with daily and one-off tasks should load successfully": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{
					Data: []byte(`tasks:
  - name: Stretch
    time: "07:30"
    daily: {}
  - name: "  Pay rent  "
    oneoff:
      date: 2024-01-01
`),
				},
			},
			path: "tasks.yaml",
			expTasks: []model.Task{
				{Name: "Stretch", Schedule: model.NewDailySchedule(), Time: &model.TimeOfDay{Hour: 7, Minute: 30}},
				{Name: "Pay rent", Schedule: model.NewOneOffSchedule(model.NewDate(2024, time.January, 1))},
			},
		},

		"Empty file should load no tasks": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks: []`)},
			},
			path:     "tasks.yaml",
			expTasks: []model.Task{},
		},

		"Missing file should fail": {
			fs:     fstest.MapFS{},
			path:   "missing.yaml",
			expErr: true,
			errMsg: "reading tasks file",
		},

		"Invalid YAML should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks: [`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "parsing YAML",
		},

		"Task without name should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - daily: {}
`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "name is required",
		},

		"Task without schedule should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - name: Stretch
`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "exactly one schedule must be specified",
		},

		"Task with both schedules should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - name: Stretch
    daily: {}
    oneoff:
      date: 2024-01-01
`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "only one schedule can be specified",
		},

		"One-off task without date should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - name: Pay rent
    oneoff: {}
`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "oneoff date is required",
		},

		"Task with invalid time should fail": {
			fs: fstest.MapFS{
				"tasks.yaml": &fstest.MapFile{Data: []byte(`tasks:
  - name: Stretch
    time: "25:99"
    daily: {}
`)},
			},
			path:   "tasks.yaml",
			expErr: true,
			errMsg: "invalid time of day",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo := NewTaskYAMLRepository(test.fs)
			tasks, err := repo.ListTasks(context.Background(), test.path)

			if test.expErr {
				require.Error(err)
				assert.Contains(err.Error(), test.errMsg)
				return
			}

			require.NoError(err)
			assert.Equal(test.expTasks, tasks)
		})
	}
}
