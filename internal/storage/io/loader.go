package io

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/nudge/internal/model"
)

// TaskYAMLRepository loads task definitions from YAML files.
type TaskYAMLRepository struct {
	fs fs.FS
}

// NewTaskYAMLRepository creates a new YAML task repository.
func NewTaskYAMLRepository(filesystem fs.FS) *TaskYAMLRepository {
	return &TaskYAMLRepository{fs: filesystem}
}

// ListTasks loads the tasks of a YAML file and returns validated domain models.
//
// Returned tasks have no ID, user or timestamps, the importer sets them.
func (r *TaskYAMLRepository) ListTasks(ctx context.Context, path string) ([]model.Task, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading tasks file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var file TasksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	tasks := make([]model.Task, 0, len(file.Tasks))
	for i, t := range file.Tasks {
		task, err := t.toModel()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// TasksFile represents the YAML structure of a task import file.
type TasksFile struct {
	Tasks []TaskConfig `yaml:"tasks"`
}

// TaskConfig represents the YAML structure of a task.
type TaskConfig struct {
	Name   string            `yaml:"name"`
	Time   string            `yaml:"time,omitempty"`
	Daily  *DailyTaskConfig  `yaml:"daily,omitempty"`
	OneOff *OneOffTaskConfig `yaml:"oneoff,omitempty"`
}

// DailyTaskConfig represents the YAML structure of a daily schedule.
type DailyTaskConfig struct{}

// OneOffTaskConfig represents the YAML structure of a one-off schedule.
type OneOffTaskConfig struct {
	Date string `yaml:"date"`
}

func (c TaskConfig) toModel() (model.Task, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return model.Task{}, fmt.Errorf("name is required: %w", model.ErrNotValid)
	}

	// Ensure exactly one schedule is specified.
	switch {
	case c.Daily == nil && c.OneOff == nil:
		return model.Task{}, fmt.Errorf("exactly one schedule must be specified (daily or oneoff): %w", model.ErrNotValid)
	case c.Daily != nil && c.OneOff != nil:
		return model.Task{}, fmt.Errorf("only one schedule can be specified at a time: %w", model.ErrNotValid)
	}

	task := model.Task{Name: name}
	if c.Daily != nil {
		task.Schedule = model.NewDailySchedule()
	} else {
		if c.OneOff.Date == "" {
			return model.Task{}, fmt.Errorf("oneoff date is required: %w", model.ErrNotValid)
		}
		d, err := model.ParseDate(c.OneOff.Date)
		if err != nil {
			return model.Task{}, err
		}
		task.Schedule = model.NewOneOffSchedule(d)
	}

	if c.Time != "" {
		tod, err := model.ParseTimeOfDay(c.Time)
		if err != nil {
			return model.Task{}, err
		}
		task.Time = &tod
	}

	return task, nil
}
