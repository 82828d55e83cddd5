package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/slok/nudge/internal/model"
)

const taskColumns = `id, user_id, name, kind, date, time, created_at, updated_at`

// CreateTask stores a new task.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	if err := t.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid task schedule: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if err := r.ensureUser(ctx, tx, t.UserID); err != nil {
		return err
	}

	date, tod := taskColumnsFromModel(t)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID,
		t.UserID,
		t.Name,
		string(t.Kind()),
		date,
		tod,
		t.CreatedAt.Unix(),
		t.UpdatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tasks.") {
			return fmt.Errorf("task already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.ID)
	return nil
}

// GetTask retrieves a user task by ID.
func (r *Repository) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &t, nil
}

// ListTasks returns the user tasks in creation order.
func (r *Repository) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	if err := t.Schedule.Validate(); err != nil {
		return fmt.Errorf("invalid task schedule: %w", err)
	}

	date, tod := taskColumnsFromModel(t)
	result, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET
			name = ?,
			kind = ?,
			date = ?,
			time = ?,
			updated_at = ?
		WHERE user_id = ? AND id = ?
	`,
		t.Name,
		string(t.Kind()),
		date,
		tod,
		t.UpdatedAt.Unix(),
		t.UserID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", t.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated task in repository: %s", t.ID)
	return nil
}

// DeleteTask deletes a user task.
func (r *Repository) DeleteTask(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted task from repository: %s", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var kind string
	var date, tod sql.NullString
	var createdAt, updatedAt int64

	err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&kind,
		&date,
		&tod,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	switch model.TaskKind(kind) {
	case model.TaskKindDaily:
		t.Schedule = model.NewDailySchedule()
	case model.TaskKindOneOff:
		if !date.Valid {
			return model.Task{}, fmt.Errorf("one-off task %s without date: %w", t.ID, model.ErrNotValid)
		}
		d, err := model.ParseDate(date.String)
		if err != nil {
			return model.Task{}, err
		}
		t.Schedule = model.NewOneOffSchedule(d)
	default:
		return model.Task{}, fmt.Errorf("unknown task kind %q: %w", kind, model.ErrNotValid)
	}

	if tod.Valid {
		parsed, err := model.ParseTimeOfDay(tod.String)
		if err != nil {
			return model.Task{}, err
		}
		t.Time = &parsed
	}

	t.CreatedAt = timeFromUnix(createdAt)
	t.UpdatedAt = timeFromUnix(updatedAt)

	return t, nil
}

func taskColumnsFromModel(t model.Task) (date, tod *string) {
	if t.Schedule.OneOff != nil {
		d := t.Schedule.OneOff.Date.String()
		date = &d
	}
	if t.Time != nil {
		s := t.Time.String()
		tod = &s
	}
	return date, tod
}
