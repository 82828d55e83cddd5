package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/slok/nudge/internal/model"
)

// GetCompletion returns the completion record of a date, empty if nothing was completed.
func (r *Repository) GetCompletion(ctx context.Context, userID string, date model.Date) (*model.CompletionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id FROM completions WHERE user_id = ? AND date = ?`, userID, date.String())
	if err != nil {
		return nil, fmt.Errorf("could not query completions: %w", err)
	}
	defer rows.Close()

	c := model.NewCompletionRecord(userID, date)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		c.TaskIDs[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &c, nil
}

// SaveCompletion replaces the completion record of the record date.
func (r *Repository) SaveCompletion(ctx context.Context, c model.CompletionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.ensureUser(ctx, tx, c.UserID); err != nil {
		return err
	}

	date := c.Date.String()
	if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE user_id = ? AND date = ?`, c.UserID, date); err != nil {
		return fmt.Errorf("could not clear completions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO completions (user_id, date, task_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, id := range c.IDs() {
		if _, err := stmt.ExecContext(ctx, c.UserID, date, id); err != nil {
			return fmt.Errorf("could not insert completion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved %d completions for user %s on %s", c.Len(), c.UserID, date)
	return nil
}

// GetSettings returns the user settings.
func (r *Repository) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	var s model.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT reminder_interval_minutes, active_hours_only, aggressive_mode, notifications_enabled
		FROM settings
		WHERE user_id = ?
	`, userID).Scan(
		&s.ReminderIntervalMinutes,
		&s.ActiveHoursOnly,
		&s.AggressiveMode,
		&s.NotificationsEnabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings for user %s: %w", userID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query settings: %w", err)
	}

	return &s, nil
}

// SaveSettings stores the user settings.
func (r *Repository) SaveSettings(ctx context.Context, userID string, s model.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.ensureUser(ctx, tx, userID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO settings (user_id, reminder_interval_minutes, active_hours_only, aggressive_mode, notifications_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			reminder_interval_minutes = excluded.reminder_interval_minutes,
			active_hours_only = excluded.active_hours_only,
			aggressive_mode = excluded.aggressive_mode,
			notifications_enabled = excluded.notifications_enabled,
			updated_at = excluded.updated_at
	`,
		userID,
		s.ReminderIntervalMinutes,
		boolToInt(s.ActiveHoursOnly),
		boolToInt(s.AggressiveMode),
		boolToInt(s.NotificationsEnabled),
		r.now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("could not save settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved settings for user %s", userID)
	return nil
}

// GetThrottleState returns the throttle state of a channel, a zero state (version 0) if none is stored.
func (r *Repository) GetThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel) (*model.ThrottleState, error) {
	var s model.ThrottleState
	var lastOverdue, lastPending sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT last_overdue_at, last_pending_at, version
		FROM throttle_states
		WHERE user_id = ? AND channel = ?
	`, userID, string(channel)).Scan(&lastOverdue, &lastPending, &s.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.ThrottleState{}, nil
		}
		return nil, fmt.Errorf("could not query throttle state: %w", err)
	}

	s.LastOverdueReminderAt = timeFromUnixMilli(lastOverdue)
	s.LastPendingReminderAt = timeFromUnixMilli(lastPending)

	return &s, nil
}

// SaveThrottleState stores the throttle state of a channel if nobody else wrote it since it was read.
func (r *Repository) SaveThrottleState(ctx context.Context, userID string, channel model.ThrottleChannel, s model.ThrottleState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.ensureUser(ctx, tx, userID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO throttle_states (user_id, channel, last_overdue_at, last_pending_at, version)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(user_id, channel) DO UPDATE SET
			last_overdue_at = excluded.last_overdue_at,
			last_pending_at = excluded.last_pending_at,
			version = throttle_states.version + 1
		WHERE throttle_states.version = ?
	`,
		userID,
		string(channel),
		unixMilliOrNil(s.LastOverdueReminderAt),
		unixMilliOrNil(s.LastPendingReminderAt),
		s.Version,
	)
	if err != nil {
		return fmt.Errorf("could not save throttle state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("throttle state %s/%s changed since version %d: %w", userID, channel, s.Version, model.ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved %s throttle state for user %s", channel, userID)
	return nil
}

// GetStreak returns the user streak, a zero streak if none is stored.
func (r *Repository) GetStreak(ctx context.Context, userID string) (*model.StreakState, error) {
	var s model.StreakState
	var last sql.NullString

	err := r.db.QueryRowContext(ctx, `SELECT count, last_completed_date FROM streaks WHERE user_id = ?`, userID).Scan(&s.Count, &last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.StreakState{}, nil
		}
		return nil, fmt.Errorf("could not query streak: %w", err)
	}

	if last.Valid {
		d, err := model.ParseDate(last.String)
		if err != nil {
			return nil, fmt.Errorf("invalid stored streak date: %w", err)
		}
		s.LastCompletedDate = &d
	}

	return &s, nil
}

// SaveStreak stores the user streak.
func (r *Repository) SaveStreak(ctx context.Context, userID string, s model.StreakState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.ensureUser(ctx, tx, userID); err != nil {
		return err
	}

	var last *string
	if s.LastCompletedDate != nil {
		d := s.LastCompletedDate.String()
		last = &d
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO streaks (user_id, count, last_completed_date)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			count = excluded.count,
			last_completed_date = excluded.last_completed_date
	`, userID, s.Count, last)
	if err != nil {
		return fmt.Errorf("could not save streak: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// GetDeliveryToken returns the user push token.
func (r *Repository) GetDeliveryToken(ctx context.Context, userID string) (*model.DeliveryToken, error) {
	t := model.DeliveryToken{UserID: userID}
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, `SELECT token, disabled, updated_at FROM delivery_tokens WHERE user_id = ?`, userID).Scan(&t.Token, &t.Disabled, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("delivery token for user %s: %w", userID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query delivery token: %w", err)
	}
	t.UpdatedAt = timeFromUnix(updatedAt)

	return &t, nil
}

// SaveDeliveryToken stores the user push token.
func (r *Repository) SaveDeliveryToken(ctx context.Context, t model.DeliveryToken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.ensureUser(ctx, tx, t.UserID); err != nil {
		return err
	}

	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO delivery_tokens (user_id, token, disabled, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			token = excluded.token,
			disabled = excluded.disabled,
			updated_at = excluded.updated_at
	`, t.UserID, t.Token, boolToInt(t.Disabled), updatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("could not save delivery token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Saved delivery token for user %s (disabled: %t)", t.UserID, t.Disabled)
	return nil
}
