package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
	// Now is the clock used for bookkeeping timestamps.
	Now func() time.Time
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
	now    func() time.Time
}

// NewRepository creates a new SQLite repository, migrating the schema if required.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	// The sweep writes from several goroutines, busy timeout avoids SQLITE_BUSY on WAL checkpoints.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger, now: cfg.Now}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// ListUsers returns all the known users.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var createdAt int64
		if err := rows.Scan(&u.ID, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		u.CreatedAt = timeFromUnix(createdAt)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ensureUser registers the user if it's not known yet.
func (r *Repository) ensureUser(ctx context.Context, e execer, userID string) error {
	if userID == "" {
		return fmt.Errorf("user id is required: %w", model.ErrNotValid)
	}

	_, err := e.ExecContext(ctx, `INSERT INTO users (id, created_at) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`, userID, r.now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("could not register user: %w", err)
	}

	return nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }

func timeFromUnixMilli(ms sql.NullInt64) *time.Time {
	if !ms.Valid {
		return nil
	}
	t := time.UnixMilli(ms.Int64).UTC()
	return &t
}

func unixMilliOrNil(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
