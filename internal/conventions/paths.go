package conventions

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	// DefaultDataDir is the default nudge data directory name (relative to home).
	DefaultDataDir = ".nudge"
	// DBFile is the SQLite database filename inside the data directory.
	DBFile = "nudge.db"

	// DefaultUserID is the user used by the CLI when none is set.
	DefaultUserID = "local"

	// Sweep.

	// DefaultTimezone is the zone days and active hours are evaluated in, shared by every
	// command so the sweep and the local loop agree on the same day.
	DefaultTimezone = "America/Phoenix"
	// DefaultSweepInterval is the period of the server sweep.
	DefaultSweepInterval = 15 * time.Minute
	// DefaultSweepConcurrency is the number of users the sweep evaluates at the same time.
	DefaultSweepConcurrency = 4

	// Local loop.

	// LocalInitialDelay is the wait before the first local tick.
	LocalInitialDelay = 3 * time.Second
	// LocalTickPeriod is the period of the local loop.
	LocalTickPeriod = 60 * time.Second

	// HTTP API.

	// DefaultListenAddress is the default address of the HTTP API.
	DefaultListenAddress = ":8080"
	// UserHeader carries the authenticated user ID, set by the fronting auth layer.
	UserHeader = "X-Nudge-User"
)

// DefaultLocation loads the DefaultTimezone zone.
func DefaultLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("could not load default location: %w", err)
	}
	return loc, nil
}

// DBPath returns the database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}
