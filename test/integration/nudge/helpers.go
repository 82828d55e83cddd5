package nudge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/slok/nudge/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "nudge"
	}

	// go test runs in the package directory, relative paths would be resolved from there.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("NUDGE_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("nudge binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "NUDGE_INTEGRATION"
		envBinary     = "NUDGE_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Run executes nudge against an isolated database.
func Run(ctx context.Context, config Config, dbPath string, args ...string) (stdout, stderr []byte, err error) {
	env := []string{
		"NUDGE_DB_PATH=" + dbPath,
		"NUDGE_USER=integration",
		"NUDGE_TIMEZONE=UTC",
	}
	return testutils.RunNudge(ctx, env, config.Binary, args, true)
}
