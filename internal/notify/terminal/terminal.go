// Package terminal shows local notifications on a terminal.
package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/slok/nudge/internal/log"
	"github.com/slok/nudge/internal/model"
	"github.com/slok/nudge/internal/notify"
)

const bell = "\a"

// DisplayerConfig is the configuration of the terminal displayer.
type DisplayerConfig struct {
	Out io.Writer
	// Bell rings the terminal bell on every displayed message.
	Bell bool
	// Now is used to stamp the displayed messages.
	Now    func() time.Time
	Logger log.Logger
}

func (c *DisplayerConfig) defaults() error {
	if c.Out == nil {
		return fmt.Errorf("out writer is required")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "notify.Terminal"})
	return nil
}

// Displayer is a notify.Displayer that writes messages to a terminal.
//
// Concurrent displays of the same message under the same tag are coalesced into one.
type Displayer struct {
	out    io.Writer
	bell   bool
	now    func() time.Time
	logger log.Logger
	group  singleflight.Group
	mu     sync.Mutex
}

// NewDisplayer returns a new terminal displayer.
func NewDisplayer(cfg DisplayerConfig) (*Displayer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Displayer{
		out:    cfg.Out,
		bell:   cfg.Bell,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

var _ notify.Displayer = &Displayer{}

// Display writes the message to the terminal, identical messages being displayed at the
// same time are written once.
func (d *Displayer) Display(ctx context.Context, msg model.Message) error {
	key := msg.Tag + "\x00" + msg.Title + "\x00" + msg.Body
	_, err, shared := d.group.Do(key, func() (any, error) {
		return nil, d.write(msg)
	})
	if shared {
		d.logger.Debugf("Coalesced %q message", msg.Tag)
	}

	return err
}

func (d *Displayer) write(msg model.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prefix := ""
	if d.bell {
		prefix = bell
	}

	_, err := fmt.Fprintf(d.out, "%s[%s] %s\n", prefix, d.now().Format("3:04 PM"), msg.Title)
	if err != nil {
		return fmt.Errorf("could not write message: %w", err)
	}
	if msg.Body != "" {
		if _, err := fmt.Fprintf(d.out, "    %s\n", msg.Body); err != nil {
			return fmt.Errorf("could not write message: %w", err)
		}
	}

	return nil
}
