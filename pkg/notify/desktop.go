package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultCommandTimeout bounds each notifier or player invocation.
const DefaultCommandTimeout = 10 * time.Second

// Desktop shows a system notification using the platform notifier
// (osascript on macOS, notify-send elsewhere).
type Desktop struct {
	run     Runner
	logger  *slog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// DesktopConfig configures a Desktop notifier.
type DesktopConfig struct {
	// Runner executes the notifier command. Defaults to ExecRunner.
	Runner Runner

	// Timeout bounds each invocation. Defaults to DefaultCommandTimeout.
	Timeout time.Duration

	// Logger receives delivery failures. If nil, slog.Default is used.
	Logger *slog.Logger
}

// NewDesktop creates a desktop notifier.
func NewDesktop(cfg DesktopConfig) *Desktop {
	d := &Desktop{
		run:     cfg.Runner,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
	}
	if d.run == nil {
		d.run = ExecRunner
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.timeout <= 0 {
		d.timeout = DefaultCommandTimeout
	}
	return d
}

// Notify starts the notifier in the background and returns immediately.
func (d *Desktop) Notify(name string) {
	title, body := Content(name)
	cmd, args := notificationCommand(title, body)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.run(ctx, cmd, args...); err != nil {
			d.logger.Warn("failed to show notification", "title", title, "error", err)
		}
	}()
}

// Wait blocks until every started notification has finished.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

// Compile-time interface satisfaction check.
var _ Service = (*Desktop)(nil)
