package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Service delivers a "timer finished" notification.
type Service interface {
	// Notify reports that the named timer finished. An empty name means the
	// timer had no user-supplied label.
	Notify(name string)
}

// Content returns the notification title and body for a timer name.
func Content(name string) (title, body string) {
	if name == "" {
		return "Timer up", "Your timer has finished!"
	}
	return name, fmt.Sprintf("Your timer %q has finished!", name)
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command with os/exec and waits for it to exit.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", name, err, out)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Log writes notifications to a slog.Logger.
type Log struct {
	Logger *slog.Logger
}

// Notify logs the notification at Info level.
func (l Log) Notify(name string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	title, body := Content(name)
	logger.Info("timer finished", "title", title, "body", body)
}

// Multi sends every notification to all services in order.
type Multi []Service

// Notify forwards to each service.
func (m Multi) Notify(name string) {
	for _, s := range m {
		s.Notify(name)
	}
}

// Func adapts a function to Service.
type Func func(name string)

// Notify calls f(name).
func (f Func) Notify(name string) {
	f(name)
}

// Compile-time interface satisfaction checks.
var (
	_ Service = Log{}
	_ Service = Multi(nil)
	_ Service = Func(nil)
)
