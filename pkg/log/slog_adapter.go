package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes timer events to an slog.Logger.
// Useful for development when you want to follow timers in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn level for failures.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("kind", event.Kind.String()),
		slog.String("timer_id", event.TimerID),
	}

	if event.Name != "" {
		attrs = append(attrs, slog.String("name", event.Name))
	}
	if event.Duration > 0 {
		attrs = append(attrs,
			slog.Duration("duration", event.Duration),
			slog.Time("end_time", event.EndTime()),
		)
	}
	if event.ReminderID != "" {
		attrs = append(attrs, slog.String("reminder_id", event.ReminderID))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	level := slog.LevelDebug
	if event.Kind.IsFailure() {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, "timer", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
