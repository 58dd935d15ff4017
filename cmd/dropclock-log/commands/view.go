// Package commands implements the dropclock-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dropclock/dropclock-go/pkg/log"
	"github.com/dropclock/dropclock-go/pkg/quantize"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	TimerID      string
	Kind         *log.Kind
	FailuresOnly bool
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		TimerID:      f.TimerID,
		Kind:         f.Kind,
		FailuresOnly: f.FailuresOnly,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [timer:id] KIND
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [timer:%s] %s\n", ts, shortenID(event.TimerID), event.Kind)

	if event.Name != "" {
		fmt.Fprintf(w, "  Name: %s\n", event.Name)
	}
	if event.Duration > 0 {
		seconds := int(event.Duration / time.Second)
		fmt.Fprintf(w, "  Duration: %s\n", quantize.FormatDisplay(seconds, false))
		if !event.StartTime.IsZero() {
			fmt.Fprintf(w, "  Due: %s\n", event.EndTime().UTC().Format(time.RFC3339))
		}
	}
	if event.ReminderID != "" {
		fmt.Fprintf(w, "  Reminder: %s\n", event.ReminderID)
	}
	if event.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", event.Reason)
	}
	if event.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of a timer ID.
func shortenID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseKindFlag parses an event kind from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (log.Kind, error) {
	k, err := log.ParseKind(s)
	if err != nil {
		return 0, fmt.Errorf("invalid kind: %s (must be one of %s)", s, kindList())
	}
	return k, nil
}

func kindList() string {
	var names []string
	for k := log.KindCreated; k <= log.KindPersistFailed; k++ {
		names = append(names, strings.ToLower(k.String()))
	}
	return strings.Join(names, ", ")
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
