package log

import (
	"fmt"
	"strings"
	"time"
)

// Event is one entry in the timer trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"2,keyasint"`

	// TimerID identifies the timer the event belongs to.
	TimerID string `cbor:"3,keyasint"`

	// Name is the timer's user-supplied label, if any.
	Name string `cbor:"4,keyasint,omitempty"`

	// Duration is the timer's full countdown length.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`

	// StartTime is when the timer was created.
	StartTime time.Time `cbor:"6,keyasint"`

	// ReminderID is the external reminder, for reminder events.
	ReminderID string `cbor:"7,keyasint,omitempty"`

	// Error is the failure message, for failure events.
	Error string `cbor:"8,keyasint,omitempty"`

	// Reason adds context, e.g. "overdue" for a restored timer whose
	// deadline passed while the process was not running.
	Reason string `cbor:"9,keyasint,omitempty"`
}

// EndTime returns when the timer is or was due.
func (e Event) EndTime() time.Time {
	return e.StartTime.Add(e.Duration)
}

// Kind classifies a timer event.
type Kind uint8

const (
	// KindCreated indicates a new timer was scheduled.
	KindCreated Kind = 0
	// KindCancelled indicates a timer was cancelled by the user.
	KindCancelled Kind = 1
	// KindExpired indicates a timer's countdown finished.
	KindExpired Kind = 2
	// KindRestored indicates a timer was reloaded after a restart.
	KindRestored Kind = 3
	// KindReminderCreated indicates an external reminder was created.
	KindReminderCreated Kind = 4
	// KindReminderFailed indicates reminder creation or deletion failed.
	KindReminderFailed Kind = 5
	// KindReminderDeleted indicates an external reminder was deleted.
	KindReminderDeleted Kind = 6
	// KindPersistFailed indicates saving or loading timers failed.
	KindPersistFailed Kind = 7
)

var kindNames = []string{
	KindCreated:         "CREATED",
	KindCancelled:       "CANCELLED",
	KindExpired:         "EXPIRED",
	KindRestored:        "RESTORED",
	KindReminderCreated: "REMINDER_CREATED",
	KindReminderFailed:  "REMINDER_FAILED",
	KindReminderDeleted: "REMINDER_DELETED",
	KindPersistFailed:   "PERSIST_FAILED",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// ParseKind parses a kind name case-insensitively. Dashes and underscores
// are interchangeable, so "reminder-failed" parses.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, name := range kindNames {
		if name == norm {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind: %q", s)
}

// IsFailure reports whether the kind records a side-effect failure.
func (k Kind) IsFailure() bool {
	return k == KindReminderFailed || k == KindPersistFailed
}
