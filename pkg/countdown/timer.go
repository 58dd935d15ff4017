package countdown

import (
	"time"

	"github.com/dropclock/dropclock-go/pkg/persistence"
)

// Timer is a snapshot of one live countdown.
type Timer struct {
	// ID is unique among live timers and stable across restarts.
	ID string

	// Name is the user-supplied label. Empty means the positional default.
	Name string

	// StartTime is the wall-clock time the timer was created.
	StartTime time.Time

	// Duration is the full countdown length.
	Duration time.Duration

	// ReminderID identifies the external reminder, if one was created.
	ReminderID string
}

// EndTime returns when the timer is due.
func (t Timer) EndTime() time.Time {
	return t.StartTime.Add(t.Duration)
}

// Remaining returns the time left at now, never negative.
func (t Timer) Remaining(now time.Time) time.Duration {
	remaining := t.EndTime().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Record converts the timer to its persisted form.
func (t Timer) Record() persistence.TimerRecord {
	rec := persistence.TimerRecord{
		ID:        t.ID,
		StartTime: t.StartTime,
		Duration:  t.Duration.Seconds(),
	}
	if t.Name != "" {
		name := t.Name
		rec.Name = &name
	}
	if t.ReminderID != "" {
		id := t.ReminderID
		rec.ReminderID = &id
	}
	return rec
}

// timerFromRecord rebuilds a timer from its persisted form.
func timerFromRecord(rec persistence.TimerRecord) Timer {
	t := Timer{
		ID:        rec.ID,
		StartTime: rec.StartTime,
		Duration:  rec.DurationValue(),
	}
	if rec.Name != nil {
		t.Name = *rec.Name
	}
	if rec.ReminderID != nil {
		t.ReminderID = *rec.ReminderID
	}
	return t
}

// Policy controls the optional side effects of create and cancel.
type Policy struct {
	// RemindersEnabled files an external reminder for new timers.
	RemindersEnabled bool

	// IgnoreShortTimers skips reminders for timers no longer than
	// ShortTimerThreshold.
	IgnoreShortTimers bool

	// ShortTimerThreshold is the cutoff used by IgnoreShortTimers.
	ShortTimerThreshold time.Duration

	// DeleteRemindersOnCancel removes a timer's reminder when it is cancelled.
	DeleteRemindersOnCancel bool
}

// DefaultPolicy returns the policy of a fresh install: no reminders, a five
// minute short-timer threshold, and reminder cleanup on cancel.
func DefaultPolicy() Policy {
	return Policy{
		ShortTimerThreshold:     5 * time.Minute,
		DeleteRemindersOnCancel: true,
	}
}

// wantsReminder reports whether a timer of duration d gets a reminder.
// A timer exactly at the threshold counts as short.
func (p Policy) wantsReminder(d time.Duration) bool {
	if !p.RemindersEnabled {
		return false
	}
	return !p.IgnoreShortTimers || d > p.ShortTimerThreshold
}
