package countdown

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropclock/dropclock-go/pkg/clock"
	"github.com/dropclock/dropclock-go/pkg/log"
	"github.com/dropclock/dropclock-go/pkg/notify"
	"github.com/dropclock/dropclock-go/pkg/persistence"
	"github.com/dropclock/dropclock-go/pkg/quantize"
	"github.com/dropclock/dropclock-go/pkg/reminder"
)

// Registry defaults.
const (
	// DefaultReminderTimeout bounds reminder creation and deletion.
	DefaultReminderTimeout = 10 * time.Second

	// DefaultRestoreDelay is how long an overdue restored timer waits
	// before it expires, so startup can settle first.
	DefaultRestoreDelay = 1 * time.Second
)

// ErrNoStore is returned by LoadAndRestore when no Store is configured.
var ErrNoStore = errors.New("no timer store configured")

// Store loads and saves the whole live set.
type Store interface {
	LoadTimerRecords() ([]persistence.TimerRecord, error)
	SaveTimerRecords(records []persistence.TimerRecord) error
}

// Config configures a Registry. Only Clock has a non-trivial default; every
// other collaborator may be left nil to disable that side effect.
type Config struct {
	// Clock provides time and scheduling. Defaults to clock.System.
	Clock clock.Clock

	// Store persists the live set after every change.
	Store Store

	// Reminders files and removes external reminders.
	Reminders reminder.Service

	// Notifier is told when a timer finishes.
	Notifier notify.Service

	// EventLog receives a trace of every lifecycle step.
	EventLog log.Logger

	// Logger receives operational logs. If nil, logging is disabled.
	Logger *slog.Logger

	// Policy controls reminder side effects.
	Policy Policy

	// ReminderTimeout bounds each reminder call. Defaults to
	// DefaultReminderTimeout.
	ReminderTimeout time.Duration

	// RestoreDelay delays expiry of overdue restored timers. Defaults to
	// DefaultRestoreDelay; a negative value means no delay.
	RestoreDelay time.Duration
}

type entry struct {
	timer  Timer
	handle clock.Handle
}

// Registry owns the live set of countdown timers.
// It is safe for concurrent use.
type Registry struct {
	clock     clock.Clock
	store     Store
	reminders reminder.Service
	notifier  notify.Service
	trace     log.Logger
	logger    *slog.Logger

	reminderTimeout time.Duration
	restoreDelay    time.Duration

	mu       sync.Mutex
	policy   Policy
	timers   map[string]*entry
	order    []string
	handlers []EventHandler
	closed   bool

	// saveMu serializes snapshot-and-save so the last write always
	// reflects the latest live set.
	saveMu sync.Mutex

	// background reminder deletions
	wg sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		clock:           cfg.Clock,
		store:           cfg.Store,
		reminders:       cfg.Reminders,
		notifier:        cfg.Notifier,
		trace:           cfg.EventLog,
		logger:          cfg.Logger,
		policy:          cfg.Policy,
		reminderTimeout: cfg.ReminderTimeout,
		restoreDelay:    cfg.RestoreDelay,
		timers:          make(map[string]*entry),
	}
	if r.clock == nil {
		r.clock = clock.System
	}
	if r.trace == nil {
		r.trace = log.NoopLogger{}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.reminderTimeout <= 0 {
		r.reminderTimeout = DefaultReminderTimeout
	}
	switch {
	case r.restoreDelay == 0:
		r.restoreDelay = DefaultRestoreDelay
	case r.restoreDelay < 0:
		r.restoreDelay = 0
	}
	return r
}

// OnEvent registers a handler for live-set changes.
func (r *Registry) OnEvent(handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handler)
}

// SetPolicy replaces the reminder policy for later operations.
func (r *Registry) SetPolicy(p Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = p
}

// Policy returns the current reminder policy.
func (r *Registry) Policy() Policy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy
}

// Create starts a countdown of duration d. It returns false and does
// nothing if d is not positive or the registry is closed.
//
// If the policy asks for a reminder, one is created before the timer is
// added; a failed reminder is logged and the timer proceeds without one.
func (r *Registry) Create(d time.Duration, name string) (Timer, bool) {
	if d <= 0 {
		return Timer{}, false
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Timer{}, false
	}
	policy := r.policy
	position := len(r.order)
	r.mu.Unlock()

	t := Timer{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: r.clock.Now(),
		Duration:  d,
	}

	if r.reminders != nil && policy.wantsReminder(d) {
		t.ReminderID = r.createReminder(t, quantize.DisplayName(name, position))
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		if t.ReminderID != "" {
			r.logger.Info("registry closed during create, removing reminder", "timer_id", t.ID, "reminder_id", t.ReminderID)
			r.deleteReminder(t)
		}
		return Timer{}, false
	}
	id := t.ID
	r.timers[id] = &entry{
		timer:  t,
		handle: r.clock.AfterFunc(t.Remaining(r.clock.Now()), func() { r.expire(id) }),
	}
	r.order = append(r.order, id)
	r.mu.Unlock()

	r.logger.Info("timer created", "timer_id", id, "name", name, "duration", d)
	r.trace.Log(r.event(log.KindCreated, t))
	r.persist()
	r.emit(Event{Type: EventCreated, Timer: t})

	return t, true
}

// Cancel stops a live timer without notifying. It returns false if no live
// timer has the given id, which makes repeated calls harmless.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	e, ok := r.timers[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	e.handle.Stop()
	r.removeLocked(id)
	deleteReminder := r.policy.DeleteRemindersOnCancel
	r.mu.Unlock()

	t := e.timer
	r.logger.Info("timer cancelled", "timer_id", id)
	r.trace.Log(r.event(log.KindCancelled, t))
	r.persist()

	if deleteReminder && t.ReminderID != "" && r.reminders != nil {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.deleteReminder(t)
		}()
	}

	r.emit(Event{Type: EventCancelled, Timer: t})
	return true
}

// CancelAt cancels the timer at a zero-based position in ActiveTimers.
func (r *Registry) CancelAt(index int) bool {
	r.mu.Lock()
	if index < 0 || index >= len(r.order) {
		r.mu.Unlock()
		return false
	}
	id := r.order[index]
	r.mu.Unlock()

	return r.Cancel(id)
}

// expire is the clock callback for a timer's deadline. It does nothing if
// the timer already left the live set.
func (r *Registry) expire(id string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e, ok := r.timers[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	r.removeLocked(id)
	r.mu.Unlock()

	t := e.timer
	r.logger.Info("timer expired", "timer_id", id, "name", t.Name)
	r.trace.Log(r.event(log.KindExpired, t))
	r.persist()

	if r.notifier != nil {
		r.notifier.Notify(t.Name)
	}

	r.emit(Event{Type: EventExpired, Timer: t})
}

// Restore adds persisted timers to the live set, keeping their ids.
// Timers with time left are rescheduled for the remainder; overdue timers
// expire after the restore delay. Records with an empty or already-live id
// or a negative duration are skipped. Restore returns how many timers were
// added.
func (r *Registry) Restore(records []persistence.TimerRecord) int {
	var restored []Event

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0
	}
	now := r.clock.Now()
	for _, rec := range records {
		t := timerFromRecord(rec)
		if t.ID == "" || t.Duration < 0 {
			r.logger.Warn("skipping invalid timer record", "timer_id", t.ID, "duration", t.Duration)
			continue
		}
		if _, dup := r.timers[t.ID]; dup {
			r.logger.Warn("skipping duplicate timer record", "timer_id", t.ID)
			continue
		}

		id := t.ID
		remaining := t.EndTime().Sub(now)
		overdue := remaining <= 0
		delay := remaining
		if overdue {
			delay = r.restoreDelay
		}
		r.timers[id] = &entry{
			timer:  t,
			handle: r.clock.AfterFunc(delay, func() { r.expire(id) }),
		}
		r.order = append(r.order, id)
		restored = append(restored, Event{Type: EventRestored, Timer: t, Overdue: overdue})
	}
	r.mu.Unlock()

	for _, ev := range restored {
		r.logger.Info("timer restored", "timer_id", ev.Timer.ID, "overdue", ev.Overdue)
		trace := r.event(log.KindRestored, ev.Timer)
		if ev.Overdue {
			trace.Reason = "overdue"
		}
		r.trace.Log(trace)
	}
	if len(records) > 0 {
		r.persist()
	}
	for _, ev := range restored {
		r.emit(ev)
	}

	return len(restored)
}

// LoadAndRestore reads the Store and restores what it holds. A load failure
// is logged and returned; the registry stays usable.
func (r *Registry) LoadAndRestore() error {
	if r.store == nil {
		return ErrNoStore
	}
	records, err := r.store.LoadTimerRecords()
	if err != nil {
		r.logger.Warn("failed to load timers", "error", err)
		r.trace.Log(log.Event{
			Timestamp: r.clock.Now(),
			Kind:      log.KindPersistFailed,
			Error:     err.Error(),
			Reason:    "load",
		})
		return fmt.Errorf("load timers: %w", err)
	}
	n := r.Restore(records)
	r.logger.Info("timers restored", "count", n)
	return nil
}

// ActiveTimers returns the live set in creation order.
func (r *Registry) ActiveTimers() []Timer {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Timer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.timers[id].timer)
	}
	return out
}

// Get returns the live timer with the given id.
func (r *Registry) Get(id string) (Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok {
		return Timer{}, false
	}
	return e.timer, true
}

// Count returns the number of live timers.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Records returns the live set in persisted form, in creation order.
func (r *Registry) Records() []persistence.TimerRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]persistence.TimerRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.timers[id].timer.Record())
	}
	return out
}

// Close stops every pending expiry without touching the Store, so the
// timers are restored on the next start. It waits for background reminder
// deletions to finish. Close is safe to call more than once.
func (r *Registry) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		for _, e := range r.timers {
			e.handle.Stop()
		}
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Registry) removeLocked(id string) {
	delete(r.timers, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) createReminder(t Timer, title string) string {
	ctx, cancel := context.WithTimeout(context.Background(), r.reminderTimeout)
	defer cancel()

	notes := fmt.Sprintf("Your timer for %d minute(s) has finished.", int(t.Duration/time.Minute))
	id, err := r.reminders.CreateReminder(ctx, title, notes, t.EndTime())
	if err != nil {
		r.logger.Warn("failed to create reminder", "timer_id", t.ID, "error", err)
		ev := r.event(log.KindReminderFailed, t)
		ev.Error = err.Error()
		ev.Reason = "create"
		r.trace.Log(ev)
		return ""
	}

	ev := r.event(log.KindReminderCreated, t)
	ev.ReminderID = id
	r.trace.Log(ev)
	return id
}

func (r *Registry) deleteReminder(t Timer) {
	ctx, cancel := context.WithTimeout(context.Background(), r.reminderTimeout)
	defer cancel()

	ev := r.event(log.KindReminderDeleted, t)
	if err := r.reminders.DeleteReminder(ctx, t.ReminderID); err != nil {
		r.logger.Warn("failed to delete reminder", "timer_id", t.ID, "reminder_id", t.ReminderID, "error", err)
		ev.Kind = log.KindReminderFailed
		ev.Error = err.Error()
		ev.Reason = "delete"
	}
	r.trace.Log(ev)
}

func (r *Registry) persist() {
	if r.store == nil {
		return
	}

	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	if err := r.store.SaveTimerRecords(r.Records()); err != nil {
		r.logger.Warn("failed to save timers", "error", err)
		r.trace.Log(log.Event{
			Timestamp: r.clock.Now(),
			Kind:      log.KindPersistFailed,
			Error:     err.Error(),
			Reason:    "save",
		})
	}
}

func (r *Registry) emit(ev Event) {
	r.mu.Lock()
	handlers := make([]EventHandler, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (r *Registry) event(kind log.Kind, t Timer) log.Event {
	return log.Event{
		Timestamp:  r.clock.Now(),
		Kind:       kind,
		TimerID:    t.ID,
		Name:       t.Name,
		Duration:   t.Duration,
		StartTime:  t.StartTime,
		ReminderID: t.ReminderID,
	}
}
