package countdown

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dropclock/dropclock-go/pkg/clock"
	"github.com/dropclock/dropclock-go/pkg/log"
	"github.com/dropclock/dropclock-go/pkg/notify"
	notifymocks "github.com/dropclock/dropclock-go/pkg/notify/mocks"
	"github.com/dropclock/dropclock-go/pkg/persistence"
	"github.com/dropclock/dropclock-go/pkg/reminder"
	remindermocks "github.com/dropclock/dropclock-go/pkg/reminder/mocks"
)

var epoch = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type memStore struct {
	mu      sync.Mutex
	records []persistence.TimerRecord
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) LoadTimerRecords() ([]persistence.TimerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]persistence.TimerRecord(nil), s.records...), nil
}

func (s *memStore) SaveTimerRecords(records []persistence.TimerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = append([]persistence.TimerRecord(nil), records...)
	return nil
}

func (s *memStore) snapshot() ([]persistence.TimerRecord, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]persistence.TimerRecord(nil), s.records...), s.saves
}

type traceRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *traceRecorder) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *traceRecorder) kinds() []log.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]log.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *traceRecorder) find(kind log.Kind) (log.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Kind == kind {
			return e, true
		}
	}
	return log.Event{}, false
}

type notifyRecorder struct {
	mu    sync.Mutex
	names []string
}

func (n *notifyRecorder) Notify(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.names = append(n.names, name)
}

func (n *notifyRecorder) Names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.names...)
}

type fixture struct {
	clock    *clock.Fake
	store    *memStore
	notifier *notifyRecorder
	trace    *traceRecorder
	registry *Registry
}

func newFixture(t *testing.T, mutate func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		clock:    clock.NewFake(epoch),
		store:    &memStore{},
		notifier: &notifyRecorder{},
		trace:    &traceRecorder{},
	}
	cfg := Config{
		Clock:    f.clock,
		Store:    f.store,
		Notifier: f.notifier,
		EventLog: f.trace,
		Policy:   DefaultPolicy(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	f.registry = NewRegistry(cfg)
	t.Cleanup(f.registry.Close)
	return f
}

func strPtr(s string) *string { return &s }

func TestCreateZeroDurationIsNoop(t *testing.T) {
	f := newFixture(t, nil)

	tm, ok := f.registry.Create(0, "x")
	assert.False(t, ok)
	assert.Equal(t, Timer{}, tm)

	_, ok = f.registry.Create(-time.Second, "x")
	assert.False(t, ok)

	assert.Empty(t, f.registry.ActiveTimers())
	assert.Equal(t, 0, f.clock.Pending())
	_, saves := f.store.snapshot()
	assert.Equal(t, 0, saves)
}

func TestCreateSchedulesExpiry(t *testing.T) {
	f := newFixture(t, nil)

	tm, ok := f.registry.Create(10*time.Second, "Coffee")
	require.True(t, ok)
	assert.NotEmpty(t, tm.ID)
	assert.Equal(t, "Coffee", tm.Name)
	assert.Equal(t, epoch, tm.StartTime)
	assert.Equal(t, epoch.Add(10*time.Second), tm.EndTime())
	assert.Equal(t, 1, f.registry.Count())

	records, saves := f.store.snapshot()
	assert.Equal(t, 1, saves)
	require.Len(t, records, 1)
	assert.Equal(t, tm.ID, records[0].ID)
	assert.Equal(t, "Coffee", *records[0].Name)
	assert.Equal(t, 10.0, records[0].Duration)

	f.clock.Advance(9 * time.Second)
	assert.Empty(t, f.notifier.Names())
	assert.Equal(t, 1, f.registry.Count())

	f.clock.Advance(time.Second)
	assert.Equal(t, []string{"Coffee"}, f.notifier.Names())
	assert.Equal(t, 0, f.registry.Count())

	records, saves = f.store.snapshot()
	assert.Equal(t, 2, saves)
	assert.Empty(t, records)

	assert.Equal(t, []log.Kind{log.KindCreated, log.KindExpired}, f.trace.kinds())
}

func TestCreateUniqueIDs(t *testing.T) {
	f := newFixture(t, nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tm, ok := f.registry.Create(time.Minute, "")
		require.True(t, ok)
		require.False(t, seen[tm.ID], "duplicate id %s", tm.ID)
		seen[tm.ID] = true
	}
	assert.Equal(t, 50, f.registry.Count())
}

func TestUnnamedTimerNotifiesWithEmptyName(t *testing.T) {
	n := notifymocks.NewMockService(t)
	n.EXPECT().Notify("").Once()

	f := newFixture(t, func(c *Config) { c.Notifier = n })

	_, ok := f.registry.Create(time.Minute, "")
	require.True(t, ok)
	f.clock.Advance(time.Minute)
}

func TestCreateThenCancelNeverNotifies(t *testing.T) {
	// No expectations: any Notify call fails the test.
	n := notifymocks.NewMockService(t)
	f := newFixture(t, func(c *Config) { c.Notifier = n })

	tm, ok := f.registry.Create(10*time.Second, "Coffee")
	require.True(t, ok)

	assert.True(t, f.registry.Cancel(tm.ID))
	assert.Empty(t, f.registry.ActiveTimers())
	assert.Equal(t, 0, f.clock.Pending())

	f.clock.Advance(time.Hour)
	assert.Empty(t, f.registry.ActiveTimers())
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)

	tm, _ := f.registry.Create(time.Minute, "")
	require.True(t, f.registry.Cancel(tm.ID))
	_, savesAfterFirst := f.store.snapshot()
	kindsAfterFirst := f.trace.kinds()

	assert.False(t, f.registry.Cancel(tm.ID))
	_, savesAfterSecond := f.store.snapshot()

	assert.Equal(t, savesAfterFirst, savesAfterSecond)
	assert.Equal(t, kindsAfterFirst, f.trace.kinds())
	assert.Equal(t, 0, f.registry.Count())
}

func TestCancelUnknownID(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.registry.Cancel("no-such-timer"))
	_, saves := f.store.snapshot()
	assert.Equal(t, 0, saves)
}

func TestCancelAt(t *testing.T) {
	f := newFixture(t, nil)

	a, _ := f.registry.Create(time.Minute, "a")
	b, _ := f.registry.Create(time.Minute, "b")
	c, _ := f.registry.Create(time.Minute, "c")

	assert.True(t, f.registry.CancelAt(1))
	assert.False(t, f.registry.CancelAt(5))
	assert.False(t, f.registry.CancelAt(-1))

	active := f.registry.ActiveTimers()
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, c.ID, active[1].ID)

	_, ok := f.registry.Get(b.ID)
	assert.False(t, ok)
}

func TestActiveTimersCreationOrder(t *testing.T) {
	f := newFixture(t, nil)

	var ids []string
	for _, d := range []time.Duration{time.Hour, time.Minute, 30 * time.Minute} {
		tm, _ := f.registry.Create(d, "")
		ids = append(ids, tm.ID)
	}

	var got []string
	for _, tm := range f.registry.ActiveTimers() {
		got = append(got, tm.ID)
	}
	assert.Equal(t, ids, got)

	// Shortest expires first; order of the rest is unchanged.
	f.clock.Advance(time.Minute)
	active := f.registry.ActiveTimers()
	require.Len(t, active, 2)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[1].ID)
}

func TestGet(t *testing.T) {
	f := newFixture(t, nil)

	tm, _ := f.registry.Create(time.Minute, "Tea")
	got, ok := f.registry.Get(tm.ID)
	require.True(t, ok)
	assert.Equal(t, tm, got)
	assert.Equal(t, 45*time.Second, got.Remaining(epoch.Add(15*time.Second)))
	assert.Equal(t, time.Duration(0), got.Remaining(epoch.Add(time.Hour)))
}

func TestExpireAfterCancelIsNoop(t *testing.T) {
	f := newFixture(t, nil)

	tm, _ := f.registry.Create(time.Minute, "Pasta")
	require.True(t, f.registry.Cancel(tm.ID))

	// A callback already in flight when Cancel ran.
	f.registry.expire(tm.ID)

	assert.Empty(t, f.notifier.Names())
	assert.Equal(t, 0, f.registry.Count())
}

func TestCancelAfterExpireIsNoop(t *testing.T) {
	f := newFixture(t, nil)

	tm, _ := f.registry.Create(time.Minute, "Pasta")
	f.registry.expire(tm.ID)

	assert.False(t, f.registry.Cancel(tm.ID))
	assert.Equal(t, []string{"Pasta"}, f.notifier.Names())
}

func TestExpireCancelRace(t *testing.T) {
	for i := 0; i < 200; i++ {
		var notified atomic.Int32
		f := newFixture(t, func(c *Config) {
			c.Notifier = notify.Func(func(string) { notified.Add(1) })
		})

		tm, _ := f.registry.Create(time.Minute, "race")

		var cancelled atomic.Bool
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			f.registry.expire(tm.ID)
		}()
		go func() {
			defer wg.Done()
			<-start
			cancelled.Store(f.registry.Cancel(tm.ID))
		}()
		close(start)
		wg.Wait()

		require.Equal(t, 0, f.registry.Count())
		n := notified.Load()
		require.LessOrEqual(t, n, int32(1))
		if cancelled.Load() {
			require.Equal(t, int32(0), n, "cancel won but timer still notified")
		} else {
			require.Equal(t, int32(1), n, "expire won but did not notify")
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.json")

	first := newFixture(t, func(c *Config) { c.Store = persistence.NewTimerStateStore(path) })
	a, _ := first.registry.Create(10*time.Minute, "Coffee")
	b, _ := first.registry.Create(90*time.Second, "")
	first.registry.Close()

	second := newFixture(t, func(c *Config) { c.Store = persistence.NewTimerStateStore(path) })
	require.NoError(t, second.registry.LoadAndRestore())

	restored := second.registry.ActiveTimers()
	require.Len(t, restored, 2)
	for i, want := range []Timer{a, b} {
		got := restored[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.StartTime.Equal(got.StartTime), "start %v != %v", got.StartTime, want.StartTime)
		assert.Equal(t, want.Duration, got.Duration)
	}

	second.clock.Advance(90 * time.Second)
	assert.Equal(t, []string{""}, second.notifier.Names())
	second.clock.Advance(10 * time.Minute)
	assert.Equal(t, []string{"", "Coffee"}, second.notifier.Names())
}

func TestRestoreReschedulesRemaining(t *testing.T) {
	f := newFixture(t, nil)

	n := f.registry.Restore([]persistence.TimerRecord{{
		ID:        "t-1",
		Name:      strPtr("Laundry"),
		StartTime: epoch.Add(-2 * time.Minute),
		Duration:  300,
	}})
	require.Equal(t, 1, n)

	f.clock.Advance(3*time.Minute - time.Second)
	assert.Empty(t, f.notifier.Names())

	f.clock.Advance(time.Second)
	assert.Equal(t, []string{"Laundry"}, f.notifier.Names())
	assert.Equal(t, 0, f.registry.Count())
}

func TestRestoreOverdueExpiresAfterDelay(t *testing.T) {
	f := newFixture(t, nil)

	var events []Event
	f.registry.OnEvent(func(e Event) { events = append(events, e) })

	n := f.registry.Restore([]persistence.TimerRecord{{
		ID:        "t-old",
		Name:      strPtr("Tea"),
		StartTime: epoch.Add(-10 * time.Minute),
		Duration:  300,
	}})
	require.Equal(t, 1, n)

	// Reconstructed, not yet expired.
	_, ok := f.registry.Get("t-old")
	assert.True(t, ok)
	assert.Empty(t, f.notifier.Names())

	f.clock.Advance(DefaultRestoreDelay)
	assert.Equal(t, []string{"Tea"}, f.notifier.Names())
	assert.Equal(t, 0, f.registry.Count())

	records, _ := f.store.snapshot()
	assert.Empty(t, records)

	require.Len(t, events, 2)
	assert.Equal(t, EventRestored, events[0].Type)
	assert.True(t, events[0].Overdue)
	assert.Equal(t, EventExpired, events[1].Type)

	ev, ok := f.trace.find(log.KindRestored)
	require.True(t, ok)
	assert.Equal(t, "overdue", ev.Reason)
}

func TestRestoreDelayConfigurable(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.RestoreDelay = -1 })

	f.registry.Restore([]persistence.TimerRecord{{
		ID: "t-old", StartTime: epoch.Add(-time.Hour), Duration: 60,
	}})
	f.clock.Advance(0)
	assert.Equal(t, []string{""}, f.notifier.Names())
}

func TestRestoreSkipsInvalidAndDuplicate(t *testing.T) {
	f := newFixture(t, nil)

	live, _ := f.registry.Create(time.Hour, "live")

	n := f.registry.Restore([]persistence.TimerRecord{
		{ID: "", StartTime: epoch, Duration: 60},
		{ID: "neg", StartTime: epoch, Duration: -5},
		{ID: live.ID, StartTime: epoch, Duration: 60},
		{ID: "ok", StartTime: epoch, Duration: 60},
		{ID: "ok", StartTime: epoch, Duration: 120},
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, f.registry.Count())

	records, _ := f.store.snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, live.ID, records[0].ID)
	assert.Equal(t, "ok", records[1].ID)
}

func TestRestoreKeepsReminderID(t *testing.T) {
	f := newFixture(t, nil)

	f.registry.Restore([]persistence.TimerRecord{{
		ID: "t-1", StartTime: epoch, Duration: 600, ReminderID: strPtr("rem-9"),
	}})

	tm, ok := f.registry.Get("t-1")
	require.True(t, ok)
	assert.Equal(t, "rem-9", tm.ReminderID)
	assert.Equal(t, "rem-9", *f.registry.Records()[0].ReminderID)
}

func TestLoadAndRestore(t *testing.T) {
	f := newFixture(t, nil)
	f.store.records = []persistence.TimerRecord{
		{ID: "a", StartTime: epoch, Duration: 60},
		{ID: "b", StartTime: epoch, Duration: 120},
	}

	require.NoError(t, f.registry.LoadAndRestore())
	assert.Equal(t, 2, f.registry.Count())
}

func TestLoadAndRestoreFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.store.loadErr = errors.New("corrupt state")

	err := f.registry.LoadAndRestore()
	require.Error(t, err)
	assert.ErrorIs(t, err, f.store.loadErr)
	assert.Equal(t, 0, f.registry.Count())

	ev, ok := f.trace.find(log.KindPersistFailed)
	require.True(t, ok)
	assert.Equal(t, "load", ev.Reason)

	// Still usable.
	_, ok = f.registry.Create(time.Minute, "")
	assert.True(t, ok)
}

func TestLoadAndRestoreNoStore(t *testing.T) {
	r := NewRegistry(Config{Clock: clock.NewFake(epoch)})
	defer r.Close()
	assert.ErrorIs(t, r.LoadAndRestore(), ErrNoStore)
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	f := newFixture(t, nil)
	f.store.saveErr = errors.New("disk full")

	tm, ok := f.registry.Create(time.Minute, "")
	require.True(t, ok)
	assert.Equal(t, 1, f.registry.Count())

	ev, found := f.trace.find(log.KindPersistFailed)
	require.True(t, found)
	assert.Equal(t, "disk full", ev.Error)

	assert.True(t, f.registry.Cancel(tm.ID))
	assert.Equal(t, 0, f.registry.Count())
}

func TestReminderCreatedWithPositionalTitle(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().
		CreateReminder(mock.Anything, "Timer 1", "Your timer for 10 minute(s) has finished.", epoch.Add(10*time.Minute)).
		Return("rem-1", nil).Once()
	rem.EXPECT().
		CreateReminder(mock.Anything, "Tea", "Your timer for 3 minute(s) has finished.", epoch.Add(3*time.Minute+30*time.Second)).
		Return("rem-2", nil).Once()
	rem.EXPECT().
		CreateReminder(mock.Anything, "Timer 3", "Your timer for 1 minute(s) has finished.", epoch.Add(time.Minute)).
		Return("rem-3", nil).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})

	a, _ := f.registry.Create(10*time.Minute, "")
	b, _ := f.registry.Create(3*time.Minute+30*time.Second, "Tea")
	c, _ := f.registry.Create(time.Minute, "")

	assert.Equal(t, "rem-1", a.ReminderID)
	assert.Equal(t, "rem-2", b.ReminderID)
	assert.Equal(t, "rem-3", c.ReminderID)

	records, _ := f.store.snapshot()
	require.Len(t, records, 3)
	require.NotNil(t, records[0].ReminderID)
	assert.Equal(t, "rem-1", *records[0].ReminderID)

	ev, ok := f.trace.find(log.KindReminderCreated)
	require.True(t, ok)
	assert.Equal(t, "rem-1", ev.ReminderID)
}

func TestCreateRemovesReminderWhenClosedMidway(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})
	rem.EXPECT().
		CreateReminder(mock.Anything, "Timer 1", mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ string, _ string, _ time.Time) {
			f.registry.Close()
		}).
		Return("rem-1", nil).Once()
	rem.EXPECT().DeleteReminder(mock.Anything, "rem-1").Return(nil).Once()

	tm, ok := f.registry.Create(time.Minute, "")
	assert.False(t, ok)
	assert.Equal(t, Timer{}, tm)
	assert.Empty(t, f.registry.ActiveTimers())
	assert.Equal(t, 0, f.clock.Pending())

	records, saves := f.store.snapshot()
	assert.Empty(t, records)
	assert.Equal(t, 0, saves)

	_, ok = f.trace.find(log.KindReminderDeleted)
	assert.True(t, ok)
}

func TestReminderSkippedWhenDisabled(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	f := newFixture(t, func(c *Config) { c.Reminders = rem })

	tm, ok := f.registry.Create(time.Hour, "")
	require.True(t, ok)
	assert.Empty(t, tm.ReminderID)
}

func TestIgnoreShortTimers(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-long", nil).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
		c.Policy.IgnoreShortTimers = true
		c.Policy.ShortTimerThreshold = 5 * time.Minute
	})

	short, _ := f.registry.Create(4*time.Minute, "")
	edge, _ := f.registry.Create(5*time.Minute, "")
	long, _ := f.registry.Create(5*time.Minute+time.Second, "")

	assert.Empty(t, short.ReminderID)
	assert.Empty(t, edge.ReminderID, "threshold itself counts as short")
	assert.Equal(t, "rem-long", long.ReminderID)
}

func TestReminderFailureDoesNotBlockCreate(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", reminder.ErrNoListSelected).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})

	tm, ok := f.registry.Create(time.Hour, "")
	require.True(t, ok)
	assert.Empty(t, tm.ReminderID)
	assert.Equal(t, 1, f.registry.Count())

	ev, found := f.trace.find(log.KindReminderFailed)
	require.True(t, found)
	assert.Equal(t, "create", ev.Reason)
	assert.Contains(t, ev.Error, "no reminder list selected")
}

func TestSetPolicyAppliesToLaterTimers(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-1", nil).Once()

	f := newFixture(t, func(c *Config) { c.Reminders = rem })

	first, _ := f.registry.Create(time.Hour, "")
	assert.Empty(t, first.ReminderID)

	p := f.registry.Policy()
	p.RemindersEnabled = true
	f.registry.SetPolicy(p)

	second, _ := f.registry.Create(time.Hour, "")
	assert.Equal(t, "rem-1", second.ReminderID)
}

func TestCancelDeletesReminder(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-1", nil).Once()
	rem.EXPECT().DeleteReminder(mock.Anything, "rem-1").Return(nil).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})

	tm, _ := f.registry.Create(time.Hour, "")
	require.True(t, f.registry.Cancel(tm.ID))

	// Close waits for background deletions.
	f.registry.Close()

	_, ok := f.trace.find(log.KindReminderDeleted)
	assert.True(t, ok)
}

func TestCancelKeepsReminderWhenPolicyOff(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-1", nil).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
		c.Policy.DeleteRemindersOnCancel = false
	})

	tm, _ := f.registry.Create(time.Hour, "")
	require.True(t, f.registry.Cancel(tm.ID))
	f.registry.Close()
}

func TestReminderDeletionFailureIsLogged(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-1", nil).Once()
	rem.EXPECT().DeleteReminder(mock.Anything, "rem-1").Return(reminder.ErrNotFound).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})

	tm, _ := f.registry.Create(time.Hour, "")
	require.True(t, f.registry.Cancel(tm.ID))
	f.registry.Close()

	assert.Equal(t, 0, f.registry.Count())
	ev, ok := f.trace.find(log.KindReminderFailed)
	require.True(t, ok)
	assert.Equal(t, "delete", ev.Reason)
}

func TestExpiryKeepsReminder(t *testing.T) {
	rem := remindermocks.NewMockService(t)
	rem.EXPECT().CreateReminder(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("rem-1", nil).Once()

	f := newFixture(t, func(c *Config) {
		c.Reminders = rem
		c.Policy.RemindersEnabled = true
	})

	f.registry.Create(time.Minute, "")
	f.clock.Advance(time.Minute)
	f.registry.Close()
}

func TestCloseStopsCallbacksWithoutPersisting(t *testing.T) {
	f := newFixture(t, nil)

	f.registry.Create(time.Minute, "a")
	f.registry.Create(time.Hour, "b")
	_, savesBefore := f.store.snapshot()

	f.registry.Close()
	f.registry.Close()
	assert.Equal(t, 0, f.clock.Pending())

	f.clock.Advance(2 * time.Hour)
	assert.Empty(t, f.notifier.Names())

	records, savesAfter := f.store.snapshot()
	assert.Equal(t, savesBefore, savesAfter)
	assert.Len(t, records, 2)

	_, ok := f.registry.Create(time.Minute, "")
	assert.False(t, ok)
}

func TestOnEvent(t *testing.T) {
	f := newFixture(t, nil)

	var mu sync.Mutex
	var types []EventType
	f.registry.OnEvent(func(e Event) {
		// Handlers may read the registry.
		_ = f.registry.ActiveTimers()
		mu.Lock()
		types = append(types, e.Type)
		mu.Unlock()
	})

	a, _ := f.registry.Create(time.Minute, "")
	f.registry.Create(time.Hour, "")
	f.registry.Cancel(a.ID)
	f.clock.Advance(time.Hour)
	f.registry.Create(0, "")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{EventCreated, EventCreated, EventCancelled, EventExpired}, types)
}

func TestSystemClockExpiry(t *testing.T) {
	done := make(chan string, 1)
	r := NewRegistry(Config{
		Notifier: notify.Func(func(name string) { done <- name }),
	})
	defer r.Close()

	_, ok := r.Create(20*time.Millisecond, "quick")
	require.True(t, ok)

	select {
	case name := <-done:
		assert.Equal(t, "quick", name)
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not expire")
	}
	assert.Eventually(t, func() bool { return r.Count() == 0 }, time.Second, 5*time.Millisecond)
}
