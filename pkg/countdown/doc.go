// Package countdown owns the set of live countdown timers.
//
// A Registry creates timers, schedules their expiry on a clock.Clock,
// cancels them on request, and restores them after a restart. Every change
// to the live set is written through to a Store as a whole-set replace, so
// a crash loses at most the change in flight.
//
// # Timer Lifecycle
//
// A timer is either scheduled (an expiry callback is pending) or removed.
// It leaves the live set exactly once, by Cancel or by expiry, whichever
// runs first; the loser is a no-op. Expiry checks membership under the
// registry lock, so a callback already in flight when Cancel returns does
// not fire a notification.
//
// # Side Effects
//
// On create the registry may file an external reminder (see Policy); on
// cancel it may delete that reminder in the background. On expiry it hands
// the timer's name to the notify.Service. Reminder and persistence failures
// are logged and traced but never block or roll back the timer itself.
//
// # Restart Reconciliation
//
// Restore reschedules persisted timers for their remaining time. A timer
// whose deadline passed while the process was not running is restored and
// then expired after a short settle delay, so the user is still notified.
package countdown
