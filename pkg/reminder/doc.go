// Package reminder creates and deletes external reminders that mirror
// countdown timers, so a user still gets reminded if the timer process is
// not running when the countdown ends.
//
// # Reminder Lists
//
// Reminders belong to a list. ICSStore maps each list to a directory and
// each reminder to an iCalendar file holding one VTODO with a due date and
// a display alarm at that time, which calendar clients can import.
//
// # Errors
//
// All failures are reported as *Error with a Kind. Callers treat them as
// non-fatal: a timer never depends on its reminder.
package reminder
