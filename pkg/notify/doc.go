// Package notify tells the user a countdown has finished.
//
// Notifications are fire-and-forget: Notify never blocks on the outcome and
// failures are only logged. Desktop shows a system notification through the
// platform's command-line notifier, Sound plays the selected alarm, Log
// writes to slog, and Multi fans out to several services.
package notify
