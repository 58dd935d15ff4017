// Package persistence stores the live countdown timers so they survive a
// restart.
//
// Every save replaces the whole list of records. TimerStateStore keeps the
// list in a versioned JSON file; SQLiteStore keeps it in a single table and
// replaces it inside one transaction. Both return an empty list when nothing
// has been saved yet.
package persistence
