// Package log records a machine-readable trace of countdown timer events.
//
// This package defines the Logger interface and the Event type emitted by
// the timer registry for every lifecycle step (created, cancelled, expired,
// restored) and every side-effect outcome (reminder created or failed,
// persistence failed). It is separate from operational logging (slog); the
// trace answers "what happened to timer X" after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.EventLog = log.NewSlogAdapter(slog.Default())
//
//	// For production: append to a binary file
//	home, _ := os.UserHomeDir()
//	cfg.EventLog, _ = log.NewFileLogger(filepath.Join(home, ".dropclock", "trace.cbor"))
//
//	// Both: use MultiLogger
//	cfg.EventLog = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys. The
// dropclock-log tool views, summarizes and exports them.
package log
