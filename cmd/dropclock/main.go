// Command dropclock runs countdown timers from the terminal.
//
// Timers survive restarts: the live set is saved after every change and
// reloaded on start, and timers that finished while dropclock was not
// running fire shortly after startup.
//
// Usage:
//
//	dropclock [flags]
//
// Flags:
//
//	-config string         Preferences file (default ~/.dropclock/preferences.yaml)
//	-state string          Timer state file (default ~/.dropclock/timers.json)
//	-store string          State backend: json, sqlite (default "json")
//	-reminders-dir string  Directory for reminder lists (default ~/.dropclock/reminders)
//	-event-log string      Append a CBOR timer trace to this file
//	-log-level string      Log level: debug, info, warn, error (default "info")
//	-interactive           Enable interactive command mode (default when stdin is a terminal)
//
// Examples:
//
//	# Interactive use
//	dropclock
//
//	# Headless, with a trace for dropclock-log
//	dropclock -interactive=false -event-log ~/.dropclock/trace.cbor
//
// Interactive Commands:
//
//	drag <dx> <dy> [ctrl] [shift] [name] - Simulate a drag and start a timer
//	start <duration> [name]              - Start a timer
//	list                                 - List active timers
//	cancel <n|id>                        - Cancel a timer
//	prefs                                - Show preferences
//	set <key> <value>                    - Change a preference
//	quit                                 - Exit
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"golang.org/x/term"

	"github.com/dropclock/dropclock-go/cmd/dropclock/interactive"
	"github.com/dropclock/dropclock-go/pkg/config"
	"github.com/dropclock/dropclock-go/pkg/countdown"
	eventlog "github.com/dropclock/dropclock-go/pkg/log"
	"github.com/dropclock/dropclock-go/pkg/notify"
	"github.com/dropclock/dropclock-go/pkg/persistence"
	"github.com/dropclock/dropclock-go/pkg/reminder"
)

// Options holds the command-line configuration.
type Options struct {
	ConfigFile   string
	StateFile    string
	StoreKind    string
	RemindersDir string
	EventLog     string
	LogLevel     string
	Interactive  bool
}

var opts Options

func init() {
	dir := dataDir()
	flag.StringVar(&opts.ConfigFile, "config", config.DefaultPath(), "Preferences file")
	flag.StringVar(&opts.StateFile, "state", "", "Timer state file (default depends on -store)")
	flag.StringVar(&opts.StoreKind, "store", "json", "State backend: json, sqlite")
	flag.StringVar(&opts.RemindersDir, "reminders-dir", filepath.Join(dir, "reminders"), "Directory for reminder lists")
	flag.StringVar(&opts.EventLog, "event-log", "", "Append a CBOR timer trace to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.Interactive, "interactive", term.IsTerminal(int(os.Stdin.Fd())), "Enable interactive command mode")
}

func main() {
	flag.Parse()

	setupLogging(opts.LogLevel)
	logger := slog.Default()

	prefs, err := config.Load(opts.ConfigFile)
	if err != nil {
		logger.Warn("using default preferences", "path", opts.ConfigFile, "error", err)
	}

	store, closeStore, err := openStore(opts)
	if err != nil {
		log.Fatalf("Failed to open timer store: %v", err)
	}
	defer closeStore()

	reminders := reminder.NewICSStore(opts.RemindersDir, prefs.SelectedReminderList)
	if prefs.SelectedReminderList != "" {
		if err := reminders.CreateList(prefs.SelectedReminderList); err != nil {
			logger.Warn("failed to create reminder list", "list", prefs.SelectedReminderList, "error", err)
		}
	}

	sound := notify.NewSound(notify.SoundConfig{
		Selected:   prefs.SelectedAlarmSound,
		CustomPath: prefs.CustomSoundPath,
		Logger:     logger,
	})
	var playSound atomic.Bool
	playSound.Store(prefs.PlaySound)
	desktop := notify.NewDesktop(notify.DesktopConfig{Logger: logger})
	notifier := notify.Multi{
		desktop,
		notify.Func(func(name string) {
			if playSound.Load() {
				sound.Notify(name)
			}
		}),
		notify.Log{Logger: logger},
	}

	trace, closeTrace := openEventLog(opts.EventLog, logger)
	defer closeTrace()

	registry := countdown.NewRegistry(countdown.Config{
		Store:     store,
		Reminders: reminders,
		Notifier:  notifier,
		EventLog:  trace,
		Logger:    logger,
		Policy:    prefs.Policy(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run interactive mode or wait for signal
	if opts.Interactive {
		shell, err := interactive.New(interactive.Config{
			Registry:        registry,
			Preferences:     &prefs,
			PreferencesPath: opts.ConfigFile,
			OnPreferencesChanged: func(p config.Preferences) {
				registry.SetPolicy(p.Policy())
				playSound.Store(p.PlaySound)
				sound.SetSelection(p.SelectedAlarmSound, p.CustomSoundPath)
				if p.SelectedReminderList != "" {
					if err := reminders.CreateList(p.SelectedReminderList); err != nil {
						logger.Warn("failed to create reminder list", "list", p.SelectedReminderList, "error", err)
					}
				}
				reminders.SelectList(p.SelectedReminderList)
			},
		})
		if err != nil {
			log.Fatalf("Failed to create interactive shell: %v", err)
		}
		// Redirect log output through readline to avoid interfering with input
		log.SetOutput(shell.Stdout())
		go shell.Run(ctx, cancel)
	}

	if err := registry.LoadAndRestore(); err != nil && !errors.Is(err, countdown.ErrNoStore) {
		logger.Warn("starting without saved timers", "error", err)
	}

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	case <-ctx.Done():
		// Context was cancelled (e.g., by interactive quit command)
	}

	cancel()
	registry.Close()
	desktop.Wait()
	sound.Wait()
	logger.Info("stopped", "pending", registry.Count())
}

// setupLogging routes slog through the standard logger so that redirecting
// log output also moves structured logs.
func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}
}

func dataDir() string {
	return filepath.Dir(config.DefaultPath())
}

// openStore opens the configured timer store and returns a function that
// releases it.
func openStore(o Options) (countdown.Store, func(), error) {
	path := o.StateFile
	switch o.StoreKind {
	case "sqlite":
		if path == "" {
			path = filepath.Join(dataDir(), "timers.db")
		}
		s, err := persistence.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "json", "":
		if path == "" {
			path = filepath.Join(dataDir(), "timers.json")
		}
		return persistence.NewTimerStateStore(path), func() {}, nil
	default:
		return nil, nil, errors.New("unknown store: " + o.StoreKind)
	}
}

// openEventLog builds the timer trace: debug-level slog output, plus a
// CBOR file when path is set.
func openEventLog(path string, logger *slog.Logger) (eventlog.Logger, func()) {
	adapter := eventlog.NewSlogAdapter(logger)
	if path == "" {
		return adapter, func() {}
	}

	fl, err := eventlog.NewFileLogger(path)
	if err != nil {
		logger.Warn("failed to open event log", "path", path, "error", err)
		return adapter, func() {}
	}
	return eventlog.NewMultiLogger(fl, adapter), func() {
		if n := fl.Dropped(); n > 0 {
			logger.Warn("event log dropped events", "count", n)
		}
		closeQuietly(fl)
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
