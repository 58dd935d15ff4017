// Package interactive provides the interactive command-line interface
// for dropclock.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/dropclock/dropclock-go/pkg/clock"
	"github.com/dropclock/dropclock-go/pkg/config"
	"github.com/dropclock/dropclock-go/pkg/countdown"
	"github.com/dropclock/dropclock-go/pkg/quantize"
)

// Config wires the shell to the running timers and preferences.
type Config struct {
	Registry *countdown.Registry

	// Preferences is edited in place by the set command.
	Preferences *config.Preferences

	// PreferencesPath is where set saves. Empty disables saving.
	PreferencesPath string

	// Clock defaults to clock.System.
	Clock clock.Clock

	// OnPreferencesChanged is called after a successful set.
	OnPreferencesChanged func(config.Preferences)
}

// Shell handles interactive mode for dropclock.
type Shell struct {
	cfg   Config
	clock clock.Clock
	out   io.Writer
	rl    *readline.Instance
}

// New creates a shell reading from the terminal.
func New(cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dropclock> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(cfg, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(cfg Config, out io.Writer) *Shell {
	s := &Shell{cfg: cfg, clock: cfg.Clock, out: out}
	if s.clock == nil {
		s.clock = clock.System
	}
	cfg.Registry.OnEvent(s.handleEvent)
	return s
}

func completer() *readline.PrefixCompleter {
	var keys []readline.PrefixCompleterInterface
	p := config.Default()
	for _, k := range p.Keys() {
		keys = append(keys, readline.PcItem(k))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("drag"),
		readline.PcItem("start"),
		readline.PcItem("list"),
		readline.PcItem("cancel"),
		readline.PcItem("prefs"),
		readline.PcItem("set", keys...),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Execute(line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should exit.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "drag", "d":
		s.cmdDrag(args)
	case "start", "s":
		s.cmdStart(args)
	case "list", "ls", "l":
		s.cmdList()
	case "cancel", "c":
		s.cmdCancel(args)
	case "prefs":
		s.cmdPrefs()
	case "set":
		s.cmdSet(args)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Dropclock Commands:
  Timers:
    drag <dx> <dy> [ctrl] [shift] [name]  - Simulate a drag gesture and start a timer
    start <duration> [name]               - Start a timer (e.g. 90s, 5m, 1h30m, 300)
    list                                  - List active timers
    cancel <n|id>                         - Cancel by list position or timer ID

  Preferences:
    prefs                                 - Show preferences
    set <key> <value>                     - Change and save a preference

  Other:
    help                                  - Show this help
    quit                                  - Exit (active timers resume on next start)`)
}

func (s *Shell) cmdDrag(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: drag <dx> <dy> [ctrl] [shift] [name]")
		return
	}
	dx, err1 := strconv.ParseFloat(args[0], 64)
	dy, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(s.out, "Error: dx and dy must be numbers")
		return
	}

	var ctrl, shift bool
	rest := args[2:]
modifiers:
	for len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "ctrl":
			ctrl = true
		case "shift":
			shift = true
		default:
			break modifiers
		}
		rest = rest[1:]
	}

	prefs := s.cfg.Preferences
	session := quantize.Session{Modes: prefs.Modes(), ViewAsMinutes: prefs.ViewAsMinutes}
	session.Begin(0, 0, s.clock.Now())
	preview := session.Update(dx, dy, ctrl, shift)
	seconds := session.End()

	if !preview.Visible {
		fmt.Fprintln(s.out, "Drag too short, no timer started")
		return
	}
	if prefs.ShowDragIndicator {
		fmt.Fprintf(s.out, "Preview: %s (ends %s)\n", preview.Text, preview.EndTime.Format("15:04:05"))
	}

	s.startTimer(quantize.Duration(seconds), s.nameFrom(rest))
}

func (s *Shell) cmdStart(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: start <duration> [name]")
		return
	}
	d, err := parseDuration(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.startTimer(d, s.nameFrom(args[1:]))
}

// nameFrom joins the remaining words as a timer name, if custom names are
// allowed.
func (s *Shell) nameFrom(words []string) string {
	if len(words) == 0 {
		return ""
	}
	if !s.cfg.Preferences.AllowCustomNames {
		fmt.Fprintln(s.out, "Note: custom names are disabled (set allow_custom_names on)")
		return ""
	}
	return strings.Join(words, " ")
}

func (s *Shell) startTimer(d time.Duration, name string) {
	position := s.cfg.Registry.Count()
	t, ok := s.cfg.Registry.Create(d, name)
	if !ok {
		fmt.Fprintln(s.out, "No timer started")
		return
	}
	seconds := int(d / time.Second)
	fmt.Fprintf(s.out, "Started %s: %s (due %s)\n",
		quantize.DisplayName(name, position),
		quantize.FormatDisplay(seconds, s.cfg.Preferences.ViewAsMinutes),
		t.EndTime().Format("15:04:05"))
	if t.ReminderID != "" {
		fmt.Fprintf(s.out, "  Reminder: %s\n", t.ReminderID)
	}
}

func (s *Shell) cmdList() {
	timers := s.cfg.Registry.ActiveTimers()
	if len(timers) == 0 {
		fmt.Fprintln(s.out, "No active timers")
		return
	}

	now := s.clock.Now()
	fmt.Fprintf(s.out, "Active Timers [%s]:\n", quantize.BadgeText(len(timers)))
	for i, t := range timers {
		fmt.Fprintf(s.out, "  %d. %-20s %8s  %s\n",
			i+1,
			quantize.DisplayName(t.Name, i),
			quantize.FormatRemaining(t.Remaining(now)),
			shortID(t.ID))
	}
}

func (s *Shell) cmdCancel(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: cancel <n|id>")
		return
	}
	target := args[0]

	if n, err := strconv.Atoi(target); err == nil {
		if !s.cfg.Registry.CancelAt(n - 1) {
			fmt.Fprintf(s.out, "No timer at position %d\n", n)
			return
		}
		fmt.Fprintf(s.out, "Cancelled timer %d\n", n)
		return
	}

	id, err := s.resolveID(target)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if !s.cfg.Registry.Cancel(id) {
		fmt.Fprintf(s.out, "Timer %s already finished\n", shortID(id))
		return
	}
	fmt.Fprintf(s.out, "Cancelled timer %s\n", shortID(id))
}

// resolveID accepts a full ID or a unique prefix of a live timer's ID.
func (s *Shell) resolveID(prefix string) (string, error) {
	var match string
	for _, t := range s.cfg.Registry.ActiveTimers() {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous timer ID: %s", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no timer matches %s", prefix)
	}
	return match, nil
}

func (s *Shell) cmdPrefs() {
	p := s.cfg.Preferences
	fmt.Fprintln(s.out, "Preferences:")
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		if v == "" {
			v = "(none)"
		}
		fmt.Fprintf(s.out, "  %-30s %s\n", k, v)
	}
}

func (s *Shell) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <key> <value>")
		return
	}
	key := args[0]
	value := strings.Join(args[1:], " ")

	if err := s.cfg.Preferences.Set(key, value); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if s.cfg.PreferencesPath != "" {
		if err := s.cfg.Preferences.Save(s.cfg.PreferencesPath); err != nil {
			fmt.Fprintf(s.out, "Error: failed to save preferences: %v\n", err)
		}
	}
	if s.cfg.OnPreferencesChanged != nil {
		s.cfg.OnPreferencesChanged(*s.cfg.Preferences)
	}

	v, _ := s.cfg.Preferences.Get(key)
	fmt.Fprintf(s.out, "%s = %s\n", key, v)
}

func (s *Shell) handleEvent(e countdown.Event) {
	switch e.Type {
	case countdown.EventExpired:
		name := e.Timer.Name
		if name == "" {
			name = "Timer"
		}
		fmt.Fprintf(s.out, "\n*** %s finished (%s) ***\n", name, shortID(e.Timer.ID))
	case countdown.EventRestored:
		if e.Overdue {
			fmt.Fprintf(s.out, "Restored %s (finished while away)\n", shortID(e.Timer.ID))
		}
	}
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive: %s", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", s)
	}
	return d, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
