package notify

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// SoundConfig configures the alarm player.
type SoundConfig struct {
	// Selected is the name of a bundled alarm sound (see AvailableSounds).
	Selected string

	// CustomPath is a user-chosen sound file tried before Selected.
	CustomPath string

	// Runner executes the player command. Defaults to ExecRunner.
	Runner Runner

	// Timeout bounds each playback. Defaults to DefaultCommandTimeout.
	Timeout time.Duration

	// Logger receives playback failures. If nil, slog.Default is used.
	Logger *slog.Logger
}

// Sound plays an alarm when a timer finishes.
type Sound struct {
	mu       sync.Mutex
	selected string
	custom   string

	run     Runner
	timeout time.Duration
	logger  *slog.Logger

	wg sync.WaitGroup
}

// NewSound creates an alarm player.
func NewSound(cfg SoundConfig) *Sound {
	s := &Sound{
		selected: cfg.Selected,
		custom:   cfg.CustomPath,
		run:      cfg.Runner,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if s.run == nil {
		s.run = ExecRunner
	}
	if s.timeout <= 0 {
		s.timeout = DefaultCommandTimeout
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// AvailableSounds lists the bundled alarm names for this platform.
func AvailableSounds() []string {
	out := make([]string, len(defaultSounds))
	copy(out, defaultSounds)
	return out
}

// SetSelection changes the alarm sound used by later notifications.
func (s *Sound) SetSelection(selected, customPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = selected
	s.custom = customPath
}

// Path returns the file that would be played: the custom file if it
// exists, else the selected bundled sound, else the platform fallback.
func (s *Sound) Path() string {
	s.mu.Lock()
	selected, custom := s.selected, s.custom
	s.mu.Unlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom
		}
		s.logger.Warn("custom alarm sound missing, using bundled sound", "path", custom)
	}
	for _, name := range defaultSounds {
		if name == selected {
			return soundPath(name)
		}
	}
	return soundPath(fallbackSound)
}

// Notify plays the alarm in the background.
func (s *Sound) Notify(string) {
	path := s.Path()
	cmd, args := playCommand(path)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.run(ctx, cmd, args...); err != nil {
			s.logger.Warn("failed to play alarm", "path", path, "error", err)
		}
	}()
}

// Wait blocks until every started playback has finished.
func (s *Sound) Wait() {
	s.wg.Wait()
}

// Compile-time interface satisfaction check.
var _ Service = (*Sound)(nil)
