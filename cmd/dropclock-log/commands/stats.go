package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dropclock/dropclock-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[log.Kind]int
	Timers       map[string]*TimerStats
	Failures     int
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// TimerStats holds the history of a single timer.
type TimerStats struct {
	Name      string
	FirstSeen time.Time
	LastSeen  time.Time
	Duration  time.Duration
	Events    int
	Outcome   log.Kind
	Finished  bool
	Restored  int
}

// Outcomes counts how timers left the live set.
func (s *Stats) Outcomes() (expired, cancelled, live int) {
	for _, ts := range s.Timers {
		switch {
		case !ts.Finished:
			live++
		case ts.Outcome == log.KindExpired:
			expired++
		default:
			cancelled++
		}
	}
	return expired, cancelled, live
}

// CollectStats reads the whole trace file into a Stats.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[log.Kind]int),
		Timers:       make(map[string]*TimerStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++
		if event.Kind.IsFailure() {
			stats.Failures++
		}

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.TimerID == "" {
			continue
		}
		ts, ok := stats.Timers[event.TimerID]
		if !ok {
			ts = &TimerStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Timers[event.TimerID] = ts
		}
		ts.Events++
		if event.Timestamp.After(ts.LastSeen) {
			ts.LastSeen = event.Timestamp
		}
		if event.Name != "" {
			ts.Name = event.Name
		}
		if event.Duration > 0 {
			ts.Duration = event.Duration
		}
		switch event.Kind {
		case log.KindExpired, log.KindCancelled:
			ts.Outcome = event.Kind
			ts.Finished = true
		case log.KindRestored:
			ts.Restored++
		}
	}

	return stats, nil
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Dropclock Timer Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for k := log.KindCreated; k <= log.KindPersistFailed; k++ {
		if count := stats.EventsByKind[k]; count > 0 {
			fmt.Fprintf(w, "  %-18s %d\n", k.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	expired, cancelled, live := stats.Outcomes()
	fmt.Fprintf(w, "Timers: %d (expired %d, cancelled %d, unfinished %d)\n",
		len(stats.Timers), expired, cancelled, live)
	if len(stats.Timers) > 0 {
		type timerInfo struct {
			id    string
			stats *TimerStats
		}
		timers := make([]timerInfo, 0, len(stats.Timers))
		for id, ts := range stats.Timers {
			timers = append(timers, timerInfo{id, ts})
		}
		sort.Slice(timers, func(i, j int) bool {
			return timers[i].stats.FirstSeen.Before(timers[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, t := range timers {
			outcome := "unfinished"
			if t.stats.Finished {
				outcome = t.stats.Outcome.String()
			}
			fmt.Fprintf(w, "  [%s] %s, %d events, %s\n", shortenID(t.id), t.stats.Duration, t.stats.Events, outcome)
			if t.stats.Name != "" {
				fmt.Fprintf(w, "             Name: %s\n", t.stats.Name)
			}
			if t.stats.Restored > 0 {
				fmt.Fprintf(w, "             Restored: %d\n", t.stats.Restored)
			}
		}
	}

	if stats.Failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failures: %d\n", stats.Failures)
	}
}
