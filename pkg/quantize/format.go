package quantize

import (
	"fmt"
	"time"
)

// FormatDisplay renders quantized seconds for the drag preview.
// Durations of five minutes and more are shown as whole minutes up to an
// hour, then as hours and minutes unless viewAsMinutes is set.
func FormatDisplay(seconds int, viewAsMinutes bool) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d sec", seconds)
	case seconds < 300:
		minutes := seconds / 60
		return fmt.Sprintf("%d min %d sec", minutes, seconds-minutes*60)
	case seconds <= 3600 || viewAsMinutes:
		return fmt.Sprintf("%d min", seconds/60)
	default:
		hours := seconds / 3600
		minutes := (seconds - hours*3600) / 60
		return fmt.Sprintf("%d hr %d min", hours, minutes)
	}
}

// FormatRemaining renders a countdown as MM:SS, or H:MM:SS from one hour.
// Negative values render as 00:00.
func FormatRemaining(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DisplayName returns name, or "Timer N" for the zero-based index when the
// name is empty.
func DisplayName(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Timer %d", index+1)
}

// BadgeText is the status badge for the number of live timers.
func BadgeText(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > 9:
		return "+"
	default:
		return fmt.Sprintf("%d", count)
	}
}
