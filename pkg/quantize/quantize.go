package quantize

import (
	"math"
	"time"
)

// Band thresholds in drag-gesture points.
const (
	// SecondThreshold is the smallest delta that produces a timer.
	SecondThreshold = 50

	// ThirtySecondThreshold starts the 30-second band.
	ThirtySecondThreshold = 80

	// MinuteThreshold starts the 1-minute band.
	MinuteThreshold = 130
)

// Step sizes in points.
const (
	coarseStep = 5
)

// maxSteps bounds the step count so any result converts to a
// time.Duration without overflow.
const maxSteps = 1_000_000

// Gesture is a drag displacement plus modifier-key state.
type Gesture struct {
	DeltaX float64
	DeltaY float64
	Ctrl   bool
	Shift  bool
}

// Modes holds the user preferences that enable modifier modes.
type Modes struct {
	// FiveMinute enables 5-minute steps while ctrl is held.
	FiveMinute bool

	// Seconds enables 1-second steps while shift is held.
	Seconds bool
}

// Quantize converts a drag displacement into a duration in seconds.
// A result of 0 means no timer should be created.
func Quantize(deltaX, deltaY float64, ctrlHeld, shiftHeld, fiveMinuteModeEnabled, secondsModeEnabled bool) int {
	maxDelta := math.Max(math.Abs(deltaX), math.Abs(deltaY))
	if math.IsNaN(maxDelta) || math.IsInf(maxDelta, 0) {
		return 0
	}

	switch {
	case ctrlHeld && fiveMinuteModeEnabled:
		if maxDelta < SecondThreshold {
			return 0
		}
		return (steps(maxDelta-SecondThreshold, coarseStep) + 1) * 300

	case shiftHeld && secondsModeEnabled:
		if maxDelta < SecondThreshold {
			return 0
		}
		return 30 + steps(maxDelta-SecondThreshold, 1) + 1
	}

	switch {
	case maxDelta < SecondThreshold:
		return 0
	case maxDelta < ThirtySecondThreshold:
		return 30 + steps(maxDelta-SecondThreshold, 1) + 1
	case maxDelta < MinuteThreshold:
		return 60 + steps(maxDelta-ThirtySecondThreshold, coarseStep)*30
	default:
		return 300 + steps(maxDelta-MinuteThreshold, coarseStep)*60
	}
}

// QuantizeGesture is Quantize over a Gesture and Modes.
func QuantizeGesture(g Gesture, m Modes) int {
	return Quantize(g.DeltaX, g.DeltaY, g.Ctrl, g.Shift, m.FiveMinute, m.Seconds)
}

// Duration converts quantized seconds to a time.Duration.
func Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// steps returns floor(offset/size) for a non-negative offset, capped at
// maxSteps.
func steps(offset, size float64) int {
	n := math.Floor(offset / size)
	if n > maxSteps {
		return maxSteps
	}
	return int(n)
}
