// Package quantize maps drag-gesture displacement to countdown durations.
//
// # Bands
//
// The larger of the two axis deltas selects a band. Below SecondThreshold
// no timer is produced. Between SecondThreshold and ThirtySecondThreshold
// each point adds one second starting at 31s. Up to MinuteThreshold every
// five points add 30 seconds starting at one minute, and beyond that every
// five points add a minute starting at five minutes.
//
// # Modifier Modes
//
// Holding ctrl with five-minute mode enabled switches to 5-minute steps.
// Holding shift with seconds mode enabled keeps 1-second steps for the
// whole axis. Ctrl takes precedence over shift.
//
// Quantize is pure and may be called on every gesture update. Session
// carries the little state a drag needs between begin and end.
package quantize
