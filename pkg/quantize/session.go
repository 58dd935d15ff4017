package quantize

import "time"

// Preview is what the UI shows while a drag is in progress.
type Preview struct {
	Seconds int
	Text    string
	EndTime time.Time

	// Visible is false when the drag is below the first threshold and any
	// preview panel should be hidden.
	Visible bool
}

// Session tracks a single drag from begin to end.
// It is not safe for concurrent use; gesture callbacks arrive on one thread.
type Session struct {
	Modes         Modes
	ViewAsMinutes bool

	active  bool
	startX  float64
	startY  float64
	base    time.Time
	seconds int
}

// Begin records the drag start location and the time the drag started.
func (s *Session) Begin(x, y float64, at time.Time) {
	s.active = true
	s.startX = x
	s.startY = y
	s.base = at
	s.seconds = 0
}

// Active reports whether a drag is in progress.
func (s *Session) Active() bool {
	return s.active
}

// Update quantizes the displacement from the start location.
// Calls outside Begin/End return a zero Preview.
func (s *Session) Update(x, y float64, ctrl, shift bool) Preview {
	if !s.active {
		return Preview{}
	}

	s.seconds = QuantizeGesture(Gesture{
		DeltaX: x - s.startX,
		DeltaY: y - s.startY,
		Ctrl:   ctrl,
		Shift:  shift,
	}, s.Modes)

	return Preview{
		Seconds: s.seconds,
		Text:    FormatDisplay(s.seconds, s.ViewAsMinutes),
		EndTime: s.base.Add(Duration(s.seconds)),
		Visible: s.seconds > 0,
	}
}

// End finishes the drag and returns the last quantized duration in seconds.
// Zero means no timer should be created.
func (s *Session) End() int {
	seconds := s.seconds
	s.active = false
	s.seconds = 0
	return seconds
}
