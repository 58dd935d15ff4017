package countdown

// EventType identifies a change to the live set.
type EventType uint8

const (
	// EventCreated - a timer was added by Create.
	EventCreated EventType = iota

	// EventCancelled - a timer was removed by Cancel.
	EventCancelled

	// EventExpired - a timer finished and was removed.
	EventExpired

	// EventRestored - a persisted timer was added by Restore.
	EventRestored
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "CREATED"
	case EventCancelled:
		return "CANCELLED"
	case EventExpired:
		return "EXPIRED"
	case EventRestored:
		return "RESTORED"
	default:
		return "UNKNOWN"
	}
}

// Event describes one change to the live set.
type Event struct {
	// Type is the event type.
	Type EventType

	// Timer is the affected timer as it was at the time of the change.
	Timer Timer

	// Overdue is set on EventRestored when the timer's deadline had
	// already passed; an EventExpired follows after the restore delay.
	Overdue bool
}

// EventHandler receives registry events. Handlers run outside the registry
// lock and may call back into the registry.
type EventHandler func(Event)
