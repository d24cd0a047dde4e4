package resource

// Handle is an index into a Table.
type Handle = int

// Invalid is returned when no slot could be produced.
const Invalid Handle = -1

// EventType distinguishes lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	if t == EventDropped {
		return "dropped"
	}
	return "created"
}

// Event describes one insert or remove.
type Event struct {
	Kind   string
	Handle Handle
	Type   EventType
}

// Observer receives lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnResourceEvent calls f.
func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is implemented by values that release something when removed
// from a table by Clear.
type Dropper interface {
	Drop()
}
