package core

// Key identifies a physical key after platform mapping.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyJump
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// EventType distinguishes the shapes of input events.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
)

// Event is a single input event.
type Event struct {
	Type EventType
	Key  Key
}

// Press builds a key press event.
func Press(k Key) Event {
	return Event{Type: EventKeyDown, Key: k}
}

// IsKeyDown reports whether e is a press of k.
func (e Event) IsKeyDown(k Key) bool {
	return e.Type == EventKeyDown && e.Key == k
}

// EventSource yields pending input events.
// Poll must not block: with nothing queued it returns ok == false.
type EventSource interface {
	Poll() (ev Event, ok bool)
}
