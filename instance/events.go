package instance

import "github.com/wippyai/objective/class"

// EventType identifies an instance lifecycle notification.
type EventType uint8

const (
	EventConstructed EventType = iota
	EventDestroyed
	EventPoisoned
	EventPoisonCleared
)

func (t EventType) String() string {
	switch t {
	case EventConstructed:
		return "constructed"
	case EventDestroyed:
		return "destroyed"
	case EventPoisoned:
		return "poisoned"
	case EventPoisonCleared:
		return "poison-cleared"
	default:
		return "unknown"
	}
}

// Event represents an instance lifecycle event.
type Event struct {
	Instance *Instance
	Class    class.Class
	Type     EventType
}

// Observer receives notifications about instance lifecycle events.
// Notifications are delivered synchronously on the goroutine that caused
// them, sometimes while the instance lock is held; observers must not
// acquire guards on the same instance.
type Observer interface {
	OnInstanceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnInstanceEvent(e Event) { f(e) }
