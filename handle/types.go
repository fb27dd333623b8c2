package handle

import (
	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/instance"
)

// Handle is an opaque reference to an instance in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for table notifications.
type EventType uint8

const (
	EventInserted EventType = iota
	EventRemoved
	EventDetached
)

// Event represents a table lifecycle event.
type Event struct {
	Instance *instance.Instance
	Handle   Handle
	ClassID  class.ID
	Type     EventType
}

// Observer receives notifications about table events.
type Observer interface {
	OnHandleEvent(Event)
}
