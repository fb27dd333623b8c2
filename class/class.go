package class

import (
	"fmt"
	"reflect"
)

// Metaclass is the construct/destroy half of a class. These two methods are
// the only place raw memory is written on behalf of a class.
//
//   - Construct expects a slot of at least Size() bytes aligned to Align() and
//     leaves it holding a valid value of the class.
//   - Destroy expects a slot previously constructed by the same class and not
//     yet destroyed, and releases everything the value holds.
//
// Implementations check the slot with Slot.Require and panic on violation; a
// failed precondition is a broken caller, not a recoverable error.
type Metaclass interface {
	Construct(slot Slot)
	Destroy(slot Slot)
}

// Step is a single resolution result: the class reached and its byte offset
// relative to the class that resolved it.
type Step struct {
	Class  Class
	Offset uintptr
}

// Accessor resolves a member name or an element index to one Step.
// Unsupported access kinds fail with a type_error.
type Accessor interface {
	Attr(name string) (Step, error)
	Item(index int) (Step, error)
}

// Class is an immutable runtime type descriptor.
//
// Two classes are the same type iff their IDs are equal; structurally
// identical classes built separately are distinct.
type Class interface {
	Metaclass
	Accessor
	fmt.Stringer

	ID() ID
	Size() uintptr
	Align() uintptr
	Layout() Layout

	// Type returns the Go type stored by a leaf class. Aggregates return
	// false: they have no type identity to cast to.
	Type() (reflect.Type, bool)

	// Shape returns a Go type whose memory representation has exactly
	// Size() bytes and carries the pointer map of the class. Instances
	// allocate their storage as a Shape so the garbage collector can see
	// pointers held by leaves.
	Shape() reflect.Type
}

// Destroyer is implemented (on the pointer receiver) by leaf types that hold
// resources beyond their memory. Value classes call Destroy before zeroing
// the slot.
type Destroyer interface {
	Destroy()
}
