package class

import (
	"reflect"

	"github.com/wippyai/objective/errors"
)

// Value is a leaf class backed by the Go type T. It supports neither
// attribute nor index access and is the only class kind that can be cast.
type Value[T any] struct {
	def    T
	typ    reflect.Type
	layout Layout
	id     ID
}

// ValueOption configures a Value class.
type ValueOption[T any] func(*Value[T])

// WithDefault sets the value written by Construct. Without it the zero value
// of T is used. The default is copied shallowly into every instance.
func WithDefault[T any](v T) ValueOption[T] {
	return func(c *Value[T]) {
		c.def = v
	}
}

// NewValue creates a leaf class for T.
func NewValue[T any](opts ...ValueOption[T]) *Value[T] {
	v := &Value[T]{
		id:     NewID(),
		typ:    reflect.TypeFor[T](),
		layout: LayoutOf[T](),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Value[T]) ID() ID                     { return v.id }
func (v *Value[T]) Size() uintptr              { return v.layout.size }
func (v *Value[T]) Align() uintptr             { return v.layout.align }
func (v *Value[T]) Layout() Layout             { return v.layout }
func (v *Value[T]) Type() (reflect.Type, bool) { return v.typ, true }
func (v *Value[T]) Shape() reflect.Type        { return v.typ }
func (v *Value[T]) String() string             { return v.typ.String() }

// Default returns the value written by Construct.
func (v *Value[T]) Default() T { return v.def }

func (v *Value[T]) Attr(string) (Step, error) {
	return Step{}, errors.Unsupported(v.String(), "attribute")
}

func (v *Value[T]) Item(int) (Step, error) {
	return Step{}, errors.Unsupported(v.String(), "index")
}

func (v *Value[T]) Construct(slot Slot) {
	slot.Require(v.layout)
	*(*T)(slot.Pointer()) = v.def
}

func (v *Value[T]) Destroy(slot Slot) {
	slot.Require(v.layout)
	p := (*T)(slot.Pointer())
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}
