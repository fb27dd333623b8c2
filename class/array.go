package class

import (
	"reflect"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/objective/errors"
	"github.com/wippyai/objective/internal/layout"
)

// Array is a fixed-length homogeneous sequence of an element class. Elements
// are packed with a stride equal to the element size.
type Array struct {
	element Class
	shape   reflect.Type
	layout  Layout
	length  int
	id      ID
}

// NewArray creates an array class of length elements.
func NewArray(element Class, length int) (*Array, error) {
	if element == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "array element class is nil")
	}
	if length < 0 {
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Class(element.String()).
			Value(length).
			Detail("negative array length %d", length).
			Build()
	}
	elemShape := element.Shape()
	if elemShape == nil || elemShape.Size() != element.Size() {
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Class(element.String()).
			Detail("element has no Go shape of %d bytes", element.Size()).
			Build()
	}

	size, ok := layout.SafeMul(element.Size(), uintptr(length))
	if !ok {
		return nil, errors.Overflow(errors.PhaseBuild, arrayName(element, length), "array size overflows")
	}
	l, err := NewLayout(size, element.Align())
	if err != nil {
		return nil, err
	}
	shape, err := layout.Array(elemShape, length)
	if err != nil {
		return nil, err
	}

	a := &Array{
		id:      NewID(),
		element: element,
		length:  length,
		layout:  l,
		shape:   shape,
	}

	Logger().Debug("array class built",
		zap.Stringer("array", a),
		zap.Stringer("id", a.id),
		zap.Uintptr("size", size))

	return a, nil
}

func arrayName(element Class, length int) string {
	return element.String() + "[" + strconv.Itoa(length) + "]"
}

func (a *Array) ID() ID                     { return a.id }
func (a *Array) Size() uintptr              { return a.layout.size }
func (a *Array) Align() uintptr             { return a.layout.align }
func (a *Array) Layout() Layout             { return a.layout }
func (a *Array) Type() (reflect.Type, bool) { return nil, false }
func (a *Array) Shape() reflect.Type        { return a.shape }
func (a *Array) String() string             { return arrayName(a.element, a.length) }

// Element returns the element class.
func (a *Array) Element() Class { return a.element }

// Len returns the number of elements.
func (a *Array) Len() int { return a.length }

func (a *Array) Attr(string) (Step, error) {
	return Step{}, errors.Unsupported(a.String(), "attribute")
}

func (a *Array) Item(index int) (Step, error) {
	if index < 0 || index >= a.length {
		return Step{}, errors.IndexOutOfBounds(a.String(), index, a.length)
	}
	return Step{Class: a.element, Offset: uintptr(index) * a.element.Size()}, nil
}

func (a *Array) Construct(slot Slot) {
	slot.Require(a.layout)
	stride := a.element.Size()
	for i := 0; i < a.length; i++ {
		a.element.Construct(slot.At(uintptr(i)*stride, stride))
	}
}

func (a *Array) Destroy(slot Slot) {
	slot.Require(a.layout)
	stride := a.element.Size()
	for i := a.length - 1; i >= 0; i-- {
		a.element.Destroy(slot.At(uintptr(i)*stride, stride))
	}
}
