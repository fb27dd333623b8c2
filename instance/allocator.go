package instance

import (
	"fmt"
	"reflect"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
)

// Block is one allocation: the memory handed to the class and whatever the
// allocator needs to keep to free it again.
type Block struct {
	Owner any
	Slot  class.Slot
}

// Allocator provides the backing storage of instances.
//
// Allocate returns memory of exactly l.Size() bytes aligned to l.Align().
// The shape describes where pointers live; an allocator that hides those
// pointers from the garbage collector must only be used with classes whose
// leaves hold no pointers. Free receives the same layout that was passed to
// Allocate.
type Allocator interface {
	Allocate(l class.Layout, shape reflect.Type) (Block, error)
	Free(b Block, l class.Layout)
}

// HeapAllocator allocates instances as Go values of the class shape.
type HeapAllocator struct{}

type heapBlock struct {
	value  reflect.Value
	layout class.Layout
	freed  bool
}

func (HeapAllocator) Allocate(l class.Layout, shape reflect.Type) (Block, error) {
	if shape == nil || shape.Size() != l.Size() {
		return Block{}, errors.New(errors.PhaseLifecycle, errors.KindInvalidInput).
			Detail("shape %v does not cover %s", shape, l).
			Build()
	}
	v := reflect.New(shape)
	ptr := v.UnsafePointer()
	if uintptr(ptr)%l.Align() != 0 {
		return Block{}, errors.New(errors.PhaseLifecycle, errors.KindInvalidInput).
			Detail("allocation at %p not aligned for %s", ptr, l).
			Build()
	}
	return Block{
		Slot:  class.NewSlot(ptr, l.Size()),
		Owner: &heapBlock{value: v, layout: l},
	}, nil
}

func (HeapAllocator) Free(b Block, l class.Layout) {
	hb, ok := b.Owner.(*heapBlock)
	if !ok {
		panic("instance: freeing a block not allocated by HeapAllocator")
	}
	if hb.freed {
		panic("instance: block freed twice")
	}
	if hb.layout != l {
		panic(fmt.Sprintf("instance: block allocated as %s freed as %s", hb.layout, l))
	}
	hb.freed = true
	hb.value = reflect.Value{}
}
