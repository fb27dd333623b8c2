package class

import (
	"fmt"
	"unsafe"
)

// Slot is a bounded view of raw memory handed to Construct and Destroy.
// It carries its own length so sub-slots can be range checked.
type Slot struct {
	ptr  unsafe.Pointer
	size uintptr
}

// NewSlot wraps size bytes at ptr. The caller guarantees the memory is live
// for as long as the slot is used.
func NewSlot(ptr unsafe.Pointer, size uintptr) Slot {
	if ptr == nil && size > 0 {
		panic("class: nil slot pointer")
	}
	return Slot{ptr: ptr, size: size}
}

func (s Slot) Pointer() unsafe.Pointer { return s.ptr }
func (s Slot) Len() uintptr            { return s.size }

// At returns the sub-slot [offset, offset+size). It panics if the range
// leaves the slot.
func (s Slot) At(offset, size uintptr) Slot {
	if offset > s.size || size > s.size-offset {
		panic(fmt.Sprintf("class: range [%d, %d+%d) outside slot of %d bytes", offset, offset, size, s.size))
	}
	return Slot{ptr: unsafe.Add(s.ptr, offset), size: size}
}

// Require panics unless the slot can hold a value of layout l.
func (s Slot) Require(l Layout) {
	if s.size < l.size {
		panic(fmt.Sprintf("class: slot of %d bytes too small for %s", s.size, l))
	}
	if l.align > 1 && uintptr(s.ptr)%l.align != 0 {
		panic(fmt.Sprintf("class: slot at %p not aligned for %s", s.ptr, l))
	}
}
