package class

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/objective/errors"
	"github.com/wippyai/objective/internal/layout"
)

// Layout is a validated (size, alignment) pair. The alignment is a power of
// two and the size is a multiple of it.
type Layout struct {
	size  uintptr
	align uintptr
}

// NewLayout validates size and align.
func NewLayout(size, align uintptr) (Layout, error) {
	if !layout.IsPowerOfTwo(align) {
		return Layout{}, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Value(align).
			Detail("alignment %d is not a power of two", align).
			Build()
	}
	if size%align != 0 {
		return Layout{}, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Value(size).
			Detail("size %d is not a multiple of alignment %d", size, align).
			Build()
	}
	return Layout{size: size, align: align}, nil
}

// LayoutOf returns the layout of the Go type T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{size: unsafe.Sizeof(zero), align: unsafe.Alignof(zero)}
}

func (l Layout) Size() uintptr  { return l.size }
func (l Layout) Align() uintptr { return l.align }

func (l Layout) String() string {
	return fmt.Sprintf("size=%d align=%d", l.size, l.align)
}
