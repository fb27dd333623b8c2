package layout

import (
	"fmt"
	"reflect"

	"github.com/wippyai/objective/errors"
)

// Field places a Go type at a fixed byte offset inside a shape.
type Field struct {
	Type   reflect.Type
	Offset uintptr
}

var alignTypes = []reflect.Type{
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[complex128](),
}

// alignType returns a Go type with exactly the given alignment.
func alignType(align uintptr) (reflect.Type, bool) {
	for _, t := range alignTypes {
		if uintptr(t.Align()) == align {
			return t, true
		}
	}
	return nil, false
}

// Struct builds a Go struct type of exactly size bytes with every field at
// its requested offset. Fields must be sorted by offset and must not overlap.
// Gaps are filled with byte arrays, so the garbage collector sees pointers only
// where a field's own type declares them.
//
// Zero-sized fields are dropped: they occupy no memory and a trailing
// zero-sized field would make reflect pad the struct.
func Struct(fields []Field, size, align uintptr) (reflect.Type, error) {
	var sf []reflect.StructField
	var want []uintptr

	if align > 1 && size > 0 {
		if t, ok := alignType(align); ok {
			sf = append(sf, reflect.StructField{Name: "Align", Type: reflect.ArrayOf(0, t)})
			want = append(want, 0)
		}
	}

	cur := uintptr(0)
	for i, f := range fields {
		if f.Type == nil {
			return nil, errors.InvalidInput(errors.PhaseBuild, fmt.Sprintf("field %d has no type", i))
		}
		fsize := f.Type.Size()
		if fsize == 0 {
			continue
		}
		if f.Offset < cur {
			return nil, errors.InvalidInput(errors.PhaseBuild,
				fmt.Sprintf("field %d at offset %d overlaps previous field ending at %d", i, f.Offset, cur))
		}
		if f.Offset%uintptr(f.Type.Align()) != 0 {
			return nil, errors.InvalidInput(errors.PhaseBuild,
				fmt.Sprintf("field %d at offset %d misaligned for %s", i, f.Offset, f.Type))
		}
		if f.Offset > cur {
			sf = append(sf, padField(len(sf), f.Offset-cur))
			want = append(want, cur)
		}
		sf = append(sf, reflect.StructField{Name: fmt.Sprintf("F%d", i), Type: f.Type})
		want = append(want, f.Offset)
		end, ok := SafeAdd(f.Offset, fsize)
		if !ok {
			return nil, errors.Overflow(errors.PhaseBuild, "", "field end overflows")
		}
		cur = end
	}

	if cur > size {
		return nil, errors.InvalidInput(errors.PhaseBuild,
			fmt.Sprintf("fields end at %d beyond size %d", cur, size))
	}
	if size > cur {
		sf = append(sf, padField(len(sf), size-cur))
		want = append(want, cur)
	}

	shape := reflect.StructOf(sf)
	if shape.Size() != size {
		return nil, errors.InvalidInput(errors.PhaseBuild,
			fmt.Sprintf("shape size %d differs from layout size %d", shape.Size(), size))
	}
	for i := range sf {
		if got := shape.Field(i).Offset; got != want[i] {
			return nil, errors.InvalidInput(errors.PhaseBuild,
				fmt.Sprintf("shape field %s placed at %d, want %d", sf[i].Name, got, want[i]))
		}
	}
	return shape, nil
}

func padField(n int, size uintptr) reflect.StructField {
	return reflect.StructField{
		Name: fmt.Sprintf("Pad%d", n),
		Type: reflect.ArrayOf(int(size), reflect.TypeFor[byte]()),
	}
}

// Array builds a Go array type of length elements of elem.
func Array(elem reflect.Type, length int) (reflect.Type, error) {
	if elem == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "array element has no type")
	}
	if length < 0 {
		return nil, errors.InvalidInput(errors.PhaseBuild, fmt.Sprintf("negative array length %d", length))
	}
	if _, ok := SafeMul(elem.Size(), uintptr(length)); !ok {
		return nil, errors.Overflow(errors.PhaseBuild, "", "array size overflows")
	}
	return reflect.ArrayOf(length, elem), nil
}
