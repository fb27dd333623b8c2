package instance

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
)

// ref is a location inside a guarded instance: a class at a byte offset from
// the start of the instance, plus the path that led there.
type ref struct {
	g      *guard
	class  class.Class
	path   class.Path
	offset uintptr
}

// Class returns the class at the referenced location.
func (r ref) Class() class.Class { return r.class }

// Offset returns the byte offset of the location within the instance.
func (r ref) Offset() uintptr { return r.offset }

// Location returns the path from the instance root.
func (r ref) Location() class.Path { return r.path }

// Interface returns a copy of the leaf value.
func (r ref) Interface() (any, error) {
	c, ptr, err := r.target()
	if err != nil {
		return nil, err
	}
	typ, ok := c.Type()
	if !ok {
		return nil, r.wrap(errors.Untyped(c.String()))
	}
	return reflect.NewAt(typ, ptr).Elem().Interface(), nil
}

func (r ref) target() (class.Class, unsafe.Pointer, error) {
	if err := r.g.check(r.class); err != nil {
		return nil, nil, r.wrap(err)
	}
	return r.class, unsafe.Add(r.g.inst.block.Slot.Pointer(), r.offset), nil
}

func (r ref) wrap(err error) error {
	return errors.WithPath(err, r.path.Strings())
}

func (r ref) step(s class.Selector) (ref, error) {
	if err := r.g.check(r.class); err != nil {
		return ref{}, r.wrap(err)
	}
	path := r.path.Append(s)
	st, err := s.Resolve(r.class)
	if err != nil {
		return ref{}, errors.WithPath(err, path.Strings())
	}
	return ref{g: r.g, class: st.Class, path: path, offset: r.offset + st.Offset}, nil
}

func (r ref) zoom(p class.Path) (ref, error) {
	var err error
	for _, s := range p {
		if r, err = r.step(s); err != nil {
			return ref{}, err
		}
	}
	return r, nil
}

func (r ref) through(l class.Lens) (ref, error) {
	if err := r.g.check(r.class); err != nil {
		return ref{}, r.wrap(err)
	}
	if !l.AppliesTo(r.class) {
		origin := "<nil>"
		if l.Origin() != nil {
			origin = l.Origin().String()
		}
		return ref{}, r.wrap(errors.OriginMismatch(origin, r.class.String()))
	}
	return ref{
		g:      r.g,
		class:  l.Class(),
		path:   r.path.Append(l.Path()...),
		offset: r.offset + l.Offset(),
	}, nil
}

// ReadReference is a read-only location inside an instance. It is valid
// until the guard it came from is released.
type ReadReference struct {
	ref
}

func (r ReadReference) Attr(name string) (ReadReference, error) {
	n, err := r.step(class.Attr(name))
	return ReadReference{n}, err
}

func (r ReadReference) Item(index int) (ReadReference, error) {
	n, err := r.step(class.Item(index))
	return ReadReference{n}, err
}

// Path follows every selector of p.
func (r ReadReference) Path(p class.Path) (ReadReference, error) {
	n, err := r.zoom(p)
	return ReadReference{n}, err
}

// Through applies a lens whose origin is the class at r.
func (r ReadReference) Through(l class.Lens) (ReadReference, error) {
	n, err := r.through(l)
	return ReadReference{n}, err
}

// WriteReference is a mutable location inside an instance. It is valid until
// the guard it came from is released.
type WriteReference struct {
	ref
}

func (r WriteReference) Attr(name string) (WriteReference, error) {
	n, err := r.step(class.Attr(name))
	return WriteReference{n}, err
}

func (r WriteReference) Item(index int) (WriteReference, error) {
	n, err := r.step(class.Item(index))
	return WriteReference{n}, err
}

// Path follows every selector of p.
func (r WriteReference) Path(p class.Path) (WriteReference, error) {
	n, err := r.zoom(p)
	return WriteReference{n}, err
}

// Through applies a lens whose origin is the class at r.
func (r WriteReference) Through(l class.Lens) (WriteReference, error) {
	n, err := r.through(l)
	return WriteReference{n}, err
}

// ReadOnly returns a read-only view of the same location.
func (r WriteReference) ReadOnly() ReadReference { return ReadReference(r) }

// Set stores v at a leaf location. The dynamic type of v must be exactly the
// leaf type.
func (r WriteReference) Set(v any) error {
	c, ptr, err := r.target()
	if err != nil {
		return err
	}
	typ, ok := c.Type()
	if !ok {
		return r.wrap(errors.Untyped(c.String()))
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return r.wrap(errors.WrongType(c.String(), "nil"))
	}
	if rv.Type() != typ {
		return r.wrap(errors.WrongType(c.String(), rv.Type().String()))
	}
	reflect.NewAt(typ, ptr).Elem().Set(rv)
	return nil
}

func (WriteReference) mutable() {}
