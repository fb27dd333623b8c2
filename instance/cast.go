package instance

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
)

// Readable is any location a leaf value can be loaded from: read and write
// references and guards.
type Readable interface {
	target() (class.Class, unsafe.Pointer, error)
}

// Writable is a location that may be modified: write references and write
// guards.
type Writable interface {
	Readable
	mutable()
}

func typed[U any](r Readable) (*U, error) {
	c, ptr, err := r.target()
	if err != nil {
		return nil, err
	}
	typ, ok := c.Type()
	if !ok {
		return nil, withLocation(r, errors.Untyped(c.String()))
	}
	if want := reflect.TypeFor[U](); typ != want {
		return nil, withLocation(r, errors.WrongType(c.String(), want.String()))
	}
	return (*U)(ptr), nil
}

func withLocation(r Readable, err error) error {
	switch v := r.(type) {
	case ReadReference:
		return v.wrap(err)
	case WriteReference:
		return v.wrap(err)
	}
	return err
}

// Load returns a copy of the leaf value at r. It fails with a type error if
// the class at r is not a leaf and with a value error if the leaf does not
// hold a U.
func Load[U any](r Readable) (U, error) {
	p, err := typed[U](r)
	if err != nil {
		var zero U
		return zero, err
	}
	return *p, nil
}

// Cast returns a pointer to the leaf value at w. The pointer is valid only
// until the guard is released.
func Cast[U any](w Writable) (*U, error) {
	return typed[U](w)
}

// Store writes v to the leaf at w.
func Store[U any](w Writable, v U) error {
	p, err := typed[U](w)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
