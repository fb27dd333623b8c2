package class

import (
	"github.com/wippyai/objective/errors"
)

// Lens is a pre-resolved path from an origin class to a target class at a
// fixed byte offset. Lenses are immutable; Attr and Item return new lenses.
type Lens struct {
	origin Class
	class  Class
	path   Path
	offset uintptr
}

// LensOf returns the identity lens of c.
func LensOf(c Class) Lens {
	return Lens{origin: c, class: c}
}

// Zoom resolves path against c and returns the resulting lens.
func Zoom(c Class, path Path) (Lens, error) {
	return LensOf(c).Zoom(path)
}

func (l Lens) Origin() Class   { return l.origin }
func (l Lens) Class() Class    { return l.class }
func (l Lens) Offset() uintptr { return l.offset }
func (l Lens) Path() Path      { return l.path }

// AppliesTo reports whether l can be applied at a location of class c.
func (l Lens) AppliesTo(c Class) bool {
	return l.origin != nil && c != nil && l.origin.ID() == c.ID()
}

// Attr extends the lens by a member name.
func (l Lens) Attr(name string) (Lens, error) {
	return l.step(Attr(name))
}

// Item extends the lens by an element index.
func (l Lens) Item(index int) (Lens, error) {
	return l.step(Item(index))
}

// Zoom extends the lens by every selector in path, stopping at the first
// failure.
func (l Lens) Zoom(path Path) (Lens, error) {
	var err error
	for _, s := range path {
		if l, err = l.step(s); err != nil {
			return Lens{}, err
		}
	}
	return l, nil
}

func (l Lens) step(s Selector) (Lens, error) {
	path := l.path.Append(s)
	st, err := s.Resolve(l.class)
	if err != nil {
		return Lens{}, errors.WithPath(err, path.Strings())
	}
	return Lens{
		origin: l.origin,
		class:  st.Class,
		path:   path,
		offset: l.offset + st.Offset,
	}, nil
}

func (l Lens) String() string {
	if l.origin == nil {
		return "<nil lens>"
	}
	if len(l.path) == 0 {
		return l.origin.String()
	}
	if l.path[0].IsItem() {
		return l.origin.String() + l.path.String()
	}
	return l.origin.String() + "." + l.path.String()
}
