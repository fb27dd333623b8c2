package class

import (
	"maps"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/objective/errors"
	"github.com/wippyai/objective/internal/layout"
)

// Member is a named, offset-assigned part of an Object.
type Member struct {
	Class  Class
	Name   string
	Offset uintptr
}

// Object is an aggregate class: an ordered sequence of named members laid out
// by sequential alignment padding. Objects are built with a Builder and are
// immutable afterwards.
type Object struct {
	base    *Object
	lookup  map[string]int
	shape   reflect.Type
	name    string
	members []Member
	layout  Layout
	id      ID
}

// NewObject freezes b into a new Object with a fresh identity. The builder
// may keep being used; later additions do not affect the returned Object.
func NewObject(b *Builder) (*Object, error) {
	if b == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "nil builder")
	}
	if b.err != nil {
		return nil, b.err
	}

	align := uintptr(1)
	for _, m := range b.members {
		align = max(align, m.Class.Align())
	}
	size, ok := layout.AlignToChecked(b.size, align)
	if !ok {
		return nil, errors.Overflow(errors.PhaseBuild, b.name, "padded object size overflows")
	}
	l, err := NewLayout(size, align)
	if err != nil {
		return nil, err
	}

	fields := make([]layout.Field, len(b.members))
	for i, m := range b.members {
		fields[i] = layout.Field{Type: m.Class.Shape(), Offset: m.Offset}
	}
	shape, err := layout.Struct(fields, size, align)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "object "+b.name+" has no Go shape")
	}

	o := &Object{
		id:      NewID(),
		name:    b.name,
		base:    b.base,
		members: slices.Clone(b.members),
		lookup:  maps.Clone(b.lookup),
		layout:  l,
		shape:   shape,
	}

	Logger().Debug("object class built",
		zap.String("name", o.name),
		zap.Stringer("id", o.id),
		zap.Uintptr("size", size),
		zap.Uintptr("align", align),
		zap.Int("members", len(o.members)))

	return o, nil
}

func (o *Object) ID() ID                     { return o.id }
func (o *Object) Size() uintptr              { return o.layout.size }
func (o *Object) Align() uintptr             { return o.layout.align }
func (o *Object) Layout() Layout             { return o.layout }
func (o *Object) Type() (reflect.Type, bool) { return nil, false }
func (o *Object) Shape() reflect.Type        { return o.shape }
func (o *Object) String() string             { return o.name }

// Name returns the name given to the builder.
func (o *Object) Name() string { return o.name }

// Base returns the object this one was inherited from, or nil.
func (o *Object) Base() *Object { return o.base }

// Members returns the members in declaration order, inherited ones first.
func (o *Object) Members() []Member { return slices.Clone(o.members) }

// NumMembers returns the number of members, including shadowed ones.
func (o *Object) NumMembers() int { return len(o.members) }

// Member returns the member a name resolves to.
func (o *Object) Member(name string) (Member, bool) {
	i, ok := o.lookup[name]
	if !ok {
		return Member{}, false
	}
	return o.members[i], true
}

func (o *Object) Attr(name string) (Step, error) {
	i, ok := o.lookup[name]
	if !ok {
		return Step{}, errors.AttributeNotFound(o.name, name)
	}
	m := o.members[i]
	return Step{Class: m.Class, Offset: m.Offset}, nil
}

func (o *Object) Item(int) (Step, error) {
	return Step{}, errors.Unsupported(o.name, "index")
}

func (o *Object) Construct(slot Slot) {
	slot.Require(o.layout)
	for _, m := range o.members {
		m.Class.Construct(slot.At(m.Offset, m.Class.Size()))
	}
}

func (o *Object) Destroy(slot Slot) {
	slot.Require(o.layout)
	for i := len(o.members) - 1; i >= 0; i-- {
		m := o.members[i]
		m.Class.Destroy(slot.At(m.Offset, m.Class.Size()))
	}
}

// Builder accumulates members for an Object. Errors are sticky: the first
// failing Add is reported by Err and by NewObject, later calls are ignored.
type Builder struct {
	err     error
	base    *Object
	lookup  map[string]int
	name    string
	members []Member
	size    uintptr
}

// NewBuilder starts an empty object named name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		lookup: make(map[string]int),
	}
}

// NewInheritBuilder starts an object that extends base: base's members come
// first and keep their offsets, new members are appended after them.
func NewInheritBuilder(name string, base *Object) *Builder {
	if base == nil {
		b := NewBuilder(name)
		b.err = errors.InvalidInput(errors.PhaseBuild, "object "+name+" inherits from nil base")
		return b
	}
	return &Builder{
		name:    name,
		base:    base,
		members: slices.Clone(base.members),
		lookup:  maps.Clone(base.lookup),
		size:    base.unpaddedSize(),
	}
}

// unpaddedSize is the end of the last member, before trailing padding.
func (o *Object) unpaddedSize() uintptr {
	if len(o.members) == 0 {
		return 0
	}
	last := o.members[len(o.members)-1]
	return last.Offset + last.Class.Size()
}

// Add appends a member. A name that is already present is rebound to the
// new member; the old member keeps its storage but is no longer reachable by
// name.
func (b *Builder) Add(name string, c Class) *Builder {
	if b.err != nil {
		return b
	}
	if c == nil {
		b.err = errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Class(b.name).
			Detail("member %q has no class", name).
			Build()
		return b
	}
	if !layout.IsPowerOfTwo(c.Align()) {
		b.err = errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Class(b.name).
			Detail("member %q has alignment %d", name, c.Align()).
			Build()
		return b
	}
	if s := c.Shape(); s == nil || s.Size() != c.Size() {
		b.err = errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Class(b.name).
			Detail("member %q: class %s has no Go shape of %d bytes", name, c, c.Size()).
			Build()
		return b
	}

	offset, ok := layout.AlignToChecked(b.size, c.Align())
	if !ok {
		b.err = errors.Overflow(errors.PhaseBuild, b.name, "member offset overflows")
		return b
	}
	end, ok := layout.SafeAdd(offset, c.Size())
	if !ok {
		b.err = errors.Overflow(errors.PhaseBuild, b.name, "object size overflows")
		return b
	}

	if prev, dup := b.lookup[name]; dup {
		Logger().Debug("member shadowed",
			zap.String("object", b.name),
			zap.String("member", name),
			zap.Int("previous", prev),
			zap.Int("index", len(b.members)))
	}

	b.lookup[name] = len(b.members)
	b.members = append(b.members, Member{Name: name, Class: c, Offset: offset})
	b.size = end
	return b
}

// Size returns the end of the last member added so far.
func (b *Builder) Size() uintptr { return b.size }

// Name returns the name of the object being built.
func (b *Builder) Name() string { return b.name }

// Err returns the first error recorded by Add.
func (b *Builder) Err() error { return b.err }
