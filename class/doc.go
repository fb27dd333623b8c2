// Package class describes runtime types: their layout, construction,
// destruction and member resolution.
//
// Three kinds of class are provided:
//
//   - Value[T] is a leaf holding a Go value of type T.
//   - Object is an aggregate of named members, built with a Builder and
//     optionally extending a base Object.
//   - Array is a fixed-length sequence of one element class.
//
// Every class has a process-unique ID. Type identity is ID identity, so two
// objects with the same members are still different classes.
//
// # Layout
//
// Object members are placed in declaration order, each at the next offset
// aligned to its own alignment. The object's alignment is the largest member
// alignment (1 when empty) and its size is the end of the last member rounded
// up to that alignment. Array elements are packed at a stride of the element
// size.
//
// Classes also expose a Shape: a Go type with the same size and with the
// pointers of their leaves at the same offsets. Storage for a class should be
// allocated as its Shape so the garbage collector sees those pointers.
//
// # Resolution
//
// Attr and Item resolve one step. A Lens composes steps from an origin class
// into a single (class, offset) pair that can be applied repeatedly without
// re-resolving names:
//
//	l, err := class.Zoom(particle, class.Path{class.Attr("position"), class.Attr("x")})
//
// Errors from resolution are *errors.Error values carrying the path at which
// resolution failed.
package class
