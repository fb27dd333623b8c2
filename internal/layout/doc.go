// Package layout provides layout arithmetic and Go memory shapes for classes.
//
// # Layout Rules
//
// Members are laid out sequentially with padding for alignment:
//   - offset = AlignTo(end of previous member, member alignment)
//   - aggregate alignment = max member alignment (1 when empty)
//   - aggregate size = end of last member rounded up to the alignment
//
// All arithmetic is overflow-checked through SafeAdd/SafeMul/AlignToChecked.
//
// # Shapes
//
// A shape is a Go type whose memory representation matches a computed layout
// byte for byte. Allocating a shape with reflect.New gives the garbage
// collector an exact pointer map for the allocation, which is what makes it
// safe to store pointer-holding leaves (strings, slices, maps) inside a
// runtime-laid-out buffer.
//
// This package is internal to the object model.
package layout
