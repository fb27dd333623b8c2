// Package errors provides structured error types for the object model.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The kinds mirror the classic dynamic-language taxonomy:
//
//	attribute_error  name not found on an aggregate class
//	index_error      index out of bounds for an array class
//	type_error       unsupported access kind, lens origin mismatch, untyped cast
//	value_error      cast to a Go type the leaf does not hold
//	access_error     lock poisoned, guard released, instance destroyed
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindAttribute).
//		Path("position", "w").
//		Class("Vec3").
//		Detail("no attribute %q", "w").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AttributeNotFound("Vec3", "w")
//	err := errors.IndexOutOfBounds("u8[4]", 4, 4)
//
// Match by kind with the sentinels:
//
//	if errors.Is(err, objerrors.ErrIndex) { ... }
//	if errors.Is(err, objerrors.ErrPoisoned) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
