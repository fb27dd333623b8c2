// Package instance owns constructed values of runtime classes and controls
// access to them.
//
// An Instance allocates storage for its class, constructs it, and keeps it
// behind a reader/writer lock until Close destroys it:
//
//	inst := instance.New(foo)
//	defer inst.Close()
//
//	w, err := inst.Write()
//	if err != nil {
//	    return err
//	}
//	b, _ := w.Attr("b")
//	_ = instance.Store(b, int32(7))
//	w.Release()
//
// # Guards and references
//
// Read and Write return guards. A guard navigates to references with Attr,
// Item, Path and Through; references keep navigating the same way. Every
// reference is tied to its guard and fails with an access error wrapping
// ErrReleased once the guard is released.
//
// Leaves are read and written with the generic Load, Cast and Store, or
// dynamically with Interface and Set. Casting through an aggregate is a type
// error; casting to the wrong Go type is a value error.
//
// # Poisoning
//
// If the function passed to Update panics, the instance is poisoned. Later
// acquisitions still return a usable guard but report an access error
// wrapping ErrPoisoned, until ClearPoison is called. View and Update refuse
// to run on a poisoned instance.
//
// # Storage
//
// The default HeapAllocator allocates each instance as a Go value of the
// class shape, so strings, slices and pointers stored in leaves stay visible
// to the garbage collector. Custom allocators receive the same layout at
// Allocate and Free.
package instance
