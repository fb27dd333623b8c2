// Package objective is a runtime object model: types described at run time,
// values laid out in memory by those descriptions, and guarded access to
// them.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	objective/
//	├── class/           Class descriptors: Value, Object (with Builder), Array, Lens, Path
//	├── instance/        Owned instances, read/write guards, references, casting
//	├── handle/          Integer handle table owning instances
//	├── errors/          Structured error types for debugging
//	├── internal/layout/ Alignment arithmetic and Go shapes for layouts
//	└── cmd/objinspect/  Command line inspector for built-in schemas
//
// # Quick Start
//
// Describe a type, create an instance, and access a member:
//
//	foo, err := class.NewObject(class.NewBuilder("Foo").
//	    Add("a", class.NewValue[uint64]()).
//	    Add("b", class.NewValue[int32]()).
//	    Add("c", class.NewValue[int32]()))
//	if err != nil {
//	    return err
//	}
//
//	inst := instance.New(foo)
//	defer inst.Close()
//
//	err = inst.Update(func(w *instance.WriteGuard) error {
//	    b, err := w.Attr("b")
//	    if err != nil {
//	        return err
//	    }
//	    return instance.Store(b, int32(42))
//	})
//
// # Lenses
//
// Paths that are followed repeatedly can be resolved once into a Lens and
// applied to any instance of the origin class:
//
//	lens, err := class.Zoom(foo, class.Path{class.Attr("c")})
//
//	r, _ := inst.Read()
//	c, _ := r.Through(lens)
//	v, _ := instance.Load[int32](c)
//	r.Release()
//
// # Error Handling
//
// Errors are *errors.Error values with a phase and a kind. Match kinds with
// errors.Is:
//
//	if errors.Is(err, objerrors.ErrAttribute) { ... }
//	if errors.Is(err, objerrors.ErrPoisoned) { ... }
//
// # Thread Safety
//
// Classes are immutable and may be shared between goroutines. Instances
// allow many readers or one writer. Guards and the references derived from
// them belong to the goroutine that acquired them.
package objective
