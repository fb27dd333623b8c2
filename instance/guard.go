package instance

import (
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
)

// guard is the state shared by a guard and every reference derived from it.
type guard struct {
	inst     *Instance
	released atomic.Bool
	poisoned bool
}

func (g *guard) check(c class.Class) error {
	if g.released.Load() {
		return errors.Access(c.String(), errors.ErrReleased)
	}
	return nil
}

func (g *guard) root() ref {
	return ref{g: g, class: g.inst.class}
}

// ReadGuard is shared access to an instance. Release it exactly once; every
// reference derived from it stops working afterwards.
//
// A guard is owned by one goroutine. References may be passed around but
// must not be used concurrently with Release.
type ReadGuard struct {
	guard
}

// Release gives up shared access. Extra calls are ignored.
func (g *ReadGuard) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.inst.mu.RUnlock()
	}
}

// Poisoned reports whether the instance was poisoned when the guard was
// acquired.
func (g *ReadGuard) Poisoned() bool { return g.poisoned }

// Root returns a reference to the whole value.
func (g *ReadGuard) Root() ReadReference { return ReadReference{g.root()} }

func (g *ReadGuard) Attr(name string) (ReadReference, error) { return g.Root().Attr(name) }
func (g *ReadGuard) Item(index int) (ReadReference, error)   { return g.Root().Item(index) }
func (g *ReadGuard) Path(p class.Path) (ReadReference, error) {
	return g.Root().Path(p)
}
func (g *ReadGuard) Through(l class.Lens) (ReadReference, error) {
	return g.Root().Through(l)
}

func (g *ReadGuard) target() (class.Class, unsafe.Pointer, error) { return g.root().target() }

// WriteGuard is exclusive access to an instance.
type WriteGuard struct {
	guard
}

// Release gives up exclusive access. Extra calls are ignored.
func (g *WriteGuard) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.inst.mu.Unlock()
	}
}

// Poisoned reports whether the instance was poisoned when the guard was
// acquired.
func (g *WriteGuard) Poisoned() bool { return g.poisoned }

// Root returns a mutable reference to the whole value.
func (g *WriteGuard) Root() WriteReference { return WriteReference{g.root()} }

func (g *WriteGuard) Attr(name string) (WriteReference, error) { return g.Root().Attr(name) }
func (g *WriteGuard) Item(index int) (WriteReference, error)   { return g.Root().Item(index) }
func (g *WriteGuard) Path(p class.Path) (WriteReference, error) {
	return g.Root().Path(p)
}
func (g *WriteGuard) Through(l class.Lens) (WriteReference, error) {
	return g.Root().Through(l)
}

func (g *WriteGuard) target() (class.Class, unsafe.Pointer, error) { return g.root().target() }
func (*WriteGuard) mutable()                                        {}
