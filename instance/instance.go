package instance

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
)

// State is the lifecycle stage of an instance.
type State uint32

const (
	StateUninitialized State = iota
	StateConstructed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConstructed:
		return "constructed"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", uint32(s))
	}
}

// Instance owns one constructed value of a class behind a reader/writer
// lock. All access goes through guards obtained from Read, Write, TryRead or
// TryWrite.
type Instance struct {
	class    class.Class
	alloc    Allocator
	observer Observer
	log      *zap.Logger
	block    Block
	mu       sync.RWMutex
	state    atomic.Uint32
	poisoned atomic.Bool
}

// New allocates and constructs an instance of c with the default
// configuration.
func New(c class.Class) *Instance {
	return NewWithConfig(c, nil)
}

// NewWithConfig allocates and constructs an instance of c.
//
// Allocation failure and a panicking Construct are fatal: New panics and
// nothing is torn down.
func NewWithConfig(c class.Class, cfg *Config) *Instance {
	if c == nil {
		panic("instance: nil class")
	}

	inst := &Instance{
		class: c,
		alloc: HeapAllocator{},
		log:   Logger(),
	}
	if cfg != nil {
		if cfg.Allocator != nil {
			inst.alloc = cfg.Allocator
		}
		if cfg.Observer != nil {
			inst.observer = cfg.Observer
		}
		if cfg.Logger != nil {
			inst.log = cfg.Logger
		}
	}

	block, err := inst.alloc.Allocate(c.Layout(), c.Shape())
	if err != nil {
		inst.log.Error("instance allocation failed",
			zap.Stringer("class", c),
			zap.Error(err))
		panic(err)
	}
	inst.block = block
	inst.construct()

	inst.state.Store(uint32(StateConstructed))
	inst.log.Debug("instance constructed",
		zap.Stringer("class", c),
		zap.Stringer("id", c.ID()),
		zap.Uintptr("size", c.Size()))
	inst.notify(EventConstructed)

	return inst
}

func (i *Instance) construct() {
	defer func() {
		if r := recover(); r != nil {
			i.log.Error("construct panicked",
				zap.Stringer("class", i.class),
				zap.Any("panic", r))
			panic(r)
		}
	}()
	i.class.Construct(i.block.Slot)
}

// Class returns the class of the instance.
func (i *Instance) Class() class.Class { return i.class }

// State returns the lifecycle stage.
func (i *Instance) State() State { return State(i.state.Load()) }

// Poisoned reports whether a writer panicked inside Update.
func (i *Instance) Poisoned() bool { return i.poisoned.Load() }

// ClearPoison marks the data as consistent again. It is the only way to
// clear the poison flag.
func (i *Instance) ClearPoison() {
	if i.poisoned.CompareAndSwap(true, false) {
		i.log.Info("instance poison cleared", zap.Stringer("class", i.class))
		i.notify(EventPoisonCleared)
	}
}

// Read blocks until shared access is available.
//
// On a poisoned instance the guard is returned together with an access error
// wrapping ErrPoisoned; the guard is usable and must still be released.
func (i *Instance) Read() (*ReadGuard, error) {
	i.mu.RLock()
	return i.readGuard()
}

// TryRead is Read without blocking. It fails with ErrWouldBlock while a
// writer holds the lock.
func (i *Instance) TryRead() (*ReadGuard, error) {
	if !i.mu.TryRLock() {
		return nil, errors.Access(i.class.String(), errors.ErrWouldBlock)
	}
	return i.readGuard()
}

// Write blocks until exclusive access is available. Poisoning is reported as
// for Read.
func (i *Instance) Write() (*WriteGuard, error) {
	i.mu.Lock()
	return i.writeGuard()
}

// TryWrite is Write without blocking. It fails with ErrWouldBlock while any
// guard is held.
func (i *Instance) TryWrite() (*WriteGuard, error) {
	if !i.mu.TryLock() {
		return nil, errors.Access(i.class.String(), errors.ErrWouldBlock)
	}
	return i.writeGuard()
}

func (i *Instance) readGuard() (*ReadGuard, error) {
	if i.State() != StateConstructed {
		i.mu.RUnlock()
		return nil, errors.Access(i.class.String(), errors.ErrDestroyed)
	}
	g := &ReadGuard{guard: guard{inst: i, poisoned: i.poisoned.Load()}}
	if g.poisoned {
		return g, errors.Access(i.class.String(), errors.ErrPoisoned)
	}
	return g, nil
}

func (i *Instance) writeGuard() (*WriteGuard, error) {
	if i.State() != StateConstructed {
		i.mu.Unlock()
		return nil, errors.Access(i.class.String(), errors.ErrDestroyed)
	}
	g := &WriteGuard{guard: guard{inst: i, poisoned: i.poisoned.Load()}}
	if g.poisoned {
		return g, errors.Access(i.class.String(), errors.ErrPoisoned)
	}
	return g, nil
}

// View runs fn with a read guard that is released when fn returns or
// panics. fn is not run on a poisoned instance.
func (i *Instance) View(fn func(*ReadGuard) error) error {
	g, err := i.Read()
	if err != nil {
		if g != nil {
			g.Release()
		}
		return err
	}
	defer g.Release()
	return fn(g)
}

// Update runs fn with a write guard that is released when fn returns. If fn
// panics the instance is poisoned, the guard is released and the panic
// continues. fn is not run on a poisoned instance.
func (i *Instance) Update(fn func(*WriteGuard) error) error {
	g, err := i.Write()
	if err != nil {
		if g != nil {
			g.Release()
		}
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			i.poison(r)
			g.Release()
			panic(r)
		}
		g.Release()
	}()
	return fn(g)
}

func (i *Instance) poison(reason any) {
	if i.poisoned.CompareAndSwap(false, true) {
		i.log.Warn("instance poisoned",
			zap.Stringer("class", i.class),
			zap.Any("panic", reason))
		i.notify(EventPoisoned)
	}
}

// Close destroys the value and frees its storage. It waits for every guard
// to be released. Closing twice is a no-op.
func (i *Instance) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.State() != StateConstructed {
		return nil
	}

	l := i.class.Layout()
	i.class.Destroy(i.block.Slot)
	i.alloc.Free(i.block, l)
	i.block = Block{}
	i.state.Store(uint32(StateDestroyed))

	i.log.Debug("instance destroyed", zap.Stringer("class", i.class))
	i.notify(EventDestroyed)
	return nil
}

func (i *Instance) notify(t EventType) {
	if i.observer == nil {
		return
	}
	i.observer.OnInstanceEvent(Event{
		Type:     t,
		Instance: i,
		Class:    i.class,
	})
}
