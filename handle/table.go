package handle

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
	"github.com/wippyai/objective/instance"
)

// Table maps integer handles to instances it owns.
type Table struct {
	store     *store
	log       *zap.Logger
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		store: newStore(),
		log:   Logger(),
	}
}

// Insert takes ownership of inst and returns its handle.
func (t *Table) Insert(inst *instance.Instance) (Handle, error) {
	if inst == nil {
		return 0, errors.InvalidInput(errors.PhaseLifecycle, "nil instance")
	}
	h, err := t.store.create(inst)
	if err != nil {
		return 0, err
	}

	t.notify(Event{
		Type:     EventInserted,
		Handle:   h,
		ClassID:  inst.Class().ID(),
		Instance: inst,
	})
	return h, nil
}

// Get retrieves an instance by handle.
func (t *Table) Get(h Handle) (*instance.Instance, bool) {
	e, ok := t.store.get(h)
	return e.inst, ok
}

// GetTyped retrieves an instance only if its class is c.
func (t *Table) GetTyped(h Handle, c class.Class) (*instance.Instance, bool) {
	e, ok := t.store.get(h)
	if !ok || c == nil || e.classID != c.ID() {
		return nil, false
	}
	return e.inst, true
}

// Lookup is Get with an error for missing handles.
func (t *Table) Lookup(h Handle) (*instance.Instance, error) {
	e, ok := t.store.get(h)
	if !ok {
		return nil, errors.NotFound(errors.PhaseLifecycle, "handle", h)
	}
	return e.inst, nil
}

// Detach removes h without closing the instance; the caller becomes its
// owner.
func (t *Table) Detach(h Handle) (*instance.Instance, bool) {
	e, ok := t.store.drop(h)
	if !ok {
		return nil, false
	}
	t.notify(Event{
		Type:     EventDetached,
		Handle:   h,
		ClassID:  e.classID,
		Instance: e.inst,
	})
	return e.inst, true
}

// Remove removes h and closes its instance. Close waits for outstanding
// guards on the instance.
func (t *Table) Remove(h Handle) bool {
	e, ok := t.store.drop(h)
	if !ok {
		return false
	}
	t.closeInstance(h, e.inst)
	t.notify(Event{
		Type:     EventRemoved,
		Handle:   h,
		ClassID:  e.classID,
		Instance: e.inst,
	})
	return true
}

func (t *Table) closeInstance(h Handle, inst *instance.Instance) {
	if err := inst.Close(); err != nil {
		t.log.Warn("instance close failed",
			zap.Uint32("handle", uint32(h)),
			zap.Stringer("class", inst.Class()),
			zap.Error(err))
	}
}

// Subscribe adds an observer for table events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.store.count()
}

// Each iterates over a snapshot of the live handles until fn returns false.
func (t *Table) Each(fn func(Handle, *instance.Instance) bool) {
	t.store.each(func(h Handle, e entry) bool {
		return fn(h, e.inst)
	})
}

// Clear removes and closes every instance.
func (t *Table) Clear() {
	var handles []Handle
	t.store.each(func(h Handle, _ entry) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close closes every remaining instance and rejects further inserts.
func (t *Table) Close() error {
	live := t.store.close()
	for _, e := range live {
		t.closeInstance(0, e.inst)
	}
	if len(live) > 0 {
		t.log.Debug("handle table closed", zap.Int("closed", len(live)))
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}
