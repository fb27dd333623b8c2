package handle

import (
	"sync"

	"github.com/wippyai/objective/class"
	"github.com/wippyai/objective/errors"
	"github.com/wippyai/objective/instance"
)

// store is the slot storage behind a Table. Freed handles are reused LIFO.
type store struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	inst    *instance.Instance
	classID class.ID
	valid   bool
}

func newStore() *store {
	return &store{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *store) create(inst *instance.Instance) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.Access("handle table", errors.ErrClosed)
	}

	e := entry{
		inst:    inst,
		classID: inst.Class().ID(),
		valid:   true,
	}

	if len(s.freeList) > 0 {
		h := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[h-1] = e
		return h, nil
	}

	if uint64(len(s.entries)) >= uint64(^Handle(0)) {
		return 0, errors.Overflow(errors.PhaseLifecycle, "handle table", "handle space exhausted")
	}
	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

func (s *store) get(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(h - 1)
	if idx >= len(s.entries) {
		return entry{}, false
	}
	e := s.entries[idx]
	if !e.valid {
		return entry{}, false
	}
	return e, true
}

func (s *store) drop(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(h - 1)
	if idx >= len(s.entries) {
		return entry{}, false
	}
	e := s.entries[idx]
	if !e.valid {
		return entry{}, false
	}
	s.entries[idx] = entry{}
	s.freeList = append(s.freeList, h)
	return e, true
}

// each calls fn for a snapshot of the valid entries, without holding the
// lock during the calls.
func (s *store) each(fn func(Handle, entry) bool) {
	s.mu.RLock()
	type pair struct {
		h Handle
		e entry
	}
	snapshot := make([]pair, 0, len(s.entries))
	for i, e := range s.entries {
		if e.valid {
			snapshot = append(snapshot, pair{Handle(i + 1), e})
		}
	}
	s.mu.RUnlock()

	for _, p := range snapshot {
		if !fn(p.h, p.e) {
			return
		}
	}
}

func (s *store) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) - len(s.freeList)
}

// close marks the store closed and returns the entries that were still live.
func (s *store) close() []entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var live []entry
	for _, e := range s.entries {
		if e.valid {
			live = append(live, e)
		}
	}
	s.entries = nil
	s.freeList = nil
	return live
}
