package class

import (
	"strconv"
	"sync/atomic"
)

// ID is a process-unique class identity. IDs start at 1 and are never reused.
type ID uint64

var lastID atomic.Uint64

// NewID returns the next identity from the process-wide counter.
func NewID() ID {
	id := lastID.Add(1)
	if id == 0 {
		panic("class: identity counter wrapped around")
	}
	return ID(id)
}

func (id ID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
