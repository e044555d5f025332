package resource

import (
	"strconv"
	"sync"

	"github.com/wippyai/wasm-bind/errors"
)

// slots is the in-memory handle store behind Table. Freed handles are reused
// most-recent first.
type slots struct {
	entries  []slot
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type slot struct {
	value   any
	typeID  uint32
	borrows uint32
	live    bool
}

func newSlots() *slots {
	return &slots{
		entries:  make([]slot, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

func (s *slots) insert(typeID uint32, value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.PhaseResource, "table")
	}

	e := slot{typeID: typeID, value: value, live: true}

	if n := len(s.freeList); n > 0 {
		handle := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.entries[handle-1] = e
		return handle, nil
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

// lookup returns the live slot for handle. Callers hold s.mu.
func (s *slots) lookup(handle Handle) *slot {
	if handle == 0 || int(handle) > len(s.entries) {
		return nil
	}
	e := &s.entries[handle-1]
	if !e.live {
		return nil
	}
	return e
}

func (s *slots) get(handle Handle) (any, uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.lookup(handle)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.typeID, true
}

// take removes handle and returns its value. A borrowed handle stays in place.
func (s *slots) take(handle Handle) (any, uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(handle)
	if e == nil {
		return nil, 0, errors.NotFound(errors.PhaseResource, "handle", strconv.FormatUint(uint64(handle), 10))
	}
	if e.borrows > 0 {
		return nil, 0, errors.OutstandingBorrow(uint32(handle), e.borrows)
	}

	value, typeID := e.value, e.typeID
	*e = slot{}
	s.freeList = append(s.freeList, handle)
	return value, typeID, nil
}

func (s *slots) borrow(handle Handle) (any, uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(handle)
	if e == nil {
		return nil, 0, false
	}
	e.borrows++
	return e.value, e.typeID, true
}

func (s *slots) giveBack(handle Handle) (any, uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(handle)
	if e == nil || e.borrows == 0 {
		return nil, 0, false
	}
	e.borrows--
	return e.value, e.typeID, true
}

func (s *slots) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) - len(s.freeList)
}

// handles lists live handles in ascending order.
func (s *slots) handles() []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Handle, 0, len(s.entries)-len(s.freeList))
	for i, e := range s.entries {
		if e.live {
			out = append(out, Handle(i+1))
		}
	}
	return out
}

// close marks the store closed and hands back every live entry so the
// caller can drop values without holding the lock.
func (s *slots) close() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var dropped []Event
	for i, e := range s.entries {
		if e.live {
			dropped = append(dropped, Event{
				Type:   EventDropped,
				Handle: Handle(i + 1),
				TypeID: e.typeID,
				Value:  e.value,
			})
		}
	}
	s.entries = nil
	s.freeList = nil
	return dropped
}

func (s *slots) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
