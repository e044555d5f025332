package resource

import (
	"sync"

	"go.uber.org/zap"
)

// Table maps handles to host objects and reports lifecycle events.
type Table struct {
	slots     *slots
	log       *zap.Logger
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return NewTableWithLogger(nil)
}

// NewTableWithLogger creates an empty table that logs drop failures to log.
func NewTableWithLogger(log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{
		slots: newSlots(),
		log:   log,
	}
}

// Insert adds a value and returns its handle, or 0 if the table is closed.
func (t *Table) Insert(typeID uint32, value any) Handle {
	handle, err := t.slots.insert(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
	return handle
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	value, _, ok := t.slots.get(handle)
	return value, ok
}

// GetTyped retrieves a value only if it was inserted with typeID.
func (t *Table) GetTyped(handle Handle, typeID uint32) (any, bool) {
	value, actual, ok := t.slots.get(handle)
	if !ok || actual != typeID {
		return nil, false
	}
	return value, true
}

// TypeID returns the type a handle was inserted with.
func (t *Table) TypeID(handle Handle) (uint32, bool) {
	_, typeID, ok := t.slots.get(handle)
	return typeID, ok
}

// Drop removes handle, runs the value's Drop and notifies observers.
// It fails for unknown handles and for handles with outstanding borrows.
func (t *Table) Drop(handle Handle) error {
	_, err := t.remove(handle)
	return err
}

// Remove drops a resource and returns (value, true) if it was removed.
func (t *Table) Remove(handle Handle) (any, bool) {
	value, err := t.remove(handle)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (t *Table) remove(handle Handle) (any, error) {
	value, typeID, err := t.slots.take(handle)
	if err != nil {
		return nil, err
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
	return value, nil
}

// Borrow marks handle as lent out. A borrowed handle cannot be dropped
// until every borrow is returned.
func (t *Table) Borrow(handle Handle) bool {
	value, typeID, ok := t.slots.borrow(handle)
	if !ok {
		return false
	}
	t.notify(Event{Type: EventBorrowed, Handle: handle, TypeID: typeID, Value: value})
	return true
}

// ReturnBorrow ends one borrow of handle.
func (t *Table) ReturnBorrow(handle Handle) bool {
	value, typeID, ok := t.slots.giveBack(handle)
	if !ok {
		return false
	}
	t.notify(Event{Type: EventBorrowReturned, Handle: handle, TypeID: typeID, Value: value})
	return true
}

// Subscribe adds an observer for lifecycle events.
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
	return t.slots.len()
}

// Clear drops every handle that is not borrowed.
func (t *Table) Clear() {
	for _, h := range t.slots.handles() {
		if err := t.Drop(h); err != nil {
			t.log.Debug("clear skipped handle", zap.Uint32("handle", uint32(h)), zap.Error(err))
		}
	}
}

// Closed reports whether Close was called.
func (t *Table) Closed() bool {
	return t.slots.isClosed()
}

// Close drops every value, borrowed or not, and rejects further inserts.
func (t *Table) Close() error {
	dropped := t.slots.close()
	for _, e := range dropped {
		if d, ok := e.Value.(Dropper); ok {
			d.Drop()
		}
		t.notify(e)
	}
	if len(dropped) > 0 {
		t.log.Debug("table closed", zap.Int("dropped", len(dropped)))
	}
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
