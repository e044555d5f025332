package resource

import (
	"strconv"

	wasmbind "github.com/wippyai/wasm-bind"
	"github.com/wippyai/wasm-bind/errors"
	"github.com/wippyai/wasm-bind/factory"
)

// Bound creates values through a factory policy and keeps them in a table
// under one type ID. Dropping a handle destroys its value through the same
// policy and accountant that created it.
type Bound[T, A, H any] struct {
	table  *Table
	policy factory.Policy[T, A, H]
	acc    wasmbind.Accountant
	typeID uint32
}

// Bind ties policy and acc to table under typeID.
func Bind[T, A, H any](table *Table, typeID uint32, policy factory.Policy[T, A, H], acc wasmbind.Accountant) *Bound[T, A, H] {
	return &Bound[T, A, H]{
		table:  table,
		policy: policy,
		acc:    acc,
		typeID: typeID,
	}
}

// BindOwned binds an Owned factory; handles resolve to *T.
func BindOwned[T, A any](table *Table, typeID uint32, f *factory.Owned[T, A], acc wasmbind.Accountant) *Bound[T, A, *T] {
	return Bind[T, A, *T](table, typeID, f, acc)
}

// BindShared binds a Shared factory; handles resolve to *factory.Ref[T].
func BindShared[T, A any](table *Table, typeID uint32, f *factory.Shared[T, A], acc wasmbind.Accountant) *Bound[T, A, *factory.Ref[T]] {
	return Bind[T, A, *factory.Ref[T]](table, typeID, f, acc)
}

// boundValue is what the table stores for a Bound handle.
type boundValue[T, A, H any] struct {
	owner  *Bound[T, A, H]
	handle H
}

// Drop destroys the value through its policy. For shared values the table
// is one holder among others, so it also gives up its reference.
func (v *boundValue[T, A, H]) Drop() {
	factory.Dispose[T, A, H](v.owner.policy, v.owner.acc, v.handle)
}

// TypeID returns the type ID handles of this binding carry.
func (b *Bound[T, A, H]) TypeID() uint32 {
	return b.typeID
}

// Mode returns the ownership mode of the underlying policy.
func (b *Bound[T, A, H]) Mode() factory.Mode {
	return b.policy.Mode()
}

// New creates a value from args and returns its table handle.
// Constructor errors are returned unchanged.
func (b *Bound[T, A, H]) New(args A) (Handle, error) {
	h, err := b.policy.Create(b.acc, args)
	if err != nil {
		return 0, err
	}
	return b.insert(h)
}

// Share inserts another handle to the value behind handle. It only works
// for shared values: the new table entry takes its own reference.
func (b *Bound[T, A, H]) Share(handle Handle) (Handle, error) {
	v, err := b.lookup(handle)
	if err != nil {
		return 0, err
	}
	c, ok := any(v.handle).(interface{ Clone() H })
	if b.policy.Mode() != factory.ModeShared || !ok {
		return 0, errors.New(errors.PhaseResource, errors.KindInvalidInput).
			Detail("handle %d is not shareable in %s mode", handle, b.policy.Mode()).
			Value(uint32(handle)).
			Build()
	}
	return b.insert(c.Clone())
}

func (b *Bound[T, A, H]) insert(h H) (Handle, error) {
	v := &boundValue[T, A, H]{owner: b, handle: h}
	handle := b.table.Insert(b.typeID, v)
	if handle == 0 {
		v.Drop()
		return 0, errors.Closed(errors.PhaseResource, "table")
	}
	return handle, nil
}

// Get returns the factory handle stored under handle.
func (b *Bound[T, A, H]) Get(handle Handle) (H, bool) {
	v, err := b.lookup(handle)
	if err != nil {
		var zero H
		return zero, false
	}
	return v.handle, true
}

// Drop removes handle from the table and destroys its value.
func (b *Bound[T, A, H]) Drop(handle Handle) error {
	if _, err := b.lookup(handle); err != nil {
		return err
	}
	return b.table.Drop(handle)
}

func (b *Bound[T, A, H]) lookup(handle Handle) (*boundValue[T, A, H], error) {
	value, typeID, ok := b.table.slots.get(handle)
	if !ok {
		return nil, errors.NotFound(errors.PhaseResource, "handle", strconv.FormatUint(uint64(handle), 10))
	}
	if typeID != b.typeID {
		return nil, errors.TypeMismatch(errors.PhaseResource, nil, b.typeID, typeID)
	}
	v, ok := value.(*boundValue[T, A, H])
	if !ok {
		return nil, errors.New(errors.PhaseResource, errors.KindTypeMismatch).
			Detail("handle %d was not created by this binding", handle).
			Value(uint32(handle)).
			Build()
	}
	return v, nil
}
