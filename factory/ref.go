package factory

import (
	"strconv"
	"sync/atomic"
)

// Ref is a reference-counted handle to a T.
// Each holder calls Clone to take a reference and Release to give it back;
// the value is freed when the count reaches zero.
type Ref[T any] struct {
	value atomic.Pointer[T]
	count atomic.Int32
}

func newRef[T any](v T) *Ref[T] {
	r := &Ref[T]{}
	r.value.Store(&v)
	r.count.Store(1)
	return r
}

// Value returns the referenced value, or nil once the last reference is released.
func (r *Ref[T]) Value() *T {
	return r.value.Load()
}

// Count returns the current number of holders.
func (r *Ref[T]) Count() int32 {
	return r.count.Load()
}

// Clone takes another reference and returns r.
// It panics if r was already released by its last holder.
// A failed Clone leaves the count unchanged.
func (r *Ref[T]) Clone() *Ref[T] {
	for {
		count := r.count.Load()
		if count < 1 {
			panic("factory: clone of released ref, count " + strconv.Itoa(int(count)))
		}
		if r.count.CompareAndSwap(count, count+1) {
			return r
		}
	}
}

// Release drops one reference and reports whether it was the last.
// The last release runs the value's Destroy hook and clears the value.
func (r *Ref[T]) Release() bool {
	count := r.count.Add(-1)
	switch {
	case count == 0:
		if obj := r.value.Swap(nil); obj != nil {
			runDestroyer(obj)
		}
		return true
	case count < 0:
		panic("factory: ref released too many times, count " + strconv.Itoa(int(count)))
	default:
		return false
	}
}
