package factory

import (
	"reflect"
	"unsafe"

	wasmbind "github.com/wippyai/wasm-bind"
)

// Constructor builds a T from its argument value.
type Constructor[T, A any] func(args A) (T, error)

// Infallible adapts a constructor that cannot fail.
func Infallible[T, A any](fn func(A) T) Constructor[T, A] {
	return func(args A) (T, error) {
		return fn(args), nil
	}
}

// Destroyer is implemented by values that release resources of their own
// when the factory frees them.
type Destroyer interface {
	Destroy()
}

// Policy is the calling convention shared by both ownership modes.
// H is the handle type: *T for Owned, *Ref[T] for Shared.
type Policy[T, A, H any] interface {
	Mode() Mode
	Create(acc wasmbind.Accountant, args A) (H, error)
	Destroy(acc wasmbind.Accountant, h H)
}

var (
	_ Policy[int64, int64, *int64]      = (*Owned[int64, int64])(nil)
	_ Policy[int64, int64, *Ref[int64]] = (*Shared[int64, int64])(nil)
)

// Releaser is implemented by handles that carry their own reference count.
type Releaser interface {
	Release() bool
}

// Dispose destroys h through p. For shared handles it also gives back the
// reference the caller got from Create, so the last holder frees the value.
func Dispose[T, A, H any](p Policy[T, A, H], acc wasmbind.Accountant, h H) {
	p.Destroy(acc, h)
	if p.Mode() != ModeShared {
		return
	}
	if r, ok := any(h).(Releaser); ok {
		r.Release()
	}
}

// ObjectSize returns the static in-memory size of T in bytes.
// Memory T references indirectly is not included.
func ObjectSize[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func runDestroyer[T any](obj *T) {
	if d, ok := any(obj).(Destroyer); ok {
		d.Destroy()
	}
}
