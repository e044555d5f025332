package factory

import (
	"go.uber.org/zap"

	wasmbind "github.com/wippyai/wasm-bind"
	"github.com/wippyai/wasm-bind/errors"
)

// Shared creates reference-counted values. It never reports to the
// accountant: the host cannot use the signal when the last holder, not a
// single Destroy call, decides when the value dies.
type Shared[T, A any] struct {
	ctor Constructor[T, A]
	name string
}

// NewShared returns a Shared factory for T built by ctor.
func NewShared[T, A any](ctor Constructor[T, A]) *Shared[T, A] {
	return &Shared[T, A]{
		ctor: ctor,
		name: typeName[T](),
	}
}

// Mode returns ModeShared.
func (f *Shared[T, A]) Mode() Mode {
	return ModeShared
}

// Create constructs a T from args and returns a Ref with count 1.
// The accountant is accepted for signature parity and left untouched.
func (f *Shared[T, A]) Create(_ wasmbind.Accountant, args A) (*Ref[T], error) {
	if f == nil || f.ctor == nil {
		return nil, errors.NotInitialized(errors.PhaseCreate, "shared factory constructor")
	}

	value, err := f.ctor(args)
	if err != nil {
		return nil, err
	}

	if ce := Logger().Check(zap.DebugLevel, "shared object created"); ce != nil {
		ce.Write(zap.String("type", f.name))
	}
	return newRef(value), nil
}

// Destroy does nothing. The reference count of r alone decides when the
// value is freed; callers drop their hold with r.Release.
func (f *Shared[T, A]) Destroy(wasmbind.Accountant, *Ref[T]) {}
