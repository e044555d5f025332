package factory

import (
	"go.uber.org/zap"

	wasmbind "github.com/wippyai/wasm-bind"
	"github.com/wippyai/wasm-bind/errors"
)

// Owned creates exclusively owned *T values and reports their static size
// to the host accountant on Create and Destroy.
type Owned[T, A any] struct {
	ctor Constructor[T, A]
	name string
	size int64
}

// NewOwned returns an Owned factory for T built by ctor.
func NewOwned[T, A any](ctor Constructor[T, A]) *Owned[T, A] {
	return &Owned[T, A]{
		ctor: ctor,
		name: typeName[T](),
		size: ObjectSize[T](),
	}
}

// Mode returns ModeOwned.
func (f *Owned[T, A]) Mode() Mode {
	return ModeOwned
}

// Size returns the delta reported per object.
func (f *Owned[T, A]) Size() int64 {
	return f.size
}

// Create constructs a T from args on the heap and then adds Size to acc.
// A constructor error is returned as is, with nothing reported to acc.
func (f *Owned[T, A]) Create(acc wasmbind.Accountant, args A) (*T, error) {
	if f == nil || f.ctor == nil {
		return nil, errors.NotInitialized(errors.PhaseCreate, "owned factory constructor")
	}
	if acc == nil {
		return nil, errors.NilPointer(errors.PhaseCreate, []string{f.name}, "wasmbind.Accountant")
	}

	value, err := f.ctor(args)
	if err != nil {
		return nil, err
	}

	obj := new(T)
	*obj = value

	if f.size != 0 {
		total := acc.AdjustExternalMemory(f.size)
		if ce := Logger().Check(zap.DebugLevel, "owned object created"); ce != nil {
			ce.Write(
				zap.String("type", f.name),
				zap.Int64("size", f.size),
				zap.Int64("external", total))
		}
	}
	return obj, nil
}

// Destroy frees obj and subtracts Size from acc.
// obj must come from Create on a factory of the same type and must not have
// been destroyed before. A nil obj is ignored. With a nil acc the object is
// still freed, the delta is lost and a warning is logged.
func (f *Owned[T, A]) Destroy(acc wasmbind.Accountant, obj *T) {
	if obj == nil {
		return
	}

	runDestroyer(obj)

	switch {
	case f.size == 0:
	case acc == nil:
		Logger().Warn("owned object destroyed without accountant",
			zap.String("type", f.name),
			zap.Int64("size", f.size),
			zap.Error(errors.NilPointer(errors.PhaseDestroy, []string{f.name}, "wasmbind.Accountant")))
	default:
		total := acc.AdjustExternalMemory(-f.size)
		if ce := Logger().Check(zap.DebugLevel, "owned object destroyed"); ce != nil {
			ce.Write(
				zap.String("type", f.name),
				zap.Int64("size", f.size),
				zap.Int64("external", total))
		}
	}

	var zero T
	*obj = zero
}
