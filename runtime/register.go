package runtime

import (
	"github.com/wippyai/wasm-bind/factory"
	"github.com/wippyai/wasm-bind/resource"
)

// Register binds policy to the isolate's object table, with the isolate as
// accountant. Handles it issues can be dropped by guests through drop-object.
func Register[T, A, H any](iso *Isolate, typeID uint32, policy factory.Policy[T, A, H]) *resource.Bound[T, A, H] {
	return resource.Bind[T, A, H](iso.objects, typeID, policy, iso)
}

// RegisterOwned binds an Owned factory to the isolate.
func RegisterOwned[T, A any](iso *Isolate, typeID uint32, f *factory.Owned[T, A]) *resource.Bound[T, A, *T] {
	return resource.BindOwned(iso.objects, typeID, f, iso)
}

// RegisterShared binds a Shared factory to the isolate.
func RegisterShared[T, A any](iso *Isolate, typeID uint32, f *factory.Shared[T, A]) *resource.Bound[T, A, *factory.Ref[T]] {
	return resource.BindShared(iso.objects, typeID, f, iso)
}
