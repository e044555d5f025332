// Package factory creates and destroys host-bound Go objects under one of two
// ownership policies.
//
// # Owned
//
// Owned heap-allocates one instance per Create and reports the static size
// of T to the host accountant. Destroy runs the instance's Destroy hook,
// reports the same size negated and clears the storage. Every Create must
// be paired with exactly one Destroy on the same pointer; double destroy and
// foreign pointers are not detected.
//
//	counters := factory.NewOwned(factory.Infallible(newCounter))
//	c, err := counters.Create(acc, 5) // acc: +8
//	counters.Destroy(acc, c)          // acc: -8
//
// # Shared
//
// Shared returns a reference-counted *Ref[T] and never calls the accountant.
// Its Destroy is a deliberate no-op so that code generic over Policy stays
// branch-free; the handle's own Release frees the value when the last
// holder lets go.
//
//	shared := factory.NewShared(factory.Infallible(newCounter))
//	r, _ := shared.Create(acc, 5) // acc untouched, r.Count() == 1
//	r2 := r.Clone()               // r.Count() == 2
//	shared.Destroy(acc, r)        // no-op
//
// # Constructors
//
// Constructor arguments are passed as a single value of type A. Use a struct
// for multiple arguments. A constructor error is returned unchanged and no
// accounting happens for a failed construction.
package factory
