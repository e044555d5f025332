// Package wasmbind creates and destroys native Go objects under the memory
// accounting rules of an embedded WebAssembly host.
//
// # Architecture Overview
//
//	wasmbind/        Root package with the Accountant contract
//	├── factory/     Owned and Shared object factory policies
//	├── accounting/  Host memory accountants (Counter, Recorder)
//	├── resource/    Handle table binding factory objects to guest handles
//	├── runtime/     Isolate: wazero runtime + accountant + object table
//	├── errors/      Structured error types
//	└── cmd/objdemo  Command line demo and TUI
//
// # Ownership Modes
//
// An Owned factory heap-allocates one instance per Create and reports its
// static size to the host accountant; Destroy reports the same size negated.
// A Shared factory returns a reference-counted handle and never reports to
// the accountant, because the host cannot time a single destruction point
// for an object whose lifetime is decided by reference counting.
//
//	iso, _ := runtime.New(ctx, nil)
//	defer iso.Close(ctx)
//
//	counters := factory.NewOwned(factory.Infallible(newCounter))
//	c, err := counters.Create(iso, 5) // external memory +8
//	...
//	counters.Destroy(iso, c)          // external memory -8
//
// # Thread Safety
//
// Factories are stateless and safe for concurrent use. Concurrent Create and
// Destroy calls against one accountant rely on the accountant's own
// serialization; accounting.Counter and runtime.Isolate are safe for
// concurrent use. An Owned handle must not be shared between goroutines
// without external synchronization.
package wasmbind
