// Package runtime provides the embedding host: an Isolate owns one wazero
// runtime, the accountant for memory allocated outside it, and the table of
// host objects guests can refer to.
//
// # Quick Start
//
//	ctx := context.Background()
//	iso, err := runtime.New(ctx, &runtime.Config{
//	    ExternalMemoryLimit: 64 << 20,
//	    Logger:              logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer iso.Close(ctx)
//
//	counters := runtime.RegisterOwned(iso, 1, factory.NewOwned(ctor))
//	h, err := counters.New(5) // iso.ExternalMemory() == 8
//
// # Accounting
//
// Isolate implements wasmbind.Accountant, so it can be passed to any
// factory directly. When the running total rises above
// Config.ExternalMemoryLimit the isolate logs a warning, calls
// Config.OnMemoryPressure and, with CollectOnPressure, runs a Go collection.
//
// # Host Module
//
// Every isolate instantiates the host module "wasmbind:host" in its wazero
// runtime. Guests import from it:
//
//	external-memory() -> i64          running accounted total
//	live-objects() -> i32             live handles in the object table
//	drop-object(handle: i32) -> i32   1 if the handle was dropped
//
// # Thread Safety
//
// Isolate is safe for concurrent use. Closing the isolate destroys all
// objects still in its table before the wazero runtime is closed.
package runtime
