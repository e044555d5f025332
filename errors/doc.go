// Package errors provides structured error types for the wasm-bind library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the Go type involved, a detail message and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCreate, errors.KindNilPointer).
//		GoType("wasmbind.Accountant").
//		Detail("owned factory requires an accountant").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseResource, "handle", "7")
//	err := errors.Instantiation(cause)
//
// Errors returned by user constructors are never wrapped by this library;
// only failures the library detects itself are reported as *Error.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
