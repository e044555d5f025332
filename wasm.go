package wasmbind

// Accountant tracks memory allocated outside the host engine's managed heap.
// The engine uses the running total to decide when to start a collection
// cycle; it never owns or inspects the objects the deltas describe.
type Accountant interface {
	// AdjustExternalMemory adds delta (negative on release) to the running
	// total and returns the new total.
	AdjustExternalMemory(delta int64) int64
}

// AccountantFunc adapts a plain function to the Accountant interface.
type AccountantFunc func(delta int64) int64

// AdjustExternalMemory calls f(delta).
func (f AccountantFunc) AdjustExternalMemory(delta int64) int64 {
	return f(delta)
}
