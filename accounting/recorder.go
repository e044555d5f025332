package accounting

import (
	"sync"

	wasmbind "github.com/wippyai/wasm-bind"
)

var _ wasmbind.Accountant = (*Recorder)(nil)

// Recorder keeps every delta it receives and forwards it to next.
// With a nil next it returns its own running sum.
type Recorder struct {
	next   wasmbind.Accountant
	deltas []int64
	sum    int64
	mu     sync.Mutex
}

// NewRecorder returns a Recorder forwarding to next, which may be nil.
func NewRecorder(next wasmbind.Accountant) *Recorder {
	return &Recorder{next: next}
}

// AdjustExternalMemory records delta and forwards it.
func (r *Recorder) AdjustExternalMemory(delta int64) int64 {
	r.mu.Lock()
	r.deltas = append(r.deltas, delta)
	r.sum += delta
	sum := r.sum
	r.mu.Unlock()

	if r.next != nil {
		return r.next.AdjustExternalMemory(delta)
	}
	return sum
}

// Deltas returns a copy of all recorded deltas in arrival order.
func (r *Recorder) Deltas() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.deltas))
	copy(out, r.deltas)
	return out
}

// Calls returns the number of recorded deltas.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deltas)
}

// Sum returns the net of all recorded deltas.
func (r *Recorder) Sum() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sum
}

// Reset discards recorded deltas. Forwarded totals are not affected.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deltas = nil
	r.sum = 0
}
