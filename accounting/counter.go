package accounting

import (
	"sync/atomic"

	"go.uber.org/zap"

	wasmbind "github.com/wippyai/wasm-bind"
)

var _ wasmbind.Accountant = (*Counter)(nil)

// Options configures a Counter. The zero value has no limit and no logging.
type Options struct {
	// OnPressure is called once each time the total rises above Limit.
	OnPressure func(total int64)
	// Logger receives a warning when the limit is crossed.
	Logger *zap.Logger
	// Limit is the soft limit in bytes. 0 disables pressure tracking.
	Limit int64
}

// Stats is a point-in-time view of a Counter.
type Stats struct {
	Total       int64
	Peak        int64
	Allocations uint64
	Releases    uint64
}

// Counter tracks externally allocated memory.
type Counter struct {
	onPressure  func(total int64)
	log         *zap.Logger
	limit       int64
	total       atomic.Int64
	peak        atomic.Int64
	allocations atomic.Uint64
	releases    atomic.Uint64
	pressured   atomic.Bool
}

// NewCounter creates a Counter with the given options.
func NewCounter(opts Options) *Counter {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Counter{
		onPressure: opts.OnPressure,
		log:        log,
		limit:      opts.Limit,
	}
}

// AdjustExternalMemory adds delta to the total and returns the new total.
// The total is not clamped; unbalanced releases can drive it negative.
func (c *Counter) AdjustExternalMemory(delta int64) int64 {
	total := c.total.Add(delta)

	switch {
	case delta > 0:
		c.allocations.Add(1)
		c.raisePeak(total)
	case delta < 0:
		c.releases.Add(1)
	}

	if c.limit > 0 {
		c.checkPressure(total)
	}
	return total
}

func (c *Counter) raisePeak(total int64) {
	for {
		peak := c.peak.Load()
		if total <= peak || c.peak.CompareAndSwap(peak, total) {
			return
		}
	}
}

func (c *Counter) checkPressure(total int64) {
	if total <= c.limit {
		c.pressured.Store(false)
		return
	}
	if !c.pressured.CompareAndSwap(false, true) {
		return
	}

	c.log.Warn("external memory above limit",
		zap.Int64("total", total),
		zap.Int64("limit", c.limit))
	if c.onPressure != nil {
		c.onPressure(total)
	}
}

// Total returns the current running total.
func (c *Counter) Total() int64 {
	return c.total.Load()
}

// Limit returns the configured soft limit.
func (c *Counter) Limit() int64 {
	return c.limit
}

// UnderPressure reports whether the total is above the limit.
func (c *Counter) UnderPressure() bool {
	return c.pressured.Load()
}

// Stats returns a snapshot of the counter.
func (c *Counter) Stats() Stats {
	return Stats{
		Total:       c.total.Load(),
		Peak:        c.peak.Load(),
		Allocations: c.allocations.Load(),
		Releases:    c.releases.Load(),
	}
}
