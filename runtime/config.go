package runtime

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-bind/errors"
)

// maxMemoryPages is the 4GB ceiling of 32-bit linear memory.
const maxMemoryPages = 65536

// Config holds configuration for isolate creation. A nil Config is valid.
type Config struct {
	// Logger receives isolate logs. Defaults to the package Logger().
	Logger *zap.Logger

	// OnMemoryPressure is called when the external memory total rises above
	// ExternalMemoryLimit.
	OnMemoryPressure func(total int64)

	// ExternalMemoryLimit is the soft limit in bytes for accounted external
	// memory. 0 disables pressure tracking.
	ExternalMemoryLimit int64

	// MemoryLimitPages caps guest linear memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// CollectOnPressure runs a Go garbage collection when pressure fires,
	// so shared values whose last holder is gone are reclaimed promptly.
	CollectOnPressure bool
}

func (c *Config) validate() error {
	if c == nil {
		return nil
	}
	if c.ExternalMemoryLimit < 0 {
		err := errors.InvalidInput(errors.PhaseConfig, "external memory limit must not be negative")
		err.Value = c.ExternalMemoryLimit
		return err
	}
	if c.MemoryLimitPages > maxMemoryPages {
		err := errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("memory limit %d exceeds %d pages", c.MemoryLimitPages, maxMemoryPages))
		err.Value = c.MemoryLimitPages
		return err
	}
	return nil
}
