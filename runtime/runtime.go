package runtime

import (
	"context"
	goruntime "runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmbind "github.com/wippyai/wasm-bind"
	"github.com/wippyai/wasm-bind/accounting"
	"github.com/wippyai/wasm-bind/errors"
	"github.com/wippyai/wasm-bind/resource"
)

var _ wasmbind.Accountant = (*Isolate)(nil)

// Isolate is one embedding context: a wazero runtime, its external memory
// accountant and its host object table.
type Isolate struct {
	runtime   wazero.Runtime
	host      api.Module
	counter   *accounting.Counter
	objects   *resource.Table
	log       *zap.Logger
	closeErr  error
	closeOnce sync.Once
	id        uuid.UUID
}

// New creates an isolate and instantiates its host module.
func New(ctx context.Context, cfg *Config) (*Isolate, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}

	id := uuid.New()
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}
	log = log.With(zap.Stringer("isolate", id))

	iso := &Isolate{
		id:      id,
		log:     log,
		objects: resource.NewTableWithLogger(log),
	}
	iso.counter = accounting.NewCounter(accounting.Options{
		Limit:      cfg.ExternalMemoryLimit,
		Logger:     log,
		OnPressure: pressureHandler(cfg, log),
	})

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	iso.runtime = wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	host, err := instantiateHost(ctx, iso)
	if err != nil {
		if closeErr := iso.runtime.Close(ctx); closeErr != nil {
			log.Warn("close runtime after failed host instantiation", zap.Error(closeErr))
		}
		return nil, errors.Instantiation(err)
	}
	iso.host = host

	log.Debug("isolate created",
		zap.Int64("external_limit", cfg.ExternalMemoryLimit),
		zap.Uint32("memory_limit_pages", cfg.MemoryLimitPages))
	return iso, nil
}

func pressureHandler(cfg *Config, log *zap.Logger) func(int64) {
	if cfg.OnMemoryPressure == nil && !cfg.CollectOnPressure {
		return nil
	}
	return func(total int64) {
		if cfg.OnMemoryPressure != nil {
			cfg.OnMemoryPressure(total)
		}
		if cfg.CollectOnPressure {
			log.Debug("collecting after memory pressure", zap.Int64("total", total))
			goruntime.GC()
		}
	}
}

// ID returns the isolate's unique identifier.
func (i *Isolate) ID() uuid.UUID {
	return i.id
}

// AdjustExternalMemory reports an allocation (positive) or release
// (negative) made outside the engine's heap and returns the new total.
func (i *Isolate) AdjustExternalMemory(delta int64) int64 {
	return i.counter.AdjustExternalMemory(delta)
}

// ExternalMemory returns the accounted external memory total.
func (i *Isolate) ExternalMemory() int64 {
	return i.counter.Total()
}

// Stats returns the accountant's statistics.
func (i *Isolate) Stats() accounting.Stats {
	return i.counter.Stats()
}

// Objects returns the isolate's host object table.
func (i *Isolate) Objects() *resource.Table {
	return i.objects
}

// Runtime returns the underlying wazero runtime for instantiating guests.
// Guests may import from the host module named HostModuleName.
func (i *Isolate) Runtime() wazero.Runtime {
	return i.runtime
}

// Logger returns the isolate's logger.
func (i *Isolate) Logger() *zap.Logger {
	return i.log
}

// Close destroys every object left in the table, then closes the wazero
// runtime. Subsequent calls return the first call's result.
func (i *Isolate) Close(ctx context.Context) error {
	i.closeOnce.Do(func() {
		live := i.objects.Len()
		if err := i.objects.Close(); err != nil {
			i.closeErr = errors.Wrap(errors.PhaseRuntime, errors.KindClosed, err, "close object table")
			return
		}
		if err := i.runtime.Close(ctx); err != nil {
			i.closeErr = errors.Wrap(errors.PhaseRuntime, errors.KindClosed, err, "close wazero runtime")
			return
		}
		i.log.Debug("isolate closed",
			zap.Int("dropped_objects", live),
			zap.Int64("external", i.counter.Total()))
	})
	return i.closeErr
}
