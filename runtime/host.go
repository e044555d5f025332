package runtime

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bind/errors"
	"github.com/wippyai/wasm-bind/resource"
)

// HostModuleName is the module guests import isolate functions from.
const HostModuleName = "wasmbind:host"

// Host function names exported by HostModuleName.
const (
	FuncExternalMemory = "external-memory"
	FuncLiveObjects    = "live-objects"
	FuncDropObject     = "drop-object"
)

func instantiateHost(ctx context.Context, iso *Isolate) (api.Module, error) {
	mod, err := iso.runtime.NewHostModuleBuilder(HostModuleName).
		NewFunctionBuilder().
		WithFunc(func(context.Context) int64 {
			return iso.counter.Total()
		}).
		Export(FuncExternalMemory).
		NewFunctionBuilder().
		WithFunc(func(context.Context) uint32 {
			return uint32(iso.objects.Len())
		}).
		Export(FuncLiveObjects).
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, handle uint32) uint32 {
			if err := iso.objects.Drop(resource.Handle(handle)); err != nil {
				iso.log.Debug("guest drop rejected",
					zap.Uint32("handle", handle),
					zap.Error(err))
				return 0
			}
			return 1
		}).
		WithParameterNames("handle").
		Export(FuncDropObject).
		Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(errors.PhaseHost, HostModuleName, err)
	}
	return mod, nil
}

// CallHost invokes a host module function the way a guest import would.
func (i *Isolate) CallHost(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn := i.host.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseHost, "host function", name)
	}
	return fn.Call(ctx, params...)
}
