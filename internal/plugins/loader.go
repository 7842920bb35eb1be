package plugins

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// moduleSuffix is the dynamic-module extension discovery looks for.
const moduleSuffix = ".wasm"

// deriveName returns the registry key for a module path: its base name
// without the module suffix.
func deriveName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Loader opens dynamic plugin modules. The production implementation is
// WazeroLoader; tests substitute fakes.
type Loader interface {
	// Open loads, instantiates and contract-checks the module at path.
	Open(ctx context.Context, path string) (Module, error)

	// Close releases the loader and every module it produced.
	Close(ctx context.Context) error
}

// WazeroLoader loads wasm plugin modules into a shared wazero runtime with
// WASI and the host function module instantiated.
type WazeroLoader struct {
	runtime wazero.Runtime
}

// NewWazeroLoader creates the runtime and registers the host context module.
func NewWazeroLoader(ctx context.Context, host *HostFunctions) (*WazeroLoader, error) {
	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	if err := host.Register(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	return &WazeroLoader{runtime: rt}, nil
}

// Open reads, compiles and instantiates the module at path, then validates
// the plugin contract. Loader errors are returned verbatim for diagnostics.
func (l *WazeroLoader) Open(ctx context.Context, path string) (Module, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	compiled, err := l.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, err
	}

	// Start functions are suppressed; initialization runs through the
	// Initialize hook once dependencies have been checked.
	cfg := wazero.NewModuleConfig().
		WithName(deriveName(path)).
		WithStartFunctions()

	mod, err := l.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, err
	}

	inst, err := newInstance(mod)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}

	return inst, nil
}

// Close tears down the wazero runtime and all instantiated modules.
func (l *WazeroLoader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}
