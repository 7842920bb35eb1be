package plugins

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/strataview/strata/internal/config"
	"github.com/strataview/strata/internal/layers"
)

// HostFunctions is the host context exposed to plugin modules as the wasm
// module "env": structured logging, the per-plugin configuration store and
// the viewer's layer collection.
type HostFunctions struct {
	layers *layers.Manager
	store  *config.Store
	log    zerolog.Logger
}

// NewHostFunctions creates a host context provider. Layers and store may be
// nil for hosts that expose no layer or configuration access (the verify
// command does this).
func NewHostFunctions(lm *layers.Manager, store *config.Store, logger zerolog.Logger) *HostFunctions {
	return &HostFunctions{
		layers: lm,
		store:  store,
		log:    logger,
	}
}

// Register instantiates the env module on the given runtime.
func (h *HostFunctions) Register(ctx context.Context, runtime wazero.Runtime) error {
	builder := runtime.NewHostModuleBuilder("env")

	// Logging functions
	builder.NewFunctionBuilder().
		WithFunc(h.logDebug).
		Export("log_debug")

	builder.NewFunctionBuilder().
		WithFunc(h.logInfo).
		Export("log_info")

	builder.NewFunctionBuilder().
		WithFunc(h.logError).
		Export("log_error")

	// Per-plugin configuration store
	builder.NewFunctionBuilder().
		WithFunc(h.configGet).
		Export("config_get")

	builder.NewFunctionBuilder().
		WithFunc(h.configSet).
		Export("config_set")

	// Layer collection access
	builder.NewFunctionBuilder().
		WithFunc(h.layerAdd).
		Export("layer_add")

	builder.NewFunctionBuilder().
		WithFunc(h.layerRemove).
		Export("layer_remove")

	builder.NewFunctionBuilder().
		WithFunc(h.layerCount).
		Export("layer_count")

	if _, err := builder.Instantiate(ctx); err != nil {
		return fmt.Errorf("failed to instantiate host functions module: %w", err)
	}

	return nil
}

// readMemory safely reads bytes from plugin module memory.
func readMemory(mod api.Module, ptr, size uint32) ([]byte, error) {
	if mod == nil {
		return nil, fmt.Errorf("nil module")
	}

	memory := mod.Memory()
	if memory == nil {
		return nil, fmt.Errorf("no memory exported")
	}

	data, ok := memory.Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("failed to read memory at %d[%d]", ptr, size)
	}

	return data, nil
}

// allocWrite allocates guest memory via the module's Alloc export, writes
// data into it and returns the packed ptr/len result, 0 on failure.
func (h *HostFunctions) allocWrite(ctx context.Context, mod api.Module, data []byte) uint64 {
	allocFn := mod.ExportedFunction("Alloc")
	if allocFn == nil {
		h.log.Error().Str("plugin", mod.Name()).Msg("plugin has no Alloc export")
		return 0
	}
	results, err := allocFn.Call(ctx, uint64(len(data)))
	if err != nil || len(results) == 0 {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("guest allocation failed")
		return 0
	}
	ptr := api.DecodeU32(results[0])
	if !mod.Memory().Write(ptr, data) {
		h.log.Error().Str("plugin", mod.Name()).Msg("guest memory write failed")
		return 0
	}

	return uint64(ptr)<<32 | uint64(len(data))
}

func (h *HostFunctions) logDebug(_ context.Context, mod api.Module, ptr, size uint32) {
	h.logAt(zerolog.DebugLevel, mod, ptr, size)
}

func (h *HostFunctions) logInfo(_ context.Context, mod api.Module, ptr, size uint32) {
	h.logAt(zerolog.InfoLevel, mod, ptr, size)
}

func (h *HostFunctions) logError(_ context.Context, mod api.Module, ptr, size uint32) {
	h.logAt(zerolog.ErrorLevel, mod, ptr, size)
}

func (h *HostFunctions) logAt(level zerolog.Level, mod api.Module, ptr, size uint32) {
	data, err := readMemory(mod, ptr, size)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read plugin log message")
		return
	}
	h.log.WithLevel(level).
		Str("event", "plugin_log").
		Str("plugin", mod.Name()).
		Msg(string(data))
}

// configGet returns the calling plugin's stored configuration document as a
// packed ptr/len into guest memory, 0 on failure.
func (h *HostFunctions) configGet(ctx context.Context, mod api.Module) uint64 {
	if h.store == nil {
		return 0
	}
	doc, err := h.store.Get(mod.Name())
	if err != nil {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("config_get failed")
		return 0
	}

	return h.allocWrite(ctx, mod, doc)
}

// configSet stores the calling plugin's configuration document. Returns 1
// on success.
func (h *HostFunctions) configSet(_ context.Context, mod api.Module, ptr, size uint32) uint32 {
	if h.store == nil {
		return 0
	}
	doc, err := readMemory(mod, ptr, size)
	if err != nil {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("config_set: bad buffer")
		return 0
	}
	if err := h.store.Set(mod.Name(), doc); err != nil {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("config_set failed")
		return 0
	}

	return 1
}

// layerAdd appends a layer described by a JSON document {"name","type"}.
// Returns 1 on success.
func (h *HostFunctions) layerAdd(_ context.Context, mod api.Module, ptr, size uint32) uint32 {
	if h.layers == nil {
		return 0
	}
	doc, err := readMemory(mod, ptr, size)
	if err != nil {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("layer_add: bad buffer")
		return 0
	}

	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(doc, &req); err != nil || req.Name == "" {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("layer_add: bad request")
		return 0
	}

	h.layers.Add(layers.NewLayer(req.Name, layers.ParseType(req.Type)), -1)
	h.log.Debug().
		Str("event", "plugin_layer_add").
		Str("plugin", mod.Name()).
		Str("layer", req.Name).
		Msg("plugin added layer")

	return 1
}

// layerRemove removes the first layer with the given name. Returns 1 when a
// layer was removed.
func (h *HostFunctions) layerRemove(_ context.Context, mod api.Module, ptr, size uint32) uint32 {
	if h.layers == nil {
		return 0
	}
	name, err := readMemory(mod, ptr, size)
	if err != nil {
		h.log.Error().Err(err).Str("plugin", mod.Name()).Msg("layer_remove: bad buffer")
		return 0
	}
	if !h.layers.RemoveByName(string(name)) {
		return 0
	}

	return 1
}

// layerCount returns the number of layers in the collection.
func (h *HostFunctions) layerCount(_ context.Context, _ api.Module) uint32 {
	if h.layers == nil {
		return 0
	}

	return uint32(h.layers.Count())
}
