package plugins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/strataview/strata/pkg/strataplugin"
)

// requiredExports is the plugin contract: every module must export these.
var requiredExports = []string{
	"Alloc",
	"Free",
	"Metadata",
	"Initialize",
	"Shutdown",
	"SetEnabled",
	"IsEnabled",
}

// Instance is the wazero-backed Module implementation. It holds the
// instantiated wasm module and its resolved contract exports.
type Instance struct {
	module api.Module
	fns    map[string]api.Function
}

// newInstance validates the plugin contract against the instantiated module
// and resolves the required exports. The caller closes the module when the
// contract is not satisfied.
func newInstance(mod api.Module) (*Instance, error) {
	inst := &Instance{
		module: mod,
		fns:    make(map[string]api.Function, len(requiredExports)),
	}
	for _, name := range requiredExports {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			return nil, fmt.Errorf("%w: missing export %s", ErrContract, name)
		}
		inst.fns[name] = fn
	}

	return inst, nil
}

// HasExport reports whether the module exports the named function.
func (i *Instance) HasExport(name string) bool {
	return i.export(name) != nil
}

func (i *Instance) export(name string) api.Function {
	if fn, ok := i.fns[name]; ok {
		return fn
	}
	fn := i.module.ExportedFunction(name)
	if fn != nil {
		i.fns[name] = fn
	}

	return fn
}

// call invokes an export and returns its single result.
func (i *Instance) call(ctx context.Context, name string, params ...uint64) (uint64, error) {
	fn := i.export(name)
	if fn == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return 0, fmt.Errorf("%s failed: %w", name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0], nil
}

// readPacked invokes an export returning a packed ptr/len result and copies
// the referenced bytes out of guest memory.
func (i *Instance) readPacked(ctx context.Context, name string, params ...uint64) ([]byte, error) {
	packed, err := i.call(ctx, name, params...)
	if err != nil {
		return nil, err
	}
	ptr, size := strataplugin.UnpackResult(packed)
	if size == 0 {
		return nil, nil
	}
	data, ok := i.module.Memory().Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("%s: memory read failed at %d[%d]", name, ptr, size)
	}

	// The view aliases guest memory; copy before the guest reuses it.
	return append([]byte(nil), data...), nil
}

// writeBuffer allocates guest memory through the module's Alloc export and
// writes data into it, returning the guest pointer.
func (i *Instance) writeBuffer(ctx context.Context, data []byte) (uint32, error) {
	results, err := i.fns["Alloc"].Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("alloc failed: %w", err)
	}
	if len(results) == 0 {
		return 0, errors.New("alloc returned no results")
	}
	ptr := api.DecodeU32(results[0])
	if !i.module.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("memory write failed at %d[%d]", ptr, len(data))
	}

	return ptr, nil
}

// Metadata reads and decodes the module's metadata document.
func (i *Instance) Metadata(ctx context.Context) (Metadata, error) {
	doc, err := i.readPacked(ctx, "Metadata")
	if err != nil {
		return Metadata{}, err
	}

	var meta Metadata
	if err := json.Unmarshal(doc, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decoding metadata: %w", err)
	}

	return meta, nil
}

// Initialize runs the plugin's initialize hook.
func (i *Instance) Initialize(ctx context.Context) error {
	status, err := i.call(ctx, "Initialize")
	if err != nil {
		return err
	}
	if status == 0 {
		return errors.New("plugin reported initialization failure")
	}

	return nil
}

// Shutdown runs the plugin's shutdown hook.
func (i *Instance) Shutdown(ctx context.Context) error {
	_, err := i.call(ctx, "Shutdown")

	return err
}

// SetEnabled forwards the enabled flag to the plugin.
func (i *Instance) SetEnabled(ctx context.Context, enabled bool) error {
	var flag uint64
	if enabled {
		flag = 1
	}
	_, err := i.call(ctx, "SetEnabled", flag)

	return err
}

// Enabled asks the plugin for its enabled state.
func (i *Instance) Enabled(ctx context.Context) (bool, error) {
	status, err := i.call(ctx, "IsEnabled")
	if err != nil {
		return false, err
	}

	return status != 0, nil
}

// Configure hands a JSON configuration document to the plugin.
func (i *Instance) Configure(ctx context.Context, doc []byte) error {
	if !i.HasExport("Configure") {
		return ErrUnsupported
	}
	ptr, err := i.writeBuffer(ctx, doc)
	if err != nil {
		return err
	}
	_, err = i.call(ctx, "Configure", uint64(ptr), uint64(len(doc)))

	return err
}

// Configuration reads the plugin's current configuration document.
func (i *Instance) Configuration(ctx context.Context) ([]byte, error) {
	if !i.HasExport("Configuration") {
		return nil, ErrUnsupported
	}

	return i.readPacked(ctx, "Configuration")
}

// Close releases the backing wasm module.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// Render draws the plugin pane content (CapabilityUI).
func (i *Instance) Render(ctx context.Context, width, height int) (string, error) {
	data, err := i.readPacked(ctx, "Render", uint64(uint32(width)), uint64(uint32(height)))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// DockTitle returns the pane title (CapabilityUI).
func (i *Instance) DockTitle(ctx context.Context) (string, error) {
	data, err := i.readPacked(ctx, "DockTitle")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// DockArea returns the preferred pane placement (CapabilityUI).
func (i *Instance) DockArea(ctx context.Context) (DockArea, error) {
	area, err := i.call(ctx, "DockArea")
	if err != nil {
		return DockRight, err
	}

	return DockArea(area), nil
}

// MenuActions returns the plugin's menu contributions (CapabilityUI).
func (i *Instance) MenuActions(ctx context.Context) ([]MenuAction, error) {
	doc, err := i.readPacked(ctx, "MenuActions")
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, nil
	}

	var actions []MenuAction
	if err := json.Unmarshal(doc, &actions); err != nil {
		return nil, fmt.Errorf("decoding menu actions: %w", err)
	}

	return actions, nil
}

// CanHandle reports whether the plugin can load the named file
// (CapabilityData).
func (i *Instance) CanHandle(ctx context.Context, name string) (bool, error) {
	ptr, err := i.writeBuffer(ctx, []byte(name))
	if err != nil {
		return false, err
	}
	status, err := i.call(ctx, "CanHandle", uint64(ptr), uint64(len(name)))
	if err != nil {
		return false, err
	}

	return status != 0, nil
}

// LoadData loads layer data from the given path (CapabilityData).
func (i *Instance) LoadData(ctx context.Context, path string) error {
	ptr, err := i.writeBuffer(ctx, []byte(path))
	if err != nil {
		return err
	}
	status, err := i.call(ctx, "LoadData", uint64(ptr), uint64(len(path)))
	if err != nil {
		return err
	}
	if status == 0 {
		return fmt.Errorf("plugin failed to load %s", path)
	}

	return nil
}
