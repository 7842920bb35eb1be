package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/strataview/strata/internal/events"
	"github.com/strataview/strata/internal/logging"
)

// Manager owns the plugin lifecycle: discovery, loading, the contract and
// dependency checks, enable state and teardown. It is single threaded by
// contract; every call belongs on the host's UI goroutine, so no locking
// is done anywhere in the package.
type Manager struct {
	ctx      context.Context
	loader   Loader
	registry *Registry
	bus      *events.Bus
	log      zerolog.Logger
}

// NewManager creates a plugin manager on top of the given loader. The bus
// receives lifecycle notifications; it may be shared with the layer manager.
func NewManager(ctx context.Context, loader Loader, bus *events.Bus, logger zerolog.Logger) *Manager {
	return &Manager{
		ctx:      ctx,
		loader:   loader,
		registry: NewRegistry(),
		bus:      bus,
		log:      logger,
	}
}

// ScanDirectory loads every plugin module found directly in dir and returns
// the number loaded successfully. A missing or unreadable directory is not
// an error; the viewer starts with no plugins installed. Individual load
// failures are reported through the bus and the log, then skipped.
func (m *Manager) ScanDirectory(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.log.Debug().Err(err).Str("dir", dir).Msg("plugin directory not readable")
		return 0
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != moduleSuffix {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := m.Load(path); err != nil {
			continue
		}
		loaded++
	}

	m.log.Info().
		Str("dir", dir).
		Int("loaded", loaded).
		Msg("plugin directory scanned")

	return loaded
}

// Load runs the full load protocol for the module at path: duplicate check,
// instantiation and contract validation, metadata read and validation,
// dependency check, then initialization. On success the plugin is
// registered enabled and a loaded notification fires; on failure the module
// is released, nothing is registered and a load-failed notification fires.
func (m *Manager) Load(path string) error {
	name := deriveName(path)

	if m.registry.Contains(name) {
		return m.failLoad(path, fmt.Errorf("%w: %s", ErrDuplicate, name))
	}

	rec := &Record{
		FileName: filepath.Base(path),
		FilePath: path,
	}
	if sidecar, ok := readSidecar(path); ok {
		rec.Meta = sidecar
	}

	mod, err := m.loader.Open(m.ctx, path)
	if err != nil {
		rec.Err = err.Error()
		return m.failLoad(path, err)
	}

	exported, err := mod.Metadata(m.ctx)
	if err != nil {
		_ = mod.Close(m.ctx)
		return m.failLoad(path, fmt.Errorf("%w: %v", ErrValidation, err))
	}
	rec.Meta = mergeMetadata(rec.Meta, exported)

	if err := rec.Meta.Validate(); err != nil {
		_ = mod.Close(m.ctx)
		return m.failLoad(path, err)
	}

	for _, dep := range rec.Meta.Dependencies {
		if !m.registry.Contains(dep) {
			_ = mod.Close(m.ctx)
			return m.failLoad(path, fmt.Errorf("%w: requires %s", ErrDependency, dep))
		}
	}

	if err := mod.Initialize(m.ctx); err != nil {
		_ = mod.Close(m.ctx)
		return m.failLoad(path, fmt.Errorf("%w: %v", ErrInitialize, err))
	}

	rec.Loaded = true
	rec.Enabled = true
	rec.module = mod
	m.registry.Insert(name, rec)

	logging.PluginEvent(m.log, "plugin_loaded", name, path)
	m.bus.Publish(events.PluginLoaded, events.PluginEvent{
		Name:    name,
		Path:    path,
		Enabled: true,
	})

	return nil
}

// failLoad records and announces a failed load, then returns the error.
func (m *Manager) failLoad(path string, err error) error {
	logging.PluginFailure(m.log, path, err.Error())
	m.bus.Publish(events.PluginLoadFailed, events.PluginEvent{
		Name:    deriveName(path),
		Path:    path,
		Message: err.Error(),
	})

	return err
}

// Unload shuts down and removes the named plugin. A shutdown hook failure
// is logged but never blocks the unload; the module is released and the
// record destroyed either way.
func (m *Manager) Unload(name string) error {
	rec, ok := m.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if rec.Loaded {
		if err := rec.module.Shutdown(m.ctx); err != nil {
			m.log.Warn().
				Err(err).
				Str("plugin", name).
				Msg("plugin shutdown hook failed")
		}
		_ = rec.module.Close(m.ctx)
		rec.Loaded = false
		rec.Enabled = false
		rec.module = nil
	}

	m.registry.Remove(name)

	logging.PluginEvent(m.log, "plugin_unloaded", name, rec.FilePath)
	m.bus.Publish(events.PluginUnloaded, events.PluginEvent{
		Name: name,
		Path: rec.FilePath,
	})

	return nil
}

// UnloadAll unloads every registered plugin in reverse load order, so a
// plugin never outlives one it depends on being torn down after it.
func (m *Manager) UnloadAll() {
	names := m.registry.Names()
	for i := len(names) - 1; i >= 0; i-- {
		_ = m.Unload(names[i])
	}
}

// SetEnabled flips the enabled state of the named plugin, forwards the new
// state to the plugin and publishes a change notification. Setting the
// current state again is a no-op.
func (m *Manager) SetEnabled(name string, enabled bool) error {
	rec, ok := m.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if rec.Enabled == enabled {
		return nil
	}

	if rec.Loaded {
		if err := rec.module.SetEnabled(m.ctx, enabled); err != nil {
			m.log.Warn().
				Err(err).
				Str("plugin", name).
				Msg("plugin enable hook failed")
		}
	}
	rec.Enabled = enabled

	m.log.Info().
		Str("event", "plugin_enabled_changed").
		Str("plugin", name).
		Bool("enabled", enabled).
		Msg("plugin enable state changed")
	m.bus.Publish(events.PluginEnabledChanged, events.PluginEvent{
		Name:    name,
		Path:    rec.FilePath,
		Enabled: enabled,
	})

	return nil
}

// IsEnabled reports the enabled state of the named plugin; unknown names
// report false.
func (m *Manager) IsEnabled(name string) bool {
	rec, ok := m.registry.Get(name)
	if !ok {
		return false
	}

	return rec.Enabled
}

// Plugin returns the live module for the named plugin, or nil when the
// plugin is not loaded.
func (m *Manager) Plugin(name string) Module {
	rec, ok := m.registry.Get(name)
	if !ok {
		return nil
	}

	return rec.Module()
}

// Info returns the registry record for the named plugin.
func (m *Manager) Info(name string) (*Record, bool) {
	return m.registry.Get(name)
}

// Loaded returns the names of all registered plugins in load order.
func (m *Manager) Loaded() []string {
	return m.registry.Names()
}

// Records returns all registry records in load order.
func (m *Manager) Records() []*Record {
	return m.registry.Records()
}

// ByCapability returns every loaded, enabled plugin providing the given
// capability, in load order.
func (m *Manager) ByCapability(c Capability) []*Record {
	var out []*Record
	for _, rec := range m.registry.Records() {
		if rec.Enabled && rec.Has(c) {
			out = append(out, rec)
		}
	}

	return out
}

// Close unloads all plugins and releases the loader.
func (m *Manager) Close() error {
	m.UnloadAll()

	return m.loader.Close(m.ctx)
}
