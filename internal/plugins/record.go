package plugins

// Record is the registry entry for one loaded plugin. A record's module
// reference is valid exactly while Loaded is true; once a record is
// unloaded it is destroyed, never reused.
type Record struct {
	FileName string
	FilePath string
	Meta     Metadata
	Loaded   bool
	Enabled  bool
	Err      string

	module Module
}

// Module returns the live module instance, or nil when the record is not
// loaded.
func (r *Record) Module() Module {
	if !r.Loaded {
		return nil
	}

	return r.module
}

// Has reports whether the plugin provides the named capability: declared in
// its metadata and backed by every required export.
func (r *Record) Has(c Capability) bool {
	if !r.Loaded || !r.Meta.DeclaresCapability(c) {
		return false
	}
	for _, export := range capabilityExports[c] {
		if !r.module.HasExport(export) {
			return false
		}
	}

	return true
}

// UI returns the plugin's UI capability surface, if it has one.
func (r *Record) UI() (UIModule, bool) {
	if !r.Has(CapabilityUI) {
		return nil, false
	}
	ui, ok := r.module.(UIModule)

	return ui, ok
}

// Data returns the plugin's data capability surface, if it has one.
func (r *Record) Data() (DataModule, bool) {
	if !r.Has(CapabilityData) {
		return nil, false
	}
	data, ok := r.module.(DataModule)

	return data, ok
}
