package plugins

import "context"

// Module is the contract surface of a loaded plugin module. The production
// implementation wraps a wazero wasm instance; tests substitute fakes.
//
// A Module is exclusively owned by its Record. Close releases the backing
// instance; no method may be called afterwards.
type Module interface {
	// Metadata reads the module's exported metadata document.
	Metadata(ctx context.Context) (Metadata, error)

	// Initialize runs the plugin's initialize hook against the host
	// context. A non-nil error means the hook reported failure.
	Initialize(ctx context.Context) error

	// Shutdown runs the plugin's shutdown hook.
	Shutdown(ctx context.Context) error

	// SetEnabled forwards the soft enable/disable flag to the plugin.
	SetEnabled(ctx context.Context, enabled bool) error

	// Enabled asks the plugin for its current enabled state.
	Enabled(ctx context.Context) (bool, error)

	// Configure hands a JSON configuration document to the plugin.
	// Returns ErrUnsupported when the plugin has no Configure export.
	Configure(ctx context.Context, doc []byte) error

	// Configuration reads the plugin's current configuration document.
	// Returns ErrUnsupported when the plugin has no Configuration export.
	Configuration(ctx context.Context) ([]byte, error)

	// HasExport reports whether the module exports the named function.
	HasExport(name string) bool

	// Close releases the backing module.
	Close(ctx context.Context) error
}
