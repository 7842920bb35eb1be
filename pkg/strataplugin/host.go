package strataplugin

import "encoding/json"

// Host imports from the "env" module. The comments below bind each function
// to its host export when compiled for wasm; on the host they are inert
// stubs so the package stays testable.

// LogDebug logs a debug message to the host.
//
//go:wasm-module env
//export log_debug
func LogDebug(string) {}

// LogInfo logs an informational message to the host.
//
//go:wasm-module env
//export log_info
func LogInfo(string) {}

// LogError logs an error message to the host.
//
//go:wasm-module env
//export log_error
func LogError(string) {}

//go:wasm-module env
//export config_get
func hostConfigGet() uint64 { return 0 }

//go:wasm-module env
//export config_set
func hostConfigSet(string) uint32 { return 0 }

//go:wasm-module env
//export layer_add
func hostLayerAdd(string) uint32 { return 0 }

//go:wasm-module env
//export layer_remove
func hostLayerRemove(string) uint32 { return 0 }

//go:wasm-module env
//export layer_count
func hostLayerCount() uint32 { return 0 }

// Config fetches the plugin's stored configuration document from the host.
// The host writes the document into guest memory through Alloc.
func Config() []byte {
	packed := hostConfigGet()
	ptr, length := UnpackResult(packed)
	if length == 0 {
		return nil
	}

	return ReadBytes(ptr, length)
}

// SetConfig persists the plugin's configuration document on the host.
func SetConfig(doc []byte) bool {
	return hostConfigSet(string(doc)) != 0
}

// AddLayer asks the host to append a layer with the given name and type.
func AddLayer(name, layerType string) bool {
	req, err := json.Marshal(struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}{Name: name, Type: layerType})
	if err != nil {
		return false
	}

	return hostLayerAdd(string(req)) != 0
}

// RemoveLayer asks the host to remove the first layer with the given name.
func RemoveLayer(name string) bool {
	return hostLayerRemove(name) != 0
}

// LayerCount returns the number of layers in the host's collection.
func LayerCount() int {
	return int(hostLayerCount())
}
