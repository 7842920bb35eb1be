// Overlay is a data plugin that loads image overlays as layers. It depends
// on the grid plugin being registered first. Build with tinygo targeting
// wasi.
package main

import (
	"strings"

	"github.com/strataview/strata/pkg/strataplugin"
)

var (
	enabled = true
	config  = []byte("{}")
)

//export Alloc
func Alloc(size uint32) uint32 {
	return strataplugin.Alloc(size)
}

//export Free
func Free(ptr uint32) {
	strataplugin.Free(ptr)
}

//export Metadata
func Metadata() uint64 {
	strataplugin.ResetAllocator()

	return strataplugin.WriteMetadata(strataplugin.Metadata{
		Name:         "overlay",
		Version:      "0.3.0",
		Description:  "image overlay loader",
		Author:       "strata",
		License:      "MIT",
		Dependencies: []string{"grid"},
		Capabilities: []string{"data"},
		Tags:         []string{"image", "io"},
	})
}

//export Initialize
func Initialize() uint32 {
	stored := strataplugin.Config()
	if len(stored) > 0 {
		config = append([]byte(nil), stored...)
	}
	strataplugin.LogInfo("overlay plugin initialized")

	return 1
}

//export Shutdown
func Shutdown() {
	strataplugin.SetConfig(config)
	strataplugin.LogInfo("overlay plugin shutting down")
}

//export SetEnabled
func SetEnabled(flag uint32) {
	enabled = flag != 0
}

//export IsEnabled
func IsEnabled() uint32 {
	if enabled {
		return 1
	}

	return 0
}

//export CanHandle
func CanHandle(ptr, length uint32) uint32 {
	name := string(strataplugin.ReadBytes(ptr, length))
	switch {
	case strings.HasSuffix(name, ".png"),
		strings.HasSuffix(name, ".tif"),
		strings.HasSuffix(name, ".tiff"):
		return 1
	}

	return 0
}

//export LoadData
func LoadData(ptr, length uint32) uint32 {
	path := string(strataplugin.ReadBytes(ptr, length))
	strataplugin.ResetAllocator()

	name := path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if !strataplugin.AddLayer(name, "image") {
		strataplugin.LogError("failed to add layer for " + path)
		return 0
	}
	strataplugin.LogDebug("loaded overlay from " + path)

	return 1
}

//export Configure
func Configure(ptr, length uint32) {
	config = append([]byte(nil), strataplugin.ReadBytes(ptr, length)...)
}

//export Configuration
func Configuration() uint64 {
	strataplugin.ResetAllocator()

	return strataplugin.WriteResult(config)
}

func main() {}
