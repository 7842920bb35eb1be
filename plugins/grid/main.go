// Grid is a UI plugin that renders a reference grid pane in the viewer
// shell. Build with tinygo targeting wasi.
package main

import (
	"encoding/json"
	"strings"

	"github.com/strataview/strata/pkg/strataplugin"
)

var enabled = true

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
		Name:         "grid",
		Version:      "1.0.0",
		Description:  "reference grid pane",
		Author:       "strata",
		License:      "MIT",
		Capabilities: []string{"ui"},
	})
}

//export Initialize
func Initialize() uint32 {
	strataplugin.LogInfo("grid plugin initialized")

	return 1
}

//export Shutdown
func Shutdown() {
	strataplugin.LogInfo("grid plugin shutting down")
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

//export Render
func Render(width, height uint32) uint64 {
	strataplugin.ResetAllocator()

	if width == 0 || height == 0 {
		return 0
	}

	var b strings.Builder
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			if x%4 == 0 || y%2 == 0 {
				b.WriteByte('+')
			} else {
				b.WriteByte(' ')
			}
		}
		if y+1 < height {
			b.WriteByte('\n')
		}
	}

	return strataplugin.WriteResult([]byte(b.String()))
}

//export DockTitle
func DockTitle() uint64 {
	strataplugin.ResetAllocator()

	return strataplugin.WriteResult([]byte("Grid"))
}

//export DockArea
func DockArea() uint32 {
	return 0 // right
}

//export MenuActions
func MenuActions() uint64 {
	strataplugin.ResetAllocator()

	actions := []map[string]string{
		{"id": "grid.toggle", "title": "Toggle Grid", "shortcut": "g"},
	}
	doc, err := json.Marshal(actions)
	if err != nil {
		return 0
	}

	return strataplugin.WriteResult(doc)
}

func main() {}
