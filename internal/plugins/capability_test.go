package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uiExports() map[string]bool {
	return map[string]bool{
		"Render": true, "DockTitle": true, "DockArea": true, "MenuActions": true,
	}
}

func TestRecordHas(t *testing.T) {
	tests := []struct {
		name     string
		loaded   bool
		declared []string
		exports  map[string]bool
		want     bool
	}{
		{
			name:     "declared and exported",
			loaded:   true,
			declared: []string{"ui"},
			exports:  uiExports(),
			want:     true,
		},
		{
			name:     "declared without exports",
			loaded:   true,
			declared: []string{"ui"},
			want:     false,
		},
		{
			name:    "exported without declaration",
			loaded:  true,
			exports: uiExports(),
			want:    false,
		},
		{
			name:     "partial exports",
			loaded:   true,
			declared: []string{"ui"},
			exports:  map[string]bool{"Render": true, "DockTitle": true},
			want:     false,
		},
		{
			name:     "not loaded",
			declared: []string{"ui"},
			exports:  uiExports(),
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{
				Meta:   Metadata{Name: "p", Capabilities: tt.declared},
				Loaded: tt.loaded,
				module: &fakeModule{exports: tt.exports},
			}
			assert.Equal(t, tt.want, rec.Has(CapabilityUI))
		})
	}
}

func TestRecordModuleNilWhenUnloaded(t *testing.T) {
	mod := &fakeModule{}
	rec := &Record{module: mod}

	assert.Nil(t, rec.Module())

	rec.Loaded = true
	assert.Same(t, mod, rec.Module())
}

func TestDockAreaString(t *testing.T) {
	assert.Equal(t, "right", DockRight.String())
	assert.Equal(t, "left", DockLeft.String())
	assert.Equal(t, "bottom", DockBottom.String())
	assert.Equal(t, "right", DockArea(99).String())
}
