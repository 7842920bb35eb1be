// Package layers implements the viewer's ordered layer collection and the
// tabular model UI components bind to.
package layers

import (
	"github.com/google/uuid"

	"github.com/strataview/strata/internal/events"
)

// Type enumerates the supported layer kinds.
type Type int

const (
	Image Type = iota
	Points
	Shapes
	Surface
	Volume
	Labels
	Tracks
	Vectors
)

// String returns the lower-case layer type name.
func (t Type) String() string {
	switch t {
	case Image:
		return "image"
	case Points:
		return "points"
	case Shapes:
		return "shapes"
	case Surface:
		return "surface"
	case Volume:
		return "volume"
	case Labels:
		return "labels"
	case Tracks:
		return "tracks"
	case Vectors:
		return "vectors"
	default:
		return "unknown"
	}
}

// ParseType maps a type name to its Type. Unknown names yield Image.
func ParseType(s string) Type {
	for t := Image; t <= Vectors; t++ {
		if t.String() == s {
			return t
		}
	}

	return Image
}

// Layer is a single visual layer. Property setters notify the owning
// manager's bus only when the value actually changes.
type Layer struct {
	id       uuid.UUID
	name     string
	typ      Type
	visible  bool
	opacity  float64
	selected bool

	bus *events.Bus // set when the layer is added to a manager.
	idx func() int  // resolves the layer's current index for events.
}

// NewLayer creates a visible, fully opaque, unselected layer.
func NewLayer(name string, typ Type) *Layer {
	return &Layer{
		id:      uuid.New(),
		name:    name,
		typ:     typ,
		visible: true,
		opacity: 1.0,
	}
}

// ID returns the layer's unique identifier.
func (l *Layer) ID() uuid.UUID { return l.id }

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Type returns the layer type.
func (l *Layer) Type() Type { return l.typ }

// Visible reports whether the layer is visible.
func (l *Layer) Visible() bool { return l.visible }

// Opacity returns the layer opacity in [0,1].
func (l *Layer) Opacity() float64 { return l.opacity }

// Selected reports whether the layer is selected.
func (l *Layer) Selected() bool { return l.selected }

// SetName renames the layer.
func (l *Layer) SetName(name string) {
	if l.name == name {
		return
	}
	l.name = name
	l.notifyChanged()
}

// SetVisible changes the layer visibility.
func (l *Layer) SetVisible(visible bool) {
	if l.visible == visible {
		return
	}
	l.visible = visible
	l.notifyChanged()
}

// SetOpacity sets the layer opacity, clamped to [0,1].
func (l *Layer) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	if l.opacity == opacity {
		return
	}
	l.opacity = opacity
	l.notifyChanged()
}

// SetSelected changes the layer selection state.
func (l *Layer) SetSelected(selected bool) {
	if l.selected == selected {
		return
	}
	l.selected = selected
	l.notifyChanged()
	if l.bus != nil {
		l.bus.Publish(events.LayerSelectionChanged, events.LayerEvent{Name: l.name, Index: l.index()})
	}
}

func (l *Layer) notifyChanged() {
	if l.bus == nil {
		return
	}
	l.bus.Publish(events.LayerChanged, events.LayerEvent{Name: l.name, Index: l.index()})
}

func (l *Layer) index() int {
	if l.idx == nil {
		return -1
	}

	return l.idx()
}

// attach wires the layer to the owning manager's bus; detach severs it when
// the layer leaves the collection.
func (l *Layer) attach(bus *events.Bus, idx func() int) {
	l.bus = bus
	l.idx = idx
}

func (l *Layer) detach() {
	l.bus = nil
	l.idx = nil
}
