package layers

import (
	"github.com/google/uuid"

	"github.com/strataview/strata/internal/events"
)

// Manager is a mutable ordered collection of layers. It is not safe for
// concurrent use; all operations belong on the host's UI goroutine.
type Manager struct {
	layers []*Layer
	bus    *events.Bus
}

// NewManager returns an empty layer collection publishing on bus.
func NewManager(bus *events.Bus) *Manager {
	return &Manager{bus: bus}
}

// Add inserts layer at index; index -1 or past the end appends. Nil layers
// are ignored.
func (m *Manager) Add(layer *Layer, index int) {
	if layer == nil {
		return
	}
	if index < 0 || index > len(m.layers) {
		index = len(m.layers)
	}

	m.layers = append(m.layers, nil)
	copy(m.layers[index+1:], m.layers[index:])
	m.layers[index] = layer

	layer.attach(m.bus, func() int { return m.IndexOf(layer.ID()) })
	m.bus.Publish(events.LayerAdded, events.LayerEvent{Name: layer.Name(), Index: index})
}

// Remove deletes the layer at index. It reports whether a layer was removed.
func (m *Manager) Remove(index int) bool {
	if index < 0 || index >= len(m.layers) {
		return false
	}

	layer := m.layers[index]
	layer.detach()
	m.layers = append(m.layers[:index], m.layers[index+1:]...)
	m.bus.Publish(events.LayerRemoved, events.LayerEvent{Name: layer.Name(), Index: index})

	return true
}

// RemoveByName deletes the first layer with the given name.
func (m *Manager) RemoveByName(name string) bool {
	for i, l := range m.layers {
		if l.Name() == name {
			return m.Remove(i)
		}
	}

	return false
}

// Move reorders the layer at from to position to.
func (m *Manager) Move(from, to int) bool {
	n := len(m.layers)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}

	layer := m.layers[from]
	m.layers = append(m.layers[:from], m.layers[from+1:]...)
	m.layers = append(m.layers, nil)
	copy(m.layers[to+1:], m.layers[to:])
	m.layers[to] = layer

	m.bus.Publish(events.LayersReordered, events.LayerEvent{Name: layer.Name(), Index: to})

	return true
}

// Clear removes all layers.
func (m *Manager) Clear() {
	for _, l := range m.layers {
		l.detach()
	}
	m.layers = nil
	m.bus.Publish(events.LayersReordered, events.LayerEvent{Index: -1})
}

// Count returns the number of layers.
func (m *Manager) Count() int { return len(m.layers) }

// Layer returns the layer at index, or nil when out of range.
func (m *Manager) Layer(index int) *Layer {
	if index < 0 || index >= len(m.layers) {
		return nil
	}

	return m.layers[index]
}

// ByName returns the first layer with the given name, or nil.
func (m *Manager) ByName(name string) *Layer {
	for _, l := range m.layers {
		if l.Name() == name {
			return l
		}
	}

	return nil
}

// Layers returns the layers in display order. The returned slice is a copy;
// the layers themselves are shared.
func (m *Manager) Layers() []*Layer {
	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)

	return out
}

// Selected returns all currently selected layers in display order.
func (m *Manager) Selected() []*Layer {
	var out []*Layer
	for _, l := range m.layers {
		if l.Selected() {
			out = append(out, l)
		}
	}

	return out
}

// IndexOf returns the position of the layer with the given id, or -1.
func (m *Manager) IndexOf(id uuid.UUID) int {
	for i, l := range m.layers {
		if l.ID() == id {
			return i
		}
	}

	return -1
}
