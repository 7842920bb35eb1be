package layers

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataview/strata/internal/events"
)

func newTestManager() (*Manager, *events.Bus) {
	bus := events.NewBus(zerolog.Nop())
	return NewManager(bus), bus
}

func TestAddAndIndex(t *testing.T) {
	m, _ := newTestManager()

	base := NewLayer("base", Image)
	m.Add(base, -1)
	m.Add(NewLayer("points", Points), -1)
	m.Add(NewLayer("middle", Shapes), 1)

	require.Equal(t, 3, m.Count())
	assert.Equal(t, "base", m.Layer(0).Name())
	assert.Equal(t, "middle", m.Layer(1).Name())
	assert.Equal(t, "points", m.Layer(2).Name())
	assert.Equal(t, 0, m.IndexOf(base.ID()))
	assert.Nil(t, m.Layer(3))

	// Nil layers are ignored.
	m.Add(nil, 0)
	assert.Equal(t, 3, m.Count())
}

func TestAddPublishesEvent(t *testing.T) {
	m, bus := newTestManager()

	var got []events.LayerEvent
	bus.Subscribe(events.LayerAdded, func(e events.Event) {
		got = append(got, e.Data.(events.LayerEvent))
	})

	m.Add(NewLayer("base", Image), -1)

	require.Len(t, got, 1)
	assert.Equal(t, "base", got[0].Name)
	assert.Equal(t, 0, got[0].Index)
}

func TestRemove(t *testing.T) {
	m, bus := newTestManager()
	m.Add(NewLayer("a", Image), -1)
	m.Add(NewLayer("b", Points), -1)

	removed := 0
	bus.Subscribe(events.LayerRemoved, func(events.Event) { removed++ })

	assert.False(t, m.Remove(5))
	assert.True(t, m.Remove(0))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "b", m.Layer(0).Name())
	assert.Equal(t, 1, removed)

	assert.False(t, m.RemoveByName("missing"))
	assert.True(t, m.RemoveByName("b"))
	assert.Equal(t, 0, m.Count())
}

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		to    int
		ok    bool
		order []string
	}{
		{"forward", 0, 2, true, []string{"b", "c", "a"}},
		{"backward", 2, 0, true, []string{"c", "a", "b"}},
		{"same position", 1, 1, false, []string{"a", "b", "c"}},
		{"out of range", 0, 5, false, []string{"a", "b", "c"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestManager()
			m.Add(NewLayer("a", Image), -1)
			m.Add(NewLayer("b", Points), -1)
			m.Add(NewLayer("c", Shapes), -1)

			assert.Equal(t, tc.ok, m.Move(tc.from, tc.to))

			var order []string
			for _, l := range m.Layers() {
				order = append(order, l.Name())
			}
			assert.Equal(t, tc.order, order)
		})
	}
}

func TestClearAndSelected(t *testing.T) {
	m, _ := newTestManager()
	a := NewLayer("a", Image)
	b := NewLayer("b", Points)
	m.Add(a, -1)
	m.Add(b, -1)

	b.SetSelected(true)
	selected := m.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "b", selected[0].Name())

	m.Clear()
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Selected())
}

func TestLayerChangeNotifications(t *testing.T) {
	m, bus := newTestManager()
	layer := NewLayer("base", Image)
	m.Add(layer, -1)

	changed := 0
	bus.Subscribe(events.LayerChanged, func(events.Event) { changed++ })

	layer.SetVisible(false)
	layer.SetVisible(false) // no change, no event.
	layer.SetOpacity(0.5)
	layer.SetOpacity(0.5)
	layer.SetName("renamed")

	assert.Equal(t, 3, changed)
}

func TestOpacityClamped(t *testing.T) {
	t.Parallel()

	layer := NewLayer("base", Image)
	layer.SetOpacity(2.5)
	assert.Equal(t, 1.0, layer.Opacity())
	layer.SetOpacity(-0.5)
	assert.Equal(t, 0.0, layer.Opacity())
}

func TestTabularModel(t *testing.T) {
	m, _ := newTestManager()
	layer := NewLayer("base", Image)
	layer.SetOpacity(0.25)
	m.Add(layer, -1)

	assert.Equal(t, 1, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
	assert.Equal(t, "Name", m.HeaderValue(ColumnName))
	assert.Equal(t, "Visible", m.HeaderValue(ColumnVisible))
	assert.Equal(t, "Opacity", m.HeaderValue(ColumnOpacity))

	assert.Equal(t, "base", m.CellValue(0, ColumnName))
	assert.Equal(t, "Visible", m.CellValue(0, ColumnVisible))
	assert.Equal(t, "0.25", m.CellValue(0, ColumnOpacity))
	assert.Equal(t, "", m.CellValue(5, ColumnName))

	require.NoError(t, m.SetCellValue(0, ColumnName, "renamed"))
	require.NoError(t, m.SetCellValue(0, ColumnVisible, false))
	assert.Equal(t, "renamed", m.CellValue(0, ColumnName))
	assert.Equal(t, "Hidden", m.CellValue(0, ColumnVisible))

	assert.Error(t, m.SetCellValue(0, ColumnOpacity, 0.5))
	assert.Error(t, m.SetCellValue(0, ColumnName, 42))
	assert.Error(t, m.SetCellValue(9, ColumnName, "x"))
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for typ := Image; typ <= Vectors; typ++ {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	assert.Equal(t, Image, ParseType("bogus"))
}
