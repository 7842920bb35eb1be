package layers

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataview/strata/internal/events"
)

func modelFixture(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(events.NewBus(zerolog.New(io.Discard)))
	m.Add(NewLayer("nuclei", Image), -1)
	m.Add(NewLayer("tracks", Tracks), -1)

	return m
}

func TestModelShape(t *testing.T) {
	m := modelFixture(t)

	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
	assert.Equal(t, "Name", m.HeaderValue(ColumnName))
	assert.Equal(t, "Visible", m.HeaderValue(ColumnVisible))
	assert.Equal(t, "Opacity", m.HeaderValue(ColumnOpacity))
	assert.Equal(t, "", m.HeaderValue(99))
}

func TestModelCellValues(t *testing.T) {
	m := modelFixture(t)

	assert.Equal(t, "nuclei", m.CellValue(0, ColumnName))
	assert.Equal(t, "Visible", m.CellValue(0, ColumnVisible))
	assert.Equal(t, "1.00", m.CellValue(0, ColumnOpacity))

	m.Layer(1).SetVisible(false)
	m.Layer(1).SetOpacity(0.25)
	assert.Equal(t, "Hidden", m.CellValue(1, ColumnVisible))
	assert.Equal(t, "0.25", m.CellValue(1, ColumnOpacity))

	assert.Equal(t, "", m.CellValue(5, ColumnName))
	assert.Equal(t, "", m.CellValue(0, 99))
}

func TestModelSetCellValue(t *testing.T) {
	m := modelFixture(t)

	require.NoError(t, m.SetCellValue(0, ColumnName, "membrane"))
	assert.Equal(t, "membrane", m.Layer(0).Name())

	require.NoError(t, m.SetCellValue(0, ColumnVisible, false))
	assert.False(t, m.Layer(0).Visible())

	assert.Error(t, m.SetCellValue(0, ColumnName, 42))
	assert.Error(t, m.SetCellValue(0, ColumnVisible, "yes"))
	assert.Error(t, m.SetCellValue(0, ColumnOpacity, 0.5), "opacity is not editable")
	assert.Error(t, m.SetCellValue(9, ColumnName, "x"))
}
